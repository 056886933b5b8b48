package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nodal/internal/config"
	"nodal/internal/handler"
	"nodal/internal/hub"
	"nodal/internal/loader"
	"nodal/internal/repository/sqlite"
	"nodal/internal/service"
	"nodal/internal/watcher"
)

func main() {
	// Command line flags
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config)")
	configPath := flag.String("config", "", "Config file path (default: search standard locations)")
	watch := flag.Bool("watch", false, "Reload the scene when the config file changes")
	presetDir := flag.String("presets", "", "Directory of preset documents to import at startup")
	initConfig := flag.Bool("init", false, "Write a default config file and exit")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if *initConfig {
		path := *configPath
		if path == "" {
			path = config.DefaultConfigPath()
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			log.Fatalf("Failed to write config: %v", err)
		}
		log.Printf("Wrote default config to %s", path)
		return
	}
	log.Println("Starting Nodal server...")

	// Load configuration
	var (
		cfg     *config.Config
		cfgFrom string
		err     error
	)
	if *configPath != "" {
		cfg, cfgFrom, err = config.LoadFromPath(*configPath)
	} else {
		cfg, cfgFrom, err = config.Load()
	}
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgFrom == "" {
		log.Println("No config file found, using defaults")
	} else {
		log.Printf("Config loaded: %s", cfgFrom)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	log.Print(cfg.Summary())

	// Initialize SQLite repository
	repo, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer repo.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize event bus
	eventBus := service.NewEventBus()

	// Initialize SSE hub; state events are replayed to new clients
	sseHub := hub.New(
		string(service.EventSceneRegenerated),
		string(service.EventConfigUpdated),
		string(service.EventAnimationState),
	)
	go sseHub.Run(ctx)

	// Connect event bus to SSE hub
	eventChan := make(chan service.Event, 100)
	eventBus.Subscribe(eventChan)
	go func() {
		for event := range eventChan {
			sseHub.Broadcast(hub.Message{Event: string(event.Type), Data: event.Payload})
		}
	}()

	// Initialize services
	sceneSvc := service.NewSceneService(cfg.Scene, eventBus).WithStore(repo)
	if restored, err := sceneSvc.Restore(ctx); err != nil {
		log.Printf("Warning: Failed to restore scene: %v", err)
	} else if restored {
		log.Println("Restored last active scene")
	}
	presetSvc := service.NewPresetService(repo, sceneSvc, eventBus)

	// Seed presets from disk
	if *presetDir != "" {
		presets, err := loader.LoadDir(*presetDir)
		if err != nil {
			log.Fatalf("Failed to load presets: %v", err)
		}
		n, err := presetSvc.ImportAll(ctx, presets)
		if err != nil {
			log.Fatalf("Failed to import presets: %v", err)
		}
		log.Printf("Imported %d presets from %s", n, *presetDir)
	}

	go sceneSvc.Run(ctx, cfg.Server.StreamFPS)

	// Optional config hot reload
	if *watch {
		if cfgFrom == "" {
			log.Println("Warning: -watch ignored, no config file to watch")
		} else {
			w := watcher.New(cfgFrom, func(reloaded *config.Config) {
				if _, err := sceneSvc.ApplyConfig(ctx, reloaded.Scene); err != nil {
					log.Printf("Failed to apply reloaded config: %v", err)
				}
			})
			go func() {
				if err := w.Watch(ctx); err != nil && err != context.Canceled {
					log.Printf("Config watcher stopped: %v", err)
				}
			}()
		}
	}

	// Setup routes and middleware
	mux := handler.Routes(
		handler.NewSceneHandler(sceneSvc),
		handler.NewPresetHandler(presetSvc),
		sseHub,
	)
	finalHandler := handler.Chain(mux,
		handler.Recover,
		handler.CORS,
		handler.Logger,
	)

	// Create server. No write timeout: SSE streams stay open.
	server := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     finalHandler,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop frame loop, watcher and hub
	cancel()

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	eventBus.Unsubscribe(eventChan)
	log.Println("Server stopped")
}
