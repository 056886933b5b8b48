// Package hub fans server events out to Server-Sent Events clients.
package hub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one named event
type Message struct {
	Event string
	Data  interface{}
}

// Client represents a connected SSE client
type Client struct {
	id     string
	events chan []byte
	filter map[string]bool // Empty means every event
}

func (c *Client) wants(event string) bool {
	return len(c.filter) == 0 || c.filter[event]
}

const reconnectMillis = 2000

type envelope struct {
	event string
	msg   []byte
}

// Hub fans events out to SSE clients. The latest message of each retained
// event type is replayed to clients as they connect, so a new client sees
// the current scene without waiting for the next change.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	keepAlive  time.Duration

	retain   map[string]bool
	retained map[string][]byte
	order    []string // Retained event types in first-seen order
}

// New creates a hub that retains the given event types for replay
func New(retain ...string) *Hub {
	h := &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 256),
		keepAlive:  30 * time.Second,
		retain:     make(map[string]bool),
		retained:   make(map[string][]byte),
	}
	for _, event := range retain {
		h.retain[event] = true
	}
	return h
}

// Run starts the hub's event loop and returns when ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				close(client.events)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = struct{}{}
			n := len(h.clients)
			h.mu.Unlock()
			h.replay(client)
			log.Printf("SSE client connected: %s (total: %d)", client.id, n)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.events)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Printf("SSE client disconnected: %s (total: %d)", client.id, n)

		case m := <-h.broadcast:
			env, err := encode(m)
			if err != nil {
				log.Printf("Failed to marshal event: %v", err)
				continue
			}

			if h.retain[env.event] {
				if _, seen := h.retained[env.event]; !seen {
					h.order = append(h.order, env.event)
				}
				h.retained[env.event] = env.msg
			}

			h.mu.RLock()
			for client := range h.clients {
				if !client.wants(env.event) {
					continue
				}
				select {
				case client.events <- env.msg:
				default:
					// Frames arrive continuously, so a slow client only loses stale ones
					if env.event != "frame" {
						log.Printf("SSE client %s is slow, skipping %s", client.id, env.event)
					}
				}
			}
			h.mu.RUnlock()
		}
	}
}

// replay queues retained messages for a new client. Only Run touches the
// retained set.
func (h *Hub) replay(c *Client) {
	for _, event := range h.order {
		if !c.wants(event) {
			continue
		}
		select {
		case c.events <- h.retained[event]:
		default:
			return
		}
	}
}

func encode(m Message) (envelope, error) {
	data, err := json.Marshal(m.Data)
	if err != nil {
		return envelope{}, err
	}
	msg := fmt.Sprintf("event: %s\ndata: %s\n\n", m.Event, data)
	return envelope{event: m.Event, msg: []byte(msg)}, nil
}

// Broadcast sends an event to all connected clients
func (h *Hub) Broadcast(m Message) {
	select {
	case h.broadcast <- m:
	default:
		log.Println("Broadcast channel full, dropping event")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeHTTP handles SSE connections. The optional events query parameter
// is a comma separated list of event names to receive.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}
	writeHeaders(w.Header())

	client := &Client{
		id:     uuid.NewString(),
		events: make(chan []byte, 64),
		filter: parseFilter(r.URL.Query().Get("events")),
	}

	select {
	case h.register <- client:
	case <-r.Context().Done():
		return
	}
	defer func() {
		select {
		case h.unregister <- client:
		case <-time.After(time.Second):
		}
	}()

	fmt.Fprintf(w, "retry: %d\n: connected %s\n\n", reconnectMillis, client.id)
	flusher.Flush()

	h.stream(r, w, flusher, client)
}

func writeHeaders(hdr http.Header) {
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("Access-Control-Allow-Origin", "*")
	hdr.Set("X-Accel-Buffering", "no") // Disable nginx buffering
}

// stream copies client events to the response until either side goes away
func (h *Hub) stream(r *http.Request, w http.ResponseWriter, flusher http.Flusher, client *Client) {
	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()

	for {
		var err error
		select {
		case msg, ok := <-client.events:
			if !ok {
				return
			}
			_, err = w.Write(msg)
		case <-keepAlive.C:
			_, err = io.WriteString(w, ": keepalive\n\n")
		case <-r.Context().Done():
			return
		}
		if err != nil {
			return
		}
		flusher.Flush()
	}
}

func parseFilter(s string) map[string]bool {
	if s == "" {
		return nil
	}
	filter := make(map[string]bool)
	for _, name := range strings.Split(s, ",") {
		if name = strings.TrimSpace(name); name != "" {
			filter[name] = true
		}
	}
	return filter
}
