package handler

import "net/http"

// Routes registers the API on a new mux. Events may be nil when no SSE
// stream is served.
func Routes(scenes *SceneHandler, presets *PresetHandler, events http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Scene
	mux.HandleFunc("GET /api/scene", scenes.GetScene)
	mux.HandleFunc("POST /api/scene/regenerate", scenes.Regenerate)
	mux.HandleFunc("GET /api/frame", scenes.GetFrame)
	mux.HandleFunc("GET /api/frame/{index}", scenes.GetFrameAt)
	mux.HandleFunc("GET /api/config", scenes.GetConfig)
	mux.HandleFunc("PUT /api/config", scenes.PutConfig)
	mux.HandleFunc("POST /api/animation/{action}", scenes.Animation)
	mux.HandleFunc("GET /api/nearest", scenes.Nearest)
	mux.HandleFunc("GET /api/positions", scenes.Positions)

	// Export
	mux.HandleFunc("GET /api/export/png", scenes.ExportPNG)
	mux.HandleFunc("GET /api/export/gif", scenes.ExportGIF)

	// Presets
	mux.HandleFunc("GET /api/presets", presets.List)
	mux.HandleFunc("POST /api/presets", presets.Save)
	mux.HandleFunc("POST /api/presets/import", presets.Import)
	mux.HandleFunc("GET /api/presets/{id}", presets.Get)
	mux.HandleFunc("DELETE /api/presets/{id}", presets.Delete)
	mux.HandleFunc("POST /api/presets/{id}/load", presets.Load)
	mux.HandleFunc("GET /api/presets/{id}/export", presets.Export)

	// Share tokens
	mux.HandleFunc("GET /api/share", presets.GetShare)
	mux.HandleFunc("POST /api/share", presets.ApplyShare)

	if events != nil {
		mux.Handle("GET /events", events)
	}

	return mux
}
