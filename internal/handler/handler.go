package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"nodal/internal/service"
)

// SceneHandler handles scene, frame and export requests
type SceneHandler struct {
	svc *service.SceneService
}

// NewSceneHandler creates a new scene handler
func NewSceneHandler(svc *service.SceneService) *SceneHandler {
	return &SceneHandler{svc: svc}
}

// RegenerateRequest is the body of POST /api/scene/regenerate
type RegenerateRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Scope  string `json:"scope"`
}

// GetScene returns the geometry snapshot
func (h *SceneHandler) GetScene(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Snapshot(), http.StatusOK)
}

// Regenerate rebuilds the scene at the requested scope
func (h *SceneHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	var req RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	scope, err := service.ParseScope(req.Scope)
	if err != nil {
		writeError(w, "Invalid scope", err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := h.svc.Regenerate(r.Context(), req.Width, req.Height, scope)
	if err != nil {
		writeServiceError(w, "Failed to regenerate scene", err)
		return
	}

	writeJSON(w, stats, http.StatusOK)
}

// GetFrame returns the live animation frame
func (h *SceneHandler) GetFrame(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Frame(), http.StatusOK)
}

// GetFrameAt returns a deterministic export frame
func (h *SceneHandler) GetFrameAt(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, "Invalid frame index", err.Error(), http.StatusBadRequest)
		return
	}

	total, err := queryInt(r, "total", h.svc.Config().Export.FrameCount())
	if err != nil {
		writeError(w, "Invalid total", err.Error(), http.StatusBadRequest)
		return
	}

	frame, err := h.svc.FrameAt(index, total)
	if err != nil {
		writeServiceError(w, "Failed to compute frame", err)
		return
	}

	writeJSON(w, frame, http.StatusOK)
}

// GetConfig returns the current scene settings
func (h *SceneHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.svc.Config(), http.StatusOK)
}

// PutConfig replaces the scene settings. Omitted keys keep their current
// values.
func (h *SceneHandler) PutConfig(w http.ResponseWriter, r *http.Request) {
	cfg := h.svc.Config()
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	level, err := h.svc.ApplyConfig(r.Context(), cfg)
	if err != nil {
		writeServiceError(w, "Failed to apply config", err)
		return
	}

	writeJSON(w, map[string]interface{}{
		"level":  level.String(),
		"config": h.svc.Config(),
	}, http.StatusOK)
}

// Animation runs a playback action: play, pause, toggle or reset
func (h *SceneHandler) Animation(w http.ResponseWriter, r *http.Request) {
	var state service.AnimationState
	switch action := r.PathValue("action"); action {
	case "play":
		state = h.svc.Play()
	case "pause":
		state = h.svc.Pause()
	case "toggle":
		state = h.svc.Toggle()
	case "reset":
		state = h.svc.Reset()
	default:
		writeError(w, "Unknown action", action, http.StatusBadRequest)
		return
	}

	writeJSON(w, state, http.StatusOK)
}

// Nearest returns the visible vertex closest to a canvas point
func (h *SceneHandler) Nearest(w http.ResponseWriter, r *http.Request) {
	x, errX := queryFloat(r, "x", 0)
	y, errY := queryFloat(r, "y", 0)
	if err := errors.Join(errX, errY); err != nil {
		writeError(w, "Invalid coordinates", err.Error(), http.StatusBadRequest)
		return
	}

	v, ok := h.svc.Nearest(x, y)
	if !ok {
		writeError(w, "Not found", "scene has no visible vertices", http.StatusNotFound)
		return
	}

	writeJSON(w, v, http.StatusOK)
}

// Positions returns visible vertex positions inside the padded canvas
func (h *SceneHandler) Positions(w http.ResponseWriter, r *http.Request) {
	padding, err := queryFloat(r, "padding", 0)
	if err != nil {
		writeError(w, "Invalid padding", err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, h.svc.Positions(padding), http.StatusOK)
}

// ExportPNG renders a still image
func (h *SceneHandler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	background, err := queryBool(r, "background", true)
	if err != nil {
		writeError(w, "Invalid background flag", err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer
	if err := h.svc.ExportPNG(&buf, background); err != nil {
		writeServiceError(w, "Failed to export PNG", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", "attachment; filename=nodal.png")
	w.Write(buf.Bytes())
}

// ExportGIF renders one animation cycle
func (h *SceneHandler) ExportGIF(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.ExportGIF(&buf); err != nil {
		writeServiceError(w, "Failed to export GIF", err)
		return
	}

	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Content-Disposition", "attachment; filename=nodal.gif")
	w.Write(buf.Bytes())
}
