package handler

import (
	"bytes"
	"encoding/json"
	"net/http"

	"nodal/internal/service"
)

// PresetHandler handles preset and share token requests
type PresetHandler struct {
	svc *service.PresetService
}

// NewPresetHandler creates a new preset handler
func NewPresetHandler(svc *service.PresetService) *PresetHandler {
	return &PresetHandler{svc: svc}
}

// SavePresetRequest is the body of POST /api/presets
type SavePresetRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ShareRequest is the body of POST /api/share
type ShareRequest struct {
	Token string `json:"token"`
}

// List returns all presets
func (h *PresetHandler) List(w http.ResponseWriter, r *http.Request) {
	presets, err := h.svc.List(r.Context())
	if err != nil {
		writeServiceError(w, "Failed to list presets", err)
		return
	}

	writeJSON(w, presets, http.StatusOK)
}

// Save stores the live scene settings under a name
func (h *PresetHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req SavePresetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	preset, err := h.svc.Save(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, "Failed to save preset", err)
		return
	}

	writeJSON(w, preset, http.StatusCreated)
}

// Get returns a single preset
func (h *PresetHandler) Get(w http.ResponseWriter, r *http.Request) {
	preset, err := h.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "Failed to get preset", err)
		return
	}

	writeJSON(w, preset, http.StatusOK)
}

// Delete removes a preset
func (h *PresetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, "Failed to delete preset", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Load applies a preset to the live scene
func (h *PresetHandler) Load(w http.ResponseWriter, r *http.Request) {
	level, err := h.svc.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "Failed to load preset", err)
		return
	}

	writeJSON(w, map[string]string{"level": level.String()}, http.StatusOK)
}

// Export downloads a preset document
func (h *PresetHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	var buf bytes.Buffer
	contentType, err := h.svc.Export(r.Context(), r.PathValue("id"), format, &buf)
	if err != nil {
		writeServiceError(w, "Failed to export preset", err)
		return
	}

	ext := "json"
	if contentType != "application/json" {
		ext = "yaml"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", "attachment; filename=preset."+ext)
	w.Write(buf.Bytes())
}

// Import parses an uploaded preset document and saves it
func (h *PresetHandler) Import(w http.ResponseWriter, r *http.Request) {
	preset, err := h.svc.Import(r.Context(), r.URL.Query().Get("format"), r.Body)
	if err != nil {
		writeServiceError(w, "Failed to import preset", err)
		return
	}

	writeJSON(w, preset, http.StatusCreated)
}

// GetShare returns a share token for the live scene
func (h *PresetHandler) GetShare(w http.ResponseWriter, r *http.Request) {
	token, err := h.svc.ShareToken()
	if err != nil {
		writeServiceError(w, "Failed to encode share token", err)
		return
	}

	writeJSON(w, ShareRequest{Token: token}, http.StatusOK)
}

// ApplyShare decodes a share token and applies it
func (h *PresetHandler) ApplyShare(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return
	}

	level, err := h.svc.ApplyShareToken(r.Context(), req.Token)
	if err != nil {
		writeServiceError(w, "Failed to apply share token", err)
		return
	}

	writeJSON(w, map[string]string{"level": level.String()}, http.StatusOK)
}
