// Package handler implements the HTTP API for Nodal.
//
// # Handlers
//
// SceneHandler serves the live scene: geometry snapshots, animation frames,
// settings, playback control, vertex queries and image export.
//
// PresetHandler manages saved presets, preset import and export, and share
// tokens.
//
// Routes wires both onto a ServeMux using method patterns. Chain applies
// the Recover, CORS and Logger middleware.
//
// # Response Format
//
// Success responses return JSON with status 200 or 201. Image and preset
// downloads set Content-Disposition. Errors return JSON with an
// {error, details} body: 400 for invalid input, 404 for missing presets,
// 500 otherwise.
//
// # Server-Sent Events
//
// The /events endpoint streams scene, playback, frame and preset events.
package handler
