// Package service implements business logic for the nodal application.
//
// This package provides service layers that coordinate between the HTTP
// handlers, the scene engine and the repository layer, implementing
// validation and event publishing.
//
// # Services
//
// SceneService owns the live scene. The scene engine is single threaded,
// so every call takes the service mutex. Run drives the animation clock
// and streams frames to subscribers.
//
// PresetService saves, loads, imports and exports named scene
// configurations, and encodes the compact share tokens used in URLs.
//
// # Event System
//
// All services publish events via EventBus for real-time updates to
// connected clients via Server-Sent Events (SSE). Event types include
// scene regeneration, configuration changes, playback state, preset
// changes and animation frames.
//
// # Design Principles
//
// - Services own business logic and validation
// - Repository pattern for data access
// - Event-driven for real-time updates
// - Context-aware for cancellation and timeouts
package service
