// Package domain defines the value types shared by the Nodal scene engine.
//
// This package contains the small set of entities that flow between the
// lattice, boundary, placement, routing and animation packages and out to
// the renderers and the HTTP API.
//
// # Core Types
//
// Point is a position in canvas space. Coord is the integer lattice identity
// of a vertex (axial for the triangular family, cartesian for square).
//
// EdgeKey is the canonical unordered pair of vertex indices. It deduplicates
// edges shared by adjacent cells and drives the dual adjacency used for the
// connectivity flood fill.
//
// Node is a lattice vertex promoted to an emphasis point. Connection is a
// routed, smoothed trail between two or more nodes.
//
// Line is a masked lattice edge ready for a stroke primitive.
//
// # Presets
//
// Preset stores a named scene configuration so a composition can be
// reproduced later from its seed and parameters.
//
// # Design Principles
//
// - Plain value types, no behaviour beyond small geometry helpers
// - Vertices and nodes are addressed by dense integer indices
// - No rendering or persistence dependencies
package domain
