// Package diag defines the diagnostic records Pulse moves across the
// status channel and the normalization from raw engine issues into them.
//
// Engines report issues in whatever shape is convenient for them (relative
// paths, message chains, offset+length locations). The wire format is a flat
// record with an absolute path, a half-open offset range and a single
// flattened message string, so that clients never depend on engine
// internals.
package diag
