package core

import "errors"

// Error kinds surfaced by the generation engine. All are non-recoverable at
// this boundary: the engine fails fast and never returns a partial structure.
// Callers distinguish kinds with errors.Is.
var (
	// ErrConfiguration marks an unsupported element/family pairing or a
	// required parameter that has no registry default.
	ErrConfiguration = errors.New("configuration error")

	// ErrValidation marks caller-supplied geometry or replication values that
	// fail precondition checks.
	ErrValidation = errors.New("invalid input")

	// ErrGeometry marks a structure that was built but failed the
	// post-generation sanity check. This indicates a builder defect, not bad
	// input.
	ErrGeometry = errors.New("invalid geometry")
)
