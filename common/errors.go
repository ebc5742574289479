package common

import "github.com/pkg/errors"

// Error taxonomy shared by the input manager, the camera package and the configuration loader.
// Callers match wrapped errors with errors.Is or errors.Cause.
var (
	// ErrInvalidArgument is returned when a required argument is missing or cannot be resolved,
	// e.g. an empty or unknown key code passed to a named input query, or a nil camera handle.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegenerateGeometry is returned when a vector cannot be normalized because its magnitude
	// is too close to zero. Per-frame callers treat it as a no-op.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
