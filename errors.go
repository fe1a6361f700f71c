package overlay

import (
	"errors"
	"fmt"
)

// Sentinel errors for the overlay package.
var (
	// ErrInvalidMarker is returned when a marker or trend region is rejected
	// at registration. Prior state is left unchanged.
	ErrInvalidMarker = errors.New("overlay: invalid marker")

	// ErrDuplicateID is returned when registering an id that is already present.
	ErrDuplicateID = errors.New("overlay: duplicate id")

	// ErrStaleViewport marks a recomputation requested before any viewport
	// was supplied. It never reaches callers; the frame is simply empty.
	ErrStaleViewport = errors.New("overlay: no viewport")

	// ErrInvalidViewport is returned by OnViewportChanged for degenerate ranges.
	ErrInvalidViewport = errors.New("overlay: invalid viewport")

	// ErrNoSink is returned by Render when the controller has no sink.
	ErrNoSink = errors.New("overlay: no render sink")
)

// ValidationError describes why a marker or region was rejected.
// It unwraps to ErrInvalidMarker.
type ValidationError struct {
	Kind   string // "marker" or "region"
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("overlay: invalid %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("overlay: invalid %s %q: %s", e.Kind, e.ID, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidMarker }

// DuplicateError is returned when an id is already registered.
// It unwraps to ErrDuplicateID.
type DuplicateError struct {
	Kind string
	ID   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("overlay: %s %q already registered", e.Kind, e.ID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateID }

func invalidMarker(id, format string, args ...any) error {
	return &ValidationError{Kind: "marker", ID: id, Reason: fmt.Sprintf(format, args...)}
}

func invalidRegion(id, format string, args ...any) error {
	return &ValidationError{Kind: "region", ID: id, Reason: fmt.Sprintf(format, args...)}
}
