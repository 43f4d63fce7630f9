package sysmap

import (
	"errors"
	"fmt"
)

// Sentinel errors for invalid map contents.
var (
	// ErrUnresolvedIcon is returned when an element's icon is not in the
	// image cache or failed to load.
	ErrUnresolvedIcon = errors.New("sysmap: element icon is not resolved")

	// ErrInvalidShape is returned for an unknown shape type.
	ErrInvalidShape = errors.New("sysmap: invalid shape type")
)

// ElementError reports which map entity failed to render.
type ElementError struct {
	// Kind is "element", "link" or "shape".
	Kind string
	ID   string
	Err  error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("sysmap: %s %s: %v", e.Kind, e.ID, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}
