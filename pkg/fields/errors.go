package fields

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField signals a selector naming a field absent at its
	// construction point.
	ErrUnknownField = errors.New("unknown field")
	// ErrDuplicateFieldConflict signals declared output fields that still
	// collide with existing fields after deduplication.
	ErrDuplicateFieldConflict = errors.New("duplicate field conflict")
)

type ErrUnknown = error

func NewUnknownFieldError(f Field, available Fields) ErrUnknown {
	return fmt.Errorf("%w %q (available: %s)", ErrUnknownField, f, available)
}

type ErrConflict = error

func NewDuplicateFieldConflictError(f Field) ErrConflict {
	return fmt.Errorf("%w: field %q already present", ErrDuplicateFieldConflict, f)
}
