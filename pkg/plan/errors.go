package plan

import (
	"errors"
	"fmt"

	"github.com/l7mp/flowplan/pkg/fields"
)

var (
	// ErrBranchScope signals a branch exit that does not match the
	// innermost entered branch (stack discipline violation).
	ErrBranchScope = errors.New("branch scope mismatch")
	// ErrDuplicateRegistration signals a sink or trap identifier
	// registered twice.
	ErrDuplicateRegistration = errors.New("duplicate registration")
	// ErrEmptyMerge signals a merge with no input plans.
	ErrEmptyMerge = errors.New("merge needs at least one plan")
	// ErrMergeShape signals fan-in inputs with disagreeing tuple shapes.
	ErrMergeShape = errors.New("merge shape mismatch")
)

type ErrScope = error

func NewBranchScopeError(want, got string) ErrScope {
	return fmt.Errorf("%w: exiting %q but innermost scope is %q", ErrBranchScope, want, got)
}

type ErrDuplicate = error

func NewDuplicateRegistrationError(kind, id string) ErrDuplicate {
	return fmt.Errorf("%w: %s %q already registered", ErrDuplicateRegistration, kind, id)
}

type ErrMerge = error

func NewEmptyMergeError() ErrMerge {
	return ErrEmptyMerge
}

func NewMergeShapeError(a, b fields.Fields) ErrMerge {
	return fmt.Errorf("%w: %s vs %s", ErrMergeShape, a, b)
}
