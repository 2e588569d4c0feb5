package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoOutputs signals a plan compiled without a single sink write.
	ErrNoOutputs = errors.New("plan has no terminal outputs")
	// ErrCycle signals a cycle among construction points.
	ErrCycle = errors.New("plan graph has a cycle")
	// ErrStructure signals a consumer-count violation, usually a plan
	// value reused after a transform in violation of the linear-use
	// contract.
	ErrStructure = errors.New("malformed plan structure")
	// ErrFieldAvailability signals a transform referencing a field not
	// available at its construction point.
	ErrFieldAvailability = errors.New("field not available")
)

type ErrCompile = error

func NewNoOutputsError() ErrCompile {
	return ErrNoOutputs
}

func NewCycleError(node string) ErrCompile {
	return fmt.Errorf("%w at %s", ErrCycle, node)
}

func NewStructureError(detail string) ErrCompile {
	return fmt.Errorf("%w: %s", ErrStructure, detail)
}

func NewFieldAvailabilityError(node, field, available string) ErrCompile {
	return fmt.Errorf("%w: %s references %q, available: %s",
		ErrFieldAvailability, node, field, available)
}
