package engine

import (
	"context"
	"fmt"

	"github.com/l7mp/flowplan/pkg/funcref"
	"github.com/l7mp/flowplan/pkg/plan"
)

// Target is an engine-native destination produced by a resolver.
type Target interface {
	fmt.Stringer
}

// SinkResolver maps opaque sink and trap destination descriptors to
// engine-native targets. Implemented by the external source/sink layer; the
// core never inspects a destination's storage semantics.
type SinkResolver interface {
	ResolveSink(sink plan.Sink) (Target, error)
	ResolveTrap(trap plan.Trap) (Target, error)
}

// Executor schedules and runs a compiled plan across worker processes.
// Implemented by the external execution engine. Workers resolve the plan's
// function references through a funcref registry populated identically to
// the construction site's.
type Executor interface {
	Execute(ctx context.Context, cp *CompiledPlan, reg *funcref.Registry) error
}
