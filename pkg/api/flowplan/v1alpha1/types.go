// Package v1alpha1 holds the declarative plan document schema: a YAML/JSON
// representation of a tuple-processing plan that the convert package turns
// into a builder plan value.
package v1alpha1

import (
	"github.com/l7mp/flowplan/pkg/funcref"
)

// PlanSpec is a complete declarative plan: one source, a chain of
// operations, the sinks the result is written to, and an optional trap
// covering the whole chain.
type PlanSpec struct {
	// Name labels the plan in logs and diagrams.
	Name string `json:"name"`
	// Source is the input the chain starts from.
	Source SourceSpec `json:"source"`
	// Ops is the transform chain, applied in order.
	Ops []Op `json:"ops,omitempty"`
	// Sinks are the terminal outputs; at least one is required for the
	// plan to compile.
	Sinks []SinkSpec `json:"sinks"`
	// Trap, when set, covers every operation of the chain.
	Trap *TrapSpec `json:"trap,omitempty"`
}

// SourceSpec names an input and optionally declares its tuple shape.
// Declared fields enable construction-time selector checking.
type SourceSpec struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields,omitempty"`
}

// SinkSpec names a terminal output destination.
type SinkSpec struct {
	ID          string         `json:"id"`
	Destination string         `json:"destination"`
	Params      map[string]any `json:"params,omitempty"`
}

// TrapSpec names an error destination.
type TrapSpec struct {
	ID          string         `json:"id"`
	Destination string         `json:"destination"`
	Params      map[string]any `json:"params,omitempty"`
}

// Op is a tagged union over the operator library: exactly one member must
// be set.
type Op struct {
	Map     *MapOp     `json:"map,omitempty"`
	Filter  *FilterOp  `json:"filter,omitempty"`
	Rename  *RenameOp  `json:"rename,omitempty"`
	Retain  *RetainOp  `json:"retain,omitempty"`
	Discard *DiscardOp `json:"discard,omitempty"`
	Insert  *InsertOp  `json:"insert,omitempty"`
	Sample  *SampleOp  `json:"sample,omitempty"`
	Debug   *DebugOp   `json:"debug,omitempty"`
	GroupBy *GroupByOp `json:"groupBy,omitempty"`
}

// MapOp applies a function per tuple. An empty In selects all fields.
type MapOp struct {
	In   []string    `json:"in,omitempty"`
	Fn   funcref.Ref `json:"fn"`
	Decl []string    `json:"decl,omitempty"`
	// Out, when set, replaces the output-defaulting rule.
	Out []string `json:"out,omitempty"`
}

// FilterOp keeps tuples matching a predicate. An empty In selects all
// fields.
type FilterOp struct {
	In []string    `json:"in,omitempty"`
	Fn funcref.Ref `json:"fn"`
}

// RenameOp renames fields positionally.
type RenameOp struct {
	From []string `json:"from"`
	To   []string `json:"to"`
}

// RetainOp keeps only the listed fields.
type RetainOp struct {
	Keep []string `json:"keep"`
}

// DiscardOp drops the listed fields.
type DiscardOp struct {
	Drop []string `json:"drop"`
}

// InsertOp adds constant-valued fields.
type InsertOp struct {
	Fields []string `json:"fields"`
	Values []any    `json:"values"`
}

// SampleOp keeps a seeded pseudo-random fraction of the tuples.
type SampleOp struct {
	Rate float64 `json:"rate"`
	Seed int64   `json:"seed,omitempty"`
}

// DebugOp traces tuples with a prefix.
type DebugOp struct {
	Prefix string `json:"prefix,omitempty"`
}

// GroupByOp groups by key fields and aggregates. Empty keys aggregate over
// everything.
type GroupByOp struct {
	Keys []string    `json:"keys,omitempty"`
	In   []string    `json:"in,omitempty"`
	Fn   funcref.Ref `json:"fn"`
	Decl []string    `json:"decl"`
}
