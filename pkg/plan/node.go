package plan

import (
	"fmt"

	"github.com/l7mp/flowplan/pkg/fields"
	"github.com/l7mp/flowplan/pkg/funcref"
)

// Kind classifies construction points for the engine compiler.
type Kind string

const (
	KindHead      Kind = "head"    // plan root
	KindSource    Kind = "source"  // named source binding
	KindMap       Kind = "map"     // per-tuple function application
	KindFilter    Kind = "filter"  // per-tuple predicate
	KindRename    Kind = "rename"  // field rename
	KindRetain    Kind = "retain"  // keep listed fields only
	KindDiscard   Kind = "discard" // drop listed fields
	KindInsert    Kind = "insert"  // insert constant fields
	KindSample    Kind = "sample"  // seeded random sample
	KindDebug     Kind = "debug"   // tuple tracing
	KindGroupBy   Kind = "groupby" // grouped aggregation
	KindMerge     Kind = "merge"   // fan-in of multiple lines
	KindBranch    Kind = "branch"  // entry into an isolated section
	KindRejoin    Kind = "rejoin"  // exit back to the main line
)

// OpSpec carries the payload of one transform: resolved input and output
// field sequences, the user callable (when the transform has one), and
// op-specific parameters. The core records these; interpreting them is the
// execution engine's job.
type OpSpec struct {
	In     fields.Fields  `json:"in,omitempty"`
	Out    fields.Fields  `json:"out,omitempty"`
	Fn     *funcref.Ref   `json:"fn,omitempty"`
	Params map[string]any `json:"params,omitempty"`
}

// Node is a single construction point. Nodes are immutable once created and
// point upstream only, so sharing them across derived plan values is safe.
type Node struct {
	id     uint64
	kind   Kind
	name   string
	spec   *OpSpec
	ups    []*Node
	scopes []string // branch identifiers enclosing the node, outermost first
}

// ID returns the node's construction sequence number, unique per plan.
func (n *Node) ID() uint64 { return n.id }

// Kind returns the node's transform kind.
func (n *Node) Kind() Kind { return n.kind }

// Name returns the node label: a branch identifier for branch/rejoin nodes,
// a source or operator label otherwise.
func (n *Node) Name() string { return n.name }

// Spec returns the transform payload, nil for structural nodes.
func (n *Node) Spec() *OpSpec { return n.spec }

// Upstreams returns the node's upstream construction points.
func (n *Node) Upstreams() []*Node { return n.ups }

// Scopes returns the branch identifiers enclosing the node, outermost
// first. Empty for main-line nodes. The engine uses this to associate
// transforms with the traps registered on their enclosing branches.
func (n *Node) Scopes() []string { return n.scopes }

// BranchID returns the innermost enclosing branch identifier, or "".
func (n *Node) BranchID() string {
	if len(n.scopes) == 0 {
		return ""
	}
	return n.scopes[len(n.scopes)-1]
}

// OutFields returns the fields available after this node, nil when the
// shape is not known until the engine binds the sources. The shape passes
// through single-upstream nodes; a fan-in without an agreed shape of its
// own stays unknown.
func (n *Node) OutFields() fields.Fields {
	if n.spec != nil && n.spec.Out != nil {
		return n.spec.Out
	}
	if len(n.ups) == 1 {
		return n.ups[0].OutFields()
	}
	return nil
}

func (n *Node) String() string {
	label := string(n.kind)
	if n.name != "" {
		label = fmt.Sprintf("%s(%s)", n.kind, n.name)
	}
	return fmt.Sprintf("node_%d_%s", n.id, label)
}
