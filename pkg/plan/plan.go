package plan

import (
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/l7mp/flowplan/pkg/fields"
	"github.com/l7mp/flowplan/pkg/util"
)

// Plan is the linear flow value threaded through every transform. It is a
// value, not a shared mutable object: each transform takes ownership of one
// Plan and produces a new one, and the original must not be reused by the
// caller afterward. Registries are cloned on write, so two plan values
// never alias a map one of them mutates.
//
// The only shared mutable state behind a plan is the unique-token source
// (node IDs and generated field names), which is atomic so independent
// plans may construct concurrently.
type Plan struct {
	cursor *Node
	tails  []*Node
	sinks  map[string]Sink
	traps  map[string]Trap
	scopes []string
	gen    *fields.Generator
	nextID *atomic.Uint64
	log    logr.Logger
}

// Option configures a new plan.
type Option func(*Plan)

// WithLogger threads a logger through the construction chain.
func WithLogger(log logr.Logger) Option {
	return func(p *Plan) { p.log = log }
}

// WithGenerator sets the unique field-name generator. Useful for tests that
// need deterministic generated names.
func WithGenerator(gen *fields.Generator) Option {
	return func(p *Plan) { p.gen = gen }
}

// New returns an empty plan: a fresh root construction point, no tails and
// empty registries.
func New(opts ...Option) Plan {
	p := Plan{
		sinks:  map[string]Sink{},
		traps:  map[string]Trap{},
		gen:    fields.NewGenerator(),
		nextID: &atomic.Uint64{},
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(&p)
	}
	p.cursor = p.newNode(KindHead, "", nil)
	return p
}

// Apply returns a new plan whose cursor is f(p.cursor), all other state
// carried over unchanged. This is the single primitive every operator is
// built from; operators therefore compose associatively.
func Apply(p Plan, f func(*Node) *Node) Plan {
	q := p
	q.cursor = f(p.cursor)
	return q
}

// Extend appends a new construction point of the given kind after the
// cursor. This is the Apply specialization every leaf operator uses.
func (p Plan) Extend(kind Kind, name string, spec *OpSpec) Plan {
	q := Apply(p, func(c *Node) *Node {
		return p.newNode(kind, name, spec, c)
	})
	q.log.V(2).Info("transform applied", "kind", string(kind), "node", q.cursor.String(),
		"spec", util.Stringify(spec))
	return q
}

// Cursor returns the active construction point.
func (p Plan) Cursor() *Node { return p.cursor }

// Tails returns the finalized terminal construction points, one per sink
// write. The returned slice must not be mutated.
func (p Plan) Tails() []*Node { return p.tails }

// Sinks returns the sink registry keyed by sink identifier.
func (p Plan) Sinks() map[string]Sink { return p.sinks }

// Traps returns the trap registry keyed by trap identifier.
func (p Plan) Traps() map[string]Trap { return p.traps }

// CurrentFields returns the fields available at the cursor, nil when not
// yet known.
func (p Plan) CurrentFields() fields.Fields { return p.cursor.OutFields() }

// Generator returns the plan's unique field-name source.
func (p Plan) Generator() *fields.Generator { return p.gen }

// Logger returns the logger threaded through the construction chain.
func (p Plan) Logger() logr.Logger { return p.log }

// newNode mints a construction point tagged with the branch scopes active
// at creation.
func (p Plan) newNode(kind Kind, name string, spec *OpSpec, ups ...*Node) *Node {
	return &Node{
		id:     p.nextID.Add(1),
		kind:   kind,
		name:   name,
		spec:   spec,
		ups:    ups,
		scopes: p.scopes,
	}
}

// addTail returns a plan with the node appended to the terminal outputs.
// The tail list is cloned: registries and tails only grow, and clone-on-
// write keeps derived plan values from aliasing each other's state.
func (p Plan) addTail(n *Node) Plan {
	q := p
	q.tails = append(append([]*Node{}, p.tails...), n)
	return q
}

func (p Plan) registerSink(s Sink) (Plan, error) {
	if _, ok := p.sinks[s.ID]; ok {
		return Plan{}, NewDuplicateRegistrationError("sink", s.ID)
	}
	q := p
	q.sinks = make(map[string]Sink, len(p.sinks)+1)
	for k, v := range p.sinks {
		q.sinks[k] = v
	}
	q.sinks[s.ID] = s
	return q, nil
}

func (p Plan) registerTrap(t Trap) (Plan, error) {
	if _, ok := p.traps[t.ID]; ok {
		return Plan{}, NewDuplicateRegistrationError("trap", t.ID)
	}
	q := p
	q.traps = make(map[string]Trap, len(p.traps)+1)
	for k, v := range p.traps {
		q.traps[k] = v
	}
	q.traps[t.ID] = t
	return q, nil
}
