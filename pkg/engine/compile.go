package engine

import (
	"fmt"
	"strings"

	"github.com/go-logr/logr"

	"github.com/l7mp/flowplan/pkg/plan"
)

// CompiledPlan is the structurally validated form of a finished plan,
// ready to be translated into engine-native operator nodes.
type CompiledPlan struct {
	// Nodes in topological order: upstreams always precede consumers.
	Nodes []*plan.Node
	// Tails are the terminal construction points, one per sink write.
	Tails []*plan.Node
	// Downstream records the single consumer of every non-tail node.
	Downstream map[*plan.Node]*plan.Node
	// Sinks and Traps are the plan's registries, keyed by identifier.
	Sinks map[string]plan.Sink
	Traps map[string]plan.Trap

	labels map[*plan.Node]string
}

// Label returns a stable, compile-scoped label for a node.
func (cp *CompiledPlan) Label(n *plan.Node) string { return cp.labels[n] }

func (cp *CompiledPlan) String() string {
	parts := make([]string, len(cp.Nodes))
	for i, n := range cp.Nodes {
		parts[i] = cp.labels[n]
	}
	return strings.Join(parts, " -> ")
}

// Compile validates a finished plan and produces its compiled form. A plan
// qualifies when every construction point reachable from its tails is
// acyclic, every non-tail point has exactly one downstream consumer, and
// every transform references only fields available at its point. Compile
// consumes the plan per the linear-use contract.
func Compile(p plan.Plan, log logr.Logger) (*CompiledPlan, error) {
	tails := p.Tails()
	if len(tails) == 0 {
		return nil, NewNoOutputsError()
	}

	cp := &CompiledPlan{
		Tails:      tails,
		Downstream: map[*plan.Node]*plan.Node{},
		Sinks:      p.Sinks(),
		Traps:      p.Traps(),
		labels:     map[*plan.Node]string{},
	}

	// postorder DFS yields a topological order; persistent nodes cannot
	// cycle but the walk still tracks an in-progress set so a corrupted
	// graph reports instead of hanging
	const (
		visiting = 1
		done     = 2
	)
	state := map[*plan.Node]int{}
	consumers := map[*plan.Node][]*plan.Node{}

	var walk func(n *plan.Node) error
	walk = func(n *plan.Node) error {
		switch state[n] {
		case done:
			return nil
		case visiting:
			return NewCycleError(n.String())
		}
		state[n] = visiting
		for _, up := range n.Upstreams() {
			consumers[up] = append(consumers[up], n)
			if err := walk(up); err != nil {
				return err
			}
		}
		state[n] = done
		cp.Nodes = append(cp.Nodes, n)
		return nil
	}
	for _, t := range tails {
		if err := walk(t); err != nil {
			return nil, err
		}
	}

	tailSet := map[*plan.Node]bool{}
	for _, t := range tails {
		tailSet[t] = true
	}
	for _, n := range cp.Nodes {
		cs := consumers[n]
		if tailSet[n] {
			continue
		}
		// every collected non-tail node was reached through a consumer
		if len(cs) != 1 {
			return nil, NewStructureError(fmt.Sprintf(
				"node %s has %d consumers; was a plan value reused after a transform?",
				n, len(cs)))
		}
		cp.Downstream[n] = cs[0]
	}

	if err := checkFieldAvailability(cp.Nodes); err != nil {
		return nil, err
	}

	for i, n := range cp.Nodes {
		cp.labels[n] = fmt.Sprintf("node_%d_%s", i, n.Kind())
	}

	log.V(1).Info("plan compiled", "nodes", len(cp.Nodes), "tails", len(tails),
		"sinks", len(cp.Sinks), "traps", len(cp.Traps))

	return cp, nil
}

// checkFieldAvailability verifies that the fields referenced by each
// transform are a subset of the fields available at its construction point.
// Points with unknown shape (unbound sources) are skipped; the engine
// re-checks them once source schemas are bound.
func checkFieldAvailability(nodes []*plan.Node) error {
	for _, n := range nodes {
		spec := n.Spec()
		if spec == nil || spec.In == nil || len(n.Upstreams()) == 0 {
			continue
		}
		available := n.Upstreams()[0].OutFields()
		if available == nil {
			continue
		}
		for _, f := range spec.In {
			if !available.Contains(f) {
				return NewFieldAvailabilityError(n.String(), f.String(), available.String())
			}
		}
	}
	return nil
}
