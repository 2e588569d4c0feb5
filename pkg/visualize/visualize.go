// Package visualize renders compiled plans as diagrams.
package visualize

import (
	"fmt"
	"strings"

	"github.com/emicklei/dot"

	"github.com/l7mp/flowplan/pkg/engine"
	"github.com/l7mp/flowplan/pkg/plan"
)

// BuildDotGraph creates a dot.Graph from a compiled plan. The unified graph
// can then be rendered in different formats (DOT, Mermaid, etc.).
func BuildDotGraph(cp *engine.CompiledPlan, name string) *dot.Graph {
	graph := dot.NewGraph(dot.Directed)
	graph.Attr("rankdir", "LR") // Left to right layout.
	graph.Attr("label", name)
	graph.Attr("labelloc", "t") // Label at top.
	graph.Attr("fontsize", "16")

	nodes := make(map[*plan.Node]dot.Node)

	for _, n := range cp.Nodes {
		dn := graph.Node(cp.Label(n)).
			Attr("label", nodeLabel(n)).
			Attr("shape", "box").
			Attr("style", "filled,rounded").
			Attr("fontname", "helvetica")

		switch n.Kind() {
		case plan.KindHead, plan.KindSource:
			dn.Attr("fillcolor", "lightgreen")
		case plan.KindBranch, plan.KindRejoin:
			dn.Attr("fillcolor", "lightyellow")
		case plan.KindMerge:
			dn.Attr("fillcolor", "plum")
		default:
			dn.Attr("fillcolor", "lightblue")
		}
		nodes[n] = dn
	}

	for _, n := range cp.Nodes {
		for _, up := range n.Upstreams() {
			graph.Edge(nodes[up], nodes[n]).
				Attr("fontname", "helvetica").
				Attr("fontsize", "10")
		}
	}

	// Sink and trap destinations hang off the registries, not the node set.
	for id, s := range cp.Sinks {
		sn := graph.Node("sink_"+id).
			Attr("label", fmt.Sprintf("%s\n%s", id, s.Destination)).
			Attr("shape", "ellipse").
			Attr("style", "filled").
			Attr("fillcolor", "lightcyan")
		if t := tailForBranch(cp, s.Branch); t != nil {
			graph.Edge(nodes[t], sn).Attr("label", "write").Attr("fontsize", "10")
		}
	}
	for id, t := range cp.Traps {
		tn := graph.Node("trap_"+id).
			Attr("label", fmt.Sprintf("%s\n%s", id, t.Destination)).
			Attr("shape", "ellipse").
			Attr("style", "filled").
			Attr("fillcolor", "mistyrose")
		for _, n := range cp.Nodes {
			if n.Kind() == plan.KindBranch && n.Name() == t.Branch {
				graph.Edge(nodes[n], tn).
					Attr("label", "trap").
					Attr("style", "dashed").
					Attr("fontsize", "10")
			}
		}
	}

	return graph
}

// nodeLabel builds the display label of a construction point.
func nodeLabel(n *plan.Node) string {
	label := string(n.Kind())
	if n.Kind() == plan.KindSource {
		label = fmt.Sprintf("%s: %s", n.Kind(), n.Name())
	}
	if spec := n.Spec(); spec != nil {
		parts := []string{}
		if spec.In != nil {
			parts = append(parts, "in: "+spec.In.String())
		}
		if spec.Fn != nil {
			parts = append(parts, "fn: "+spec.Fn.Key())
		}
		if len(parts) > 0 {
			label += "\n" + strings.Join(parts, "\n")
		}
	}
	return label
}

// tailForBranch finds the tail node registered under a branch identifier.
func tailForBranch(cp *engine.CompiledPlan, branch string) *plan.Node {
	for _, t := range cp.Tails {
		if t.BranchID() == branch {
			return t
		}
	}
	return nil
}
