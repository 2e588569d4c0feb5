package visualize

import (
	"github.com/l7mp/flowplan/pkg/engine"
)

// DotGenerator generates Graphviz DOT diagrams.
type DotGenerator struct{}

// Generate creates a Graphviz DOT diagram from a compiled plan.
func (d *DotGenerator) Generate(cp *engine.CompiledPlan, name string) string {
	dotGraph := BuildDotGraph(cp, name)
	return dotGraph.String()
}
