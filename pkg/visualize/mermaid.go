package visualize

import (
	"fmt"

	"github.com/emicklei/dot"

	"github.com/l7mp/flowplan/pkg/engine"
)

// MermaidGenerator generates Mermaid flowchart diagrams.
type MermaidGenerator struct{}

// Generate creates a Mermaid flowchart from a compiled plan using the dot
// library.
func (m *MermaidGenerator) Generate(cp *engine.CompiledPlan, name string) string {
	dotGraph := BuildDotGraph(cp, name)

	// Generate Mermaid flowchart with left-to-right orientation.
	mermaid := dot.MermaidFlowchart(dotGraph, dot.MermaidLeftToRight)

	// Wrap in markdown code block.
	return fmt.Sprintf("```mermaid\n%s\n```\n", mermaid)
}
