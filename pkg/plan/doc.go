// Package plan implements the linear flow value at the heart of the plan
// builder: an immutable-by-replacement record carrying the active
// construction cursor plus the accumulated terminal tails, sink registry and
// trap registry of a distributed tuple-processing plan.
//
// Construction points are persistent nodes pointing upstream, so the graph
// is acyclic by construction. Every transform consumes one Plan and returns
// a new one; the original must not be reused afterward (linear-use
// contract). Apply is the single primitive every operator is built from,
// which makes transform application associative:
//
//	Apply(Apply(p, f), g) == Apply(p, func(c *Node) *Node { return g(f(c)) })
//
// Side outputs and scoped error handling use the branch protocol: Branch
// renames the cursor into an isolated, uniquely named section of the plan,
// runs a caller-supplied sub-transform there, and rejoins the main line
// under a fresh anonymous cursor. Write and Trap are the two concrete uses.
//
// A finished plan's Tails, Sinks and Traps are handed to an external
// execution engine for compilation; see package engine.
package plan
