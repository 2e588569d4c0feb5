// Package engine defines the hand-off boundary between plan construction
// and the external execution engine. Compile walks a finished plan from its
// tails, checks structural well-formedness (acyclic, one downstream
// consumer per non-tail construction point, transform field references
// available at their point) and produces a CompiledPlan: topologically
// ordered nodes plus the sink and trap registries.
//
// The engine itself, the cluster/storage layer behind sinks, and the
// concrete built-in aggregates are external collaborators; this package
// only declares the interfaces they implement.
package engine
