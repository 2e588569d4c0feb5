// Package fields implements the name-addressed attribute model of the plan
// builder: ordered field sequences, selector resolution against the fields
// available at a construction point, and the deduplication algorithm that
// keeps same-named fields from ever reaching the execution engine.
//
// Field names within a single tuple shape must be unique. Operators that
// accept caller-supplied field sequences run them through Deduplicate and
// splice rename transforms for every repeated occurrence, so the engine
// only ever sees all-distinct names.
//
// Generated replacement names come from a Generator, a process-safe unique
// token source shared by an entire plan construction. The generator is an
// explicit value threaded through the builder, never a package global, so
// construction stays deterministic and testable.
package fields
