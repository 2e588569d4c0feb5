// Package funcref implements the portable function-reference protocol: the
// only construct through which user-supplied behavior crosses the process
// boundary between plan construction and plan execution.
//
// A Ref names a top-level function by package path and name, optionally
// pre-applied to a fixed list of captured literal arguments. The ref is a
// plain serializable value; no closures and no live plan references ever
// travel with it. Worker processes materialize a ref back into a callable
// through a Registry populated by Register calls at init time, so the same
// path/name pair resolves to the same function in every process running the
// binary.
//
// Capture semantics: Describe(f, a, b) yields a ref that materializes into
// a callable equivalent to f partially applied to (a, b), with the
// remaining arguments supplied per tuple at execution time.
package funcref
