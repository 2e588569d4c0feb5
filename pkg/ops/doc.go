// Package ops is the leaf operator library of the plan builder. Every
// operator is defined purely in terms of plan.Apply: it consumes one plan
// value, wraps the cursor in a new construction point carrying the
// operator's spec, and returns the new plan.
//
// Operators that read caller-supplied input field sequences apply the
// mandatory deduplication wrapper: repeated names are replaced by generated
// fields, rename transforms are spliced in before the operator's own
// transform, and discard transforms clean up generated fields that survive
// in the operator's output. This is what keeps a same-named-field collision
// from ever reaching the execution engine.
package ops
