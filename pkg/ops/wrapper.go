package ops

import (
	"github.com/l7mp/flowplan/pkg/fields"
	"github.com/l7mp/flowplan/pkg/plan"
)

// dedupInputs resolves a selector at the cursor and runs the result through
// field deduplication, splicing a rename (copy) transform for every
// repeated occurrence. It returns the extended plan, the all-distinct input
// sequence the operator must use internally, and the generated fields the
// caller should discard once the operator no longer needs them.
func dedupInputs(p plan.Plan, in fields.Selector) (plan.Plan, fields.Fields, fields.Fields, error) {
	resolved, err := in.Resolve(p.CurrentFields())
	if err != nil {
		return plan.Plan{}, nil, nil, err
	}

	unique, renames, delta := fields.Deduplicate(resolved, p.Generator())
	if renames == nil {
		// all-distinct fast path
		return p, resolved, nil, nil
	}

	for _, r := range renames {
		p = spliceRenameCopy(p, r)
	}
	return p, unique, delta, nil
}

// spliceRenameCopy appends a rename transform that copies one field under a
// generated name, keeping the original in place. The duplicate occurrence
// the generated name replaces still refers to the same underlying value.
func spliceRenameCopy(p plan.Plan, r fields.Rename) plan.Plan {
	out := addFields(p.CurrentFields(), r.To)
	return p.Extend(plan.KindRename, "", &plan.OpSpec{
		In:  fields.Fields{r.From},
		Out: out,
		Params: map[string]any{
			"from": r.From.String(),
			"to":   r.To.String(),
			"copy": true,
		},
	})
}

// discardDelta splices a discard transform for generated fields still
// present in the cursor's output shape.
func discardDelta(p plan.Plan, delta fields.Fields) (plan.Plan, error) {
	if len(delta) == 0 {
		return p, nil
	}
	cur := p.CurrentFields()
	if cur == nil {
		return p, nil
	}
	drop := fields.Fields{}
	for _, f := range delta {
		if cur.Contains(f) {
			drop = append(drop, f)
		}
	}
	if len(drop) == 0 {
		return p, nil
	}
	return Discard(p, drop)
}

// addFields extends a known field shape, passing unknown (nil) through.
func addFields(current fields.Fields, more ...fields.Field) fields.Fields {
	if current == nil {
		return nil
	}
	return current.Append(more...)
}

// defaultOutput implements the output-field defaulting rule: with no output
// fields given, the result shape is the current fields plus the operator's
// declared new fields, in order; a name tie is a construction error the
// caller resolves by pre-renaming.
func defaultOutput(current, decl fields.Fields) (fields.Fields, error) {
	if current == nil {
		// unknown input shape stays unknown until the engine binds it
		return nil, nil
	}
	return fields.Union(current, decl)
}
