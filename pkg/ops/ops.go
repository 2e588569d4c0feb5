package ops

import (
	"github.com/l7mp/flowplan/pkg/fields"
	"github.com/l7mp/flowplan/pkg/funcref"
	"github.com/l7mp/flowplan/pkg/plan"
)

// Source binds a named source to the plan and declares the fields its
// tuples carry. Declaring fields turns on construction-time selector
// checking; a source with unknown shape (nil fields) defers checking to the
// engine compiler.
func Source(p plan.Plan, name string, fs fields.Fields) plan.Plan {
	return p.Extend(plan.KindSource, name, &plan.OpSpec{Out: fs})
}

// Map applies a per-tuple function to the selected input fields. The
// function's results populate the declared fields; with no explicit result
// shape the output defaults to the current fields plus the declared ones.
func Map(p plan.Plan, in fields.Selector, fn funcref.Ref, decl fields.Fields) (plan.Plan, error) {
	p, inputs, delta, err := dedupInputs(p, in)
	if err != nil {
		return plan.Plan{}, err
	}

	out, err := defaultOutput(p.CurrentFields(), decl)
	if err != nil {
		return plan.Plan{}, err
	}

	p = p.Extend(plan.KindMap, "", &plan.OpSpec{
		In:  inputs,
		Out: out,
		Fn:  &fn,
		Params: map[string]any{
			"decl": decl.Names(),
		},
	})
	return discardDelta(p, delta)
}

// MapTo is Map with an explicit output shape replacing the defaulting rule:
// the result tuples carry exactly the given fields.
func MapTo(p plan.Plan, in fields.Selector, fn funcref.Ref, out fields.Fields) (plan.Plan, error) {
	p, inputs, _, err := dedupInputs(p, in)
	if err != nil {
		return plan.Plan{}, err
	}
	// the explicit output shape drops generated fields by itself
	return p.Extend(plan.KindMap, "", &plan.OpSpec{
		In:  inputs,
		Out: out,
		Fn:  &fn,
		Params: map[string]any{
			"decl": out.Names(),
		},
	}), nil
}

// Filter keeps the tuples for which the predicate evaluates true over the
// selected input fields. The tuple shape is unchanged.
func Filter(p plan.Plan, in fields.Selector, fn funcref.Ref) (plan.Plan, error) {
	p, inputs, delta, err := dedupInputs(p, in)
	if err != nil {
		return plan.Plan{}, err
	}

	p = p.Extend(plan.KindFilter, "", &plan.OpSpec{
		In:  inputs,
		Out: p.CurrentFields(),
		Fn:  &fn,
	})
	return discardDelta(p, delta)
}

// Rename replaces field names positionally: from[i] becomes to[i].
func Rename(p plan.Plan, from, to fields.Fields) (plan.Plan, error) {
	if len(from) != len(to) {
		return plan.Plan{}, NewArityMismatchError("rename", len(from), len(to))
	}

	cur := p.CurrentFields()
	out := cur
	if cur != nil {
		for _, f := range from {
			if !cur.Contains(f) {
				return plan.Plan{}, fields.NewUnknownFieldError(f, cur)
			}
		}
		out = make(fields.Fields, len(cur))
		copy(out, cur)
		for i, f := range from {
			if j := out.Index(f); j >= 0 {
				out[j] = to[i]
			}
		}
		seen := map[fields.Field]struct{}{}
		for _, f := range out {
			if _, ok := seen[f]; ok {
				return plan.Plan{}, fields.NewDuplicateFieldConflictError(f)
			}
			seen[f] = struct{}{}
		}
	}

	return p.Extend(plan.KindRename, "", &plan.OpSpec{
		In:  from,
		Out: out,
		Params: map[string]any{
			"from": from.Names(),
			"to":   to.Names(),
		},
	}), nil
}

// Retain keeps only the selected fields, in selector order.
func Retain(p plan.Plan, keep fields.Selector) (plan.Plan, error) {
	// generated copies of repeated names become part of the retained shape
	p, inputs, _, err := dedupInputs(p, keep)
	if err != nil {
		return plan.Plan{}, err
	}

	return p.Extend(plan.KindRetain, "", &plan.OpSpec{
		In:  inputs,
		Out: inputs,
	}), nil
}

// Discard drops the given fields from the tuple shape.
func Discard(p plan.Plan, drop fields.Fields) (plan.Plan, error) {
	cur := p.CurrentFields()
	out := cur
	if cur != nil {
		for _, f := range drop {
			if !cur.Contains(f) {
				return plan.Plan{}, fields.NewUnknownFieldError(f, cur)
			}
		}
		out = cur.Without(drop...)
	}
	return p.Extend(plan.KindDiscard, "", &plan.OpSpec{
		In:  drop,
		Out: out,
	}), nil
}

// Insert adds constant-valued fields to every tuple. Values must be plain
// serializable literals; there is one value per inserted field.
func Insert(p plan.Plan, fs fields.Fields, values ...any) (plan.Plan, error) {
	if len(fs) != len(values) {
		return plan.Plan{}, NewArityMismatchError("insert", len(fs), len(values))
	}
	for _, v := range values {
		if err := checkLiteral(v); err != nil {
			return plan.Plan{}, err
		}
	}

	out, err := defaultOutput(p.CurrentFields(), fs)
	if err != nil {
		return plan.Plan{}, err
	}

	return p.Extend(plan.KindInsert, "", &plan.OpSpec{
		Out: out,
		Params: map[string]any{
			"fields": fs.Names(),
			"values": append([]any{}, values...),
		},
	}), nil
}
