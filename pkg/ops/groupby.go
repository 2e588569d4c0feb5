package ops

import (
	"github.com/l7mp/flowplan/pkg/fields"
	"github.com/l7mp/flowplan/pkg/funcref"
	"github.com/l7mp/flowplan/pkg/plan"
)

// NormalizeGrouping prepares a grouping key sequence. A non-empty sequence
// is returned unchanged with the plan untouched. An empty sequence means
// "aggregate over everything": a fresh field is synthesized, a pre-transform
// is spliced in that inserts the same constant into it for every tuple, and
// the synthetic field becomes the single group key, forcing all tuples into
// one group. The boolean reports whether a synthetic key was made.
func NormalizeGrouping(p plan.Plan, keys fields.Fields) (plan.Plan, fields.Fields, bool, error) {
	if len(keys) > 0 {
		return p, keys, false, nil
	}
	synthetic := p.Generator().Next()
	p, err := Insert(p, fields.Fields{synthetic}, groupAllConstant)
	if err != nil {
		return plan.Plan{}, nil, false, err
	}
	return p, fields.Fields{synthetic}, true, nil
}

// groupAllConstant is the literal NormalizeGrouping inserts into the
// synthetic key field. Any constant works as long as it is the same for
// every tuple.
const groupAllConstant = int64(1)

// GroupBy groups tuples by the key fields and applies an aggregate function
// to the selected input fields of each group, producing the declared fields
// alongside the keys. Empty keys aggregate over everything; the synthetic
// key NormalizeGrouping adds is discarded from the result shape.
//
// The aggregate callable conforms to the generic operator contract; the
// concrete built-ins (sum, count, first, ...) live with the execution
// engine.
func GroupBy(p plan.Plan, keys fields.Fields, in fields.Selector, agg funcref.Ref, decl fields.Fields) (plan.Plan, error) {
	p, groupKeys, synthetic, err := NormalizeGrouping(p, keys)
	if err != nil {
		return plan.Plan{}, err
	}

	// the grouping key sequence is operator input too: deduplicate it
	p, uniqueKeys, _, err := dedupInputs(p, fields.Explicit(groupKeys))
	if err != nil {
		return plan.Plan{}, err
	}

	p, inputs, _, err := dedupInputs(p, in)
	if err != nil {
		return plan.Plan{}, err
	}

	out := uniqueKeys
	if synthetic {
		out = fields.Fields{}
	}
	out, err = fields.Union(out, decl)
	if err != nil {
		return plan.Plan{}, err
	}

	return p.Extend(plan.KindGroupBy, "", &plan.OpSpec{
		In:  inputs,
		Out: out,
		Fn:  &agg,
		Params: map[string]any{
			"keys":      uniqueKeys.Names(),
			"synthetic": synthetic,
		},
	}), nil
}
