package ops

import (
	"github.com/l7mp/flowplan/pkg/plan"
)

// Sample keeps a pseudo-random fraction of the tuples. The seed makes the
// sample reproducible across runs; the keep rate is in (0, 1].
func Sample(p plan.Plan, rate float64, seed int64) (plan.Plan, error) {
	if rate <= 0 || rate > 1 {
		return plan.Plan{}, NewInvalidParameterError("sample", "rate must be in (0, 1]")
	}
	return p.Extend(plan.KindSample, "", &plan.OpSpec{
		Out: p.CurrentFields(),
		Params: map[string]any{
			"rate": rate,
			"seed": seed,
		},
	}), nil
}

// Debug traces every tuple passing the construction point, prefixed so
// interleaved traces from parallel workers stay attributable.
func Debug(p plan.Plan, prefix string) plan.Plan {
	return p.Extend(plan.KindDebug, prefix, &plan.OpSpec{
		Out: p.CurrentFields(),
		Params: map[string]any{
			"prefix": prefix,
		},
	})
}
