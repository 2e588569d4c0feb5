package plan

import (
	"slices"

	"github.com/l7mp/flowplan/pkg/fields"
)

// Merge folds plans pairwise into a single plan whose cursor is a fan-in
// point over all input cursors. Tails and registries are unioned; a sink or
// trap identifier registered by more than one input plan is a construction
// error, and so are input cursors with disagreeing tuple shapes. The fan-in
// shape is known only when every input declares one; a single unbound input
// leaves it unknown until the engine binds the sources. All input plans are
// consumed.
func Merge(plans ...Plan) (Plan, error) {
	if len(plans) == 0 {
		return Plan{}, NewEmptyMergeError()
	}
	if len(plans) == 1 {
		return plans[0], nil
	}

	base := plans[0]
	q := base

	ups := make([]*Node, len(plans))
	tails := []*Node{}
	sinks := map[string]Sink{}
	traps := map[string]Trap{}
	for _, p := range plans {
		tails = append(tails, p.tails...)
		for k, v := range p.sinks {
			if _, ok := sinks[k]; ok {
				return Plan{}, NewDuplicateRegistrationError("sink", k)
			}
			sinks[k] = v
		}
		for k, v := range p.traps {
			if _, ok := traps[k]; ok {
				return Plan{}, NewDuplicateRegistrationError("trap", k)
			}
			traps[k] = v
		}
	}
	for i, p := range plans {
		ups[i] = p.cursor
	}

	var shape fields.Fields
	known := true
	for _, p := range plans {
		cur := p.CurrentFields()
		if cur == nil {
			known = false
			continue
		}
		if shape == nil {
			shape = cur
			continue
		}
		if !slices.Equal(shape, cur) {
			return Plan{}, NewMergeShapeError(shape, cur)
		}
	}
	var spec *OpSpec
	if known && shape != nil {
		spec = &OpSpec{Out: shape}
	}

	q.tails = tails
	q.sinks = sinks
	q.traps = traps
	q.cursor = base.newNode(KindMerge, "", spec, ups...)

	q.log.V(1).Info("plans merged", "count", len(plans), "tails", len(tails))
	return q, nil
}
