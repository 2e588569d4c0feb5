// Package convert turns declarative plan documents into builder plan
// values, so plans can be written in YAML and handed to the engine without
// any Go code at the call site.
package convert

import (
	"sigs.k8s.io/yaml"

	"github.com/l7mp/flowplan/pkg/api/flowplan/v1alpha1"
	"github.com/l7mp/flowplan/pkg/fields"
	"github.com/l7mp/flowplan/pkg/ops"
	"github.com/l7mp/flowplan/pkg/plan"
)

// Parse unmarshals a YAML (or JSON) plan document.
func Parse(data []byte) (*v1alpha1.PlanSpec, error) {
	spec := &v1alpha1.PlanSpec{}
	if err := yaml.UnmarshalStrict(data, spec); err != nil {
		return nil, NewParseError(err)
	}
	return spec, nil
}

// Convert builds a plan from a declarative document. The resulting plan is
// ready for engine compilation.
func Convert(spec *v1alpha1.PlanSpec, opts ...plan.Option) (plan.Plan, error) {
	if len(spec.Sinks) == 0 {
		return plan.Plan{}, NewSpecError("at least one sink is required")
	}

	p := plan.New(opts...)
	p = ops.Source(p, spec.Source.Name, fields.New(spec.Source.Fields...))

	chain := func(p plan.Plan) (plan.Plan, error) {
		var err error
		for i, op := range spec.Ops {
			p, err = applyOp(p, op)
			if err != nil {
				return plan.Plan{}, NewSpecErrorAt(i, err)
			}
		}
		return p, nil
	}

	var err error
	if spec.Trap != nil {
		t := spec.Trap
		p, err = p.Trap(plan.Trap{ID: t.ID, Destination: t.Destination, Params: t.Params}, chain)
	} else {
		p, err = chain(p)
	}
	if err != nil {
		return plan.Plan{}, err
	}

	for _, s := range spec.Sinks {
		p, err = p.Write(plan.Sink{ID: s.ID, Destination: s.Destination, Params: s.Params})
		if err != nil {
			return plan.Plan{}, err
		}
	}

	return p, nil
}

// selector maps the document shorthand: an empty list selects all fields.
func selector(names []string) fields.Selector {
	if len(names) == 0 {
		return fields.All
	}
	return fields.Select(names...)
}

func applyOp(p plan.Plan, op v1alpha1.Op) (plan.Plan, error) {
	switch {
	case op.Map != nil:
		o := op.Map
		if len(o.Out) > 0 {
			return ops.MapTo(p, selector(o.In), o.Fn, fields.New(o.Out...))
		}
		return ops.Map(p, selector(o.In), o.Fn, fields.New(o.Decl...))
	case op.Filter != nil:
		return ops.Filter(p, selector(op.Filter.In), op.Filter.Fn)
	case op.Rename != nil:
		return ops.Rename(p, fields.New(op.Rename.From...), fields.New(op.Rename.To...))
	case op.Retain != nil:
		return ops.Retain(p, fields.Select(op.Retain.Keep...))
	case op.Discard != nil:
		return ops.Discard(p, fields.New(op.Discard.Drop...))
	case op.Insert != nil:
		return ops.Insert(p, fields.New(op.Insert.Fields...), op.Insert.Values...)
	case op.Sample != nil:
		return ops.Sample(p, op.Sample.Rate, op.Sample.Seed)
	case op.Debug != nil:
		return ops.Debug(p, op.Debug.Prefix), nil
	case op.GroupBy != nil:
		o := op.GroupBy
		return ops.GroupBy(p, fields.New(o.Keys...), selector(o.In), o.Fn, fields.New(o.Decl...))
	default:
		return plan.Plan{}, NewSpecError("operation sets no member")
	}
}
