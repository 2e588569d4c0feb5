package funcref

import (
	"fmt"
	"reflect"
	"sync"
)

// Callable is a materialized function ready to be invoked per tuple. Runtime
// arguments follow any captured arguments already baked in.
type Callable func(args ...any) ([]any, error)

// Registry maps path/name pairs to function values. Worker processes
// populate their registry with Register calls at init time; materialization
// then resolves refs without any executable state ever crossing the wire.
type Registry struct {
	mu  sync.RWMutex
	fns map[string]reflect.Value
}

// DefaultRegistry is the process-wide registry used by the package-level
// Register, Describe and Materialize.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[string]reflect.Value)}
}

// Register records a top-level function under its runtime name. Safe to
// call from multiple init functions; re-registering the same function is a
// no-op.
func (r *Registry) Register(fn any) error {
	path, name, err := nameOf(fn)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[path+"."+name] = reflect.ValueOf(fn)
	return nil
}

// Register records fn in the default registry.
func Register(fn any) error { return DefaultRegistry.Register(fn) }

// MustRegister is Register for init-time use.
func MustRegister(fn any) {
	if err := Register(fn); err != nil {
		panic(err)
	}
}

// Describe builds a ref for fn, capturing the given literal arguments, and
// registers fn so the describing process can materialize its own refs.
func (r *Registry) Describe(fn any, args ...any) (Ref, error) {
	path, name, err := nameOf(fn)
	if err != nil {
		return Ref{}, err
	}
	for _, a := range args {
		if err := checkLiteral(a); err != nil {
			return Ref{}, err
		}
	}
	r.mu.Lock()
	r.fns[path+"."+name] = reflect.ValueOf(fn)
	r.mu.Unlock()

	ref := Ref{Path: path, Name: name}
	if len(args) > 0 {
		ref.Args = append([]any{}, args...)
	}
	return ref, nil
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

// Materialize resolves a ref into a callable, partially applied to the
// ref's captured arguments. Resolution failure means the materialization
// site lacks a Register call for the function: a configuration error the
// core cannot recover from.
func (r *Registry) Materialize(ref Ref) (Callable, error) {
	r.mu.RLock()
	fn, ok := r.fns[ref.Key()]
	r.mu.RUnlock()
	if !ok {
		return nil, NewUnresolvedReferenceError(ref.Path, ref.Name)
	}

	captured := append([]any{}, ref.Args...)
	return func(args ...any) ([]any, error) {
		all := make([]any, 0, len(captured)+len(args))
		all = append(all, captured...)
		all = append(all, args...)

		in, err := convertArgs(fn.Type(), all)
		if err != nil {
			return nil, fmt.Errorf("cannot invoke %s: %w", ref.Key(), err)
		}

		outs := fn.Call(in)
		ret := make([]any, 0, len(outs))
		for i, out := range outs {
			// trailing error return propagates as the call error
			if i == len(outs)-1 && out.Type().Implements(errType) {
				if !out.IsNil() {
					return nil, out.Interface().(error)
				}
				continue
			}
			ret = append(ret, out.Interface())
		}
		return ret, nil
	}, nil
}

// Materialize resolves a ref against the default registry.
func Materialize(ref Ref) (Callable, error) { return DefaultRegistry.Materialize(ref) }

// convertArgs coerces loosely typed arguments to the function's parameter
// types, handling variadic tails and the numeric widening JSON decoding
// introduces.
func convertArgs(t reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := t.NumIn()
	if t.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("expected at least %d arguments, got %d", fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("expected %d arguments, got %d", fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		var pt reflect.Type
		if i < fixed {
			pt = t.In(i)
		} else {
			pt = t.In(t.NumIn() - 1).Elem()
		}
		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(arg)
		switch {
		case av.Type().AssignableTo(pt):
			in[i] = av
		case av.Type().ConvertibleTo(pt):
			in[i] = av.Convert(pt)
		default:
			return nil, fmt.Errorf("argument %d: cannot use %T as %s", i, arg, pt)
		}
	}
	return in, nil
}
