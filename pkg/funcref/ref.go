package funcref

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
)

// Ref is a position-independent descriptor of a top-level function plus an
// optional ordered list of captured literal arguments. Refs marshal to
// JSON/YAML and resolve on any process whose registry carries the same
// path/name pair.
type Ref struct {
	// Path is the package import path of the function.
	Path string `json:"path"`
	// Name is the function name within the package.
	Name string `json:"name"`
	// Args holds captured literal arguments, in application order. Empty
	// for a bare reference.
	Args []any `json:"args,omitempty"`
}

// Key returns the registry lookup key.
func (r Ref) Key() string { return r.Path + "." + r.Name }

func (r Ref) String() string {
	if len(r.Args) == 0 {
		return r.Key()
	}
	args := make([]string, len(r.Args))
	for i, a := range r.Args {
		args[i] = fmt.Sprintf("%v", a)
	}
	return fmt.Sprintf("%s(%s, ...)", r.Key(), strings.Join(args, ", "))
}

// Method values carry a -fm suffix. Closures end in a funcN segment, or in a
// bare number when nested inside another closure. Neither is a resolvable
// top-level function.
var closureName = regexp.MustCompile(`^(func\d+|\d+)$`)

// nameOf recovers the package path and name of a top-level function value.
func nameOf(fn any) (string, string, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return "", "", NewInvalidCallableSpecError(
			fmt.Sprintf("expected a function, got %T", fn))
	}
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return "", "", NewInvalidCallableSpecError("function has no runtime name")
	}
	full := rf.Name()
	idx := strings.LastIndex(full, ".")
	if idx < 0 {
		return "", "", NewInvalidCallableSpecError(
			fmt.Sprintf("malformed function name %q", full))
	}
	path, name := full[:idx], full[idx+1:]
	if strings.HasSuffix(name, "-fm") || closureName.MatchString(name) {
		return "", "", NewInvalidCallableSpecError(
			fmt.Sprintf("%q is not a top-level function (closures and bound "+
				"methods cannot cross the process boundary)", full))
	}
	return path, name, nil
}

// Describe builds a ref for a top-level function, optionally capturing
// literal arguments. The function is registered in the default registry as
// a side effect so that in-process materialization always succeeds; remote
// processes must Register the same function themselves.
func Describe(fn any, args ...any) (Ref, error) {
	return DefaultRegistry.Describe(fn, args...)
}

// checkLiteral rejects captured arguments that would not survive
// serialization.
func checkLiteral(arg any) error {
	if _, err := json.Marshal(arg); err != nil {
		return NewInvalidCallableSpecError(
			fmt.Sprintf("captured argument %v is not a serializable literal: %v", arg, err))
	}
	return nil
}
