package fields

// selectorKind tags the three selector shapes.
type selectorKind int

const (
	selectExplicit selectorKind = iota
	selectAll
	selectNone
)

// Selector picks fields at a construction point: an explicit list, or one of
// the All/None sentinels.
type Selector struct {
	kind   selectorKind
	fields Fields
}

var (
	// All selects every field present at the construction point.
	All = Selector{kind: selectAll}
	// None selects no fields.
	None = Selector{kind: selectNone}
)

// Select builds an explicit selector from names.
func Select(names ...string) Selector {
	return Selector{kind: selectExplicit, fields: New(names...)}
}

// Explicit builds an explicit selector from an existing field sequence.
func Explicit(fs Fields) Selector {
	return Selector{kind: selectExplicit, fields: fs.Append()}
}

// IsAll reports whether the selector is the All sentinel.
func (s Selector) IsAll() bool { return s.kind == selectAll }

// IsNone reports whether the selector is the None sentinel.
func (s Selector) IsNone() bool { return s.kind == selectNone }

func (s Selector) String() string {
	switch s.kind {
	case selectAll:
		return "ALL"
	case selectNone:
		return "NONE"
	default:
		return s.fields.String()
	}
}

// Resolve expands the selector against the fields present at a construction
// point. A nil current sequence means the fields at the point are not yet
// known (a source head whose shape the engine discovers at bind time): All
// resolves to nil and explicit names pass through unchecked, their
// validation deferred to the engine compiler.
func (s Selector) Resolve(current Fields) (Fields, error) {
	switch s.kind {
	case selectAll:
		return current, nil
	case selectNone:
		return Fields{}, nil
	default:
		if current != nil {
			for _, f := range s.fields {
				if !current.Contains(f) {
					return nil, NewUnknownFieldError(f, current)
				}
			}
		}
		return s.fields, nil
	}
}
