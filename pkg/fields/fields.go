package fields

import (
	"strings"

	"github.com/l7mp/flowplan/pkg/util"
)

// Field is a named attribute slot within a tuple.
type Field string

func (f Field) String() string { return string(f) }

// Fields is an ordered sequence of fields. The zero value is a valid empty
// sequence.
type Fields []Field

// New builds a field sequence from names.
func New(names ...string) Fields {
	fs := make(Fields, len(names))
	for i, n := range names {
		fs[i] = Field(n)
	}
	return fs
}

// Names returns the field names as plain strings.
func (fs Fields) Names() []string {
	return util.Map(func(f Field) string { return string(f) }, fs)
}

// Index returns the position of f in the sequence, or -1.
func (fs Fields) Index(f Field) int {
	for i, g := range fs {
		if g == f {
			return i
		}
	}
	return -1
}

// Contains reports whether f appears in the sequence.
func (fs Fields) Contains(f Field) bool { return fs.Index(f) >= 0 }

// Append returns a new sequence with the given fields appended. The receiver
// is never mutated: builder code shares field sequences across plan values.
func (fs Fields) Append(more ...Field) Fields {
	ret := make(Fields, 0, len(fs)+len(more))
	ret = append(ret, fs...)
	ret = append(ret, more...)
	return ret
}

// Without returns a new sequence with every occurrence of the given fields
// removed.
func (fs Fields) Without(drop ...Field) Fields {
	ret := make(Fields, 0, len(fs))
	for _, f := range fs {
		if Fields(drop).Contains(f) {
			continue
		}
		ret = append(ret, f)
	}
	return ret
}

func (fs Fields) String() string {
	return "[" + strings.Join(fs.Names(), ", ") + "]"
}

// Union merges two sequences in order, failing on a name collision. This is
// the output-field defaulting rule: callers must pre-rename ambiguous fields
// before an operator can declare new ones.
func Union(current, extra Fields) (Fields, error) {
	ret := current.Append()
	for _, f := range extra {
		if ret.Contains(f) {
			return nil, NewDuplicateFieldConflictError(f)
		}
		ret = append(ret, f)
	}
	return ret, nil
}
