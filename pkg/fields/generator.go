package fields

import (
	"fmt"
	"sync/atomic"
)

// Generator is a unique field-name source. One generator is shared by an
// entire plan construction so that generated names never collide across
// branch scopes; independent plans may construct concurrently, hence the
// atomic counter.
type Generator struct {
	prefix string
	next   atomic.Uint64
}

// instance salts the default prefix so generators of independently built
// plans never mint the same name, even when the plans are merged later.
var instance atomic.Uint64

// NewGenerator returns a generator producing names with the default prefix,
// unique across every generator of the process.
func NewGenerator() *Generator {
	return NewGeneratorWithPrefix(fmt.Sprintf("_flowplan_tmp_%d", instance.Add(1)))
}

// NewGeneratorWithPrefix returns a generator with a caller-chosen prefix,
// used as is. The prefix must not occur in user field names; merging plans
// built on same-prefix generators forfeits cross-plan uniqueness.
func NewGeneratorWithPrefix(prefix string) *Generator {
	return &Generator{prefix: prefix}
}

// Next returns a fresh field guaranteed unique for this generator.
func (g *Generator) Next() Field {
	return Field(fmt.Sprintf("%s_%d", g.prefix, g.next.Add(1)))
}
