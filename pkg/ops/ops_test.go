package ops

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/l7mp/flowplan/pkg/fields"
	"github.com/l7mp/flowplan/pkg/funcref"
	"github.com/l7mp/flowplan/pkg/plan"
)

func TestOps(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ops")
}

// top-level callables for the operator specs
func square(x int) int { return x * x }

func moreThan(limit, x int) bool { return x > limit }

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

func mustRef(fn any, args ...any) funcref.Ref {
	GinkgoHelper()
	ref, err := funcref.Describe(fn, args...)
	Expect(err).NotTo(HaveOccurred())
	return ref
}

// chain returns the construction points from the root to the cursor.
func chain(p plan.Plan) []*plan.Node {
	nodes := []*plan.Node{}
	n := p.Cursor()
	for n != nil {
		nodes = append([]*plan.Node{n}, nodes...)
		if len(n.Upstreams()) == 0 {
			break
		}
		n = n.Upstreams()[0]
	}
	return nodes
}

var _ = Describe("Map and Filter", func() {
	var p plan.Plan

	BeforeEach(func() {
		p = sourcePlan()
	})

	It("should default output fields to current plus declared", func() {
		q, err := Map(p, fields.Select("x"), mustRef(square), fields.New("y"))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("x", "y")))

		spec := q.Cursor().Spec()
		Expect(spec.In).To(Equal(fields.New("x")))
		Expect(spec.Fn).NotTo(BeNil())
		Expect(spec.Fn.Name).To(Equal("square"))
	})

	It("should fail when a declared field ties with an existing one", func() {
		_, err := Map(p, fields.Select("x"), mustRef(square), fields.New("x"))
		Expect(err).To(MatchError(fields.ErrDuplicateFieldConflict))
	})

	It("should replace the shape with MapTo", func() {
		q, err := MapTo(p, fields.Select("x"), mustRef(square), fields.New("y"))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("y")))
	})

	It("should fail on a selector naming an absent field", func() {
		_, err := Map(p, fields.Select("nope"), mustRef(square), fields.New("y"))
		Expect(err).To(MatchError(fields.ErrUnknownField))
	})

	It("should keep the shape across a filter", func() {
		q, err := Filter(p, fields.Select("x"), mustRef(moreThan, 10))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("x")))
		Expect(q.Cursor().Kind()).To(Equal(plan.KindFilter))
	})
})

var _ = Describe("Duplicate-input guard", func() {
	It("should splice a rename before the operator and deduplicate internally", func() {
		p := plan.New()
		p = Source(p, "t", fields.New("a", "b"))

		q, err := Filter(p, fields.Select("a", "a"), mustRef(moreThan, 0))
		Expect(err).NotTo(HaveOccurred())

		nodes := chain(q)
		// ... -> source -> rename(copy) -> filter -> discard(delta)
		kinds := []plan.Kind{}
		for _, n := range nodes {
			kinds = append(kinds, n.Kind())
		}
		Expect(kinds).To(Equal([]plan.Kind{
			plan.KindHead, plan.KindSource, plan.KindRename,
			plan.KindFilter, plan.KindDiscard,
		}))

		// the operator sees two distinct names
		var filter *plan.Node
		for _, n := range nodes {
			if n.Kind() == plan.KindFilter {
				filter = n
			}
		}
		Expect(filter.Spec().In).To(HaveLen(2))
		Expect(filter.Spec().In[0]).To(Equal(fields.Field("a")))
		Expect(filter.Spec().In[1]).NotTo(Equal(fields.Field("a")))

		// the generated field is discarded afterwards
		Expect(q.CurrentFields()).To(Equal(fields.New("a", "b")))
	})

	It("should never mint a name another merged-in plan carries", func() {
		// p2 retains the generated copy of a duplicated selector, so the
		// copy survives into the fan-in
		p2 := plan.New()
		p2 = Source(p2, "right", nil)
		p2, err := Retain(p2, fields.Select("a", "a"))
		Expect(err).NotTo(HaveOccurred())
		kept := p2.CurrentFields()[1]

		p1 := plan.New()
		p1 = Source(p1, "left", nil)

		m, err := plan.Merge(p1, p2)
		Expect(err).NotTo(HaveOccurred())

		// deduplication on the merged plan draws from p1's name source;
		// its names must still be distinct from anything p2 generated
		m, err = Filter(m, fields.Select("a", "a"), mustRef(moreThan, 0))
		Expect(err).NotTo(HaveOccurred())

		generated := m.Cursor().Spec().In[1]
		Expect(generated).NotTo(Equal(fields.Field("a")))
		Expect(generated).NotTo(Equal(kept))
	})

	It("should not splice anything for all-distinct inputs", func() {
		p := plan.New()
		p = Source(p, "t", fields.New("a", "b"))

		q, err := Filter(p, fields.Select("a", "b"), mustRef(moreThan, 0))
		Expect(err).NotTo(HaveOccurred())

		nodes := chain(q)
		Expect(nodes).To(HaveLen(3)) // head, source, filter
	})
})

var _ = Describe("Field operators", func() {
	var p plan.Plan

	BeforeEach(func() {
		p = plan.New()
		p = Source(p, "t", fields.New("a", "b", "c"))
	})

	It("should rename positionally", func() {
		q, err := Rename(p, fields.New("a", "c"), fields.New("x", "y"))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("x", "b", "y")))
	})

	It("should reject a rename onto an existing name", func() {
		_, err := Rename(p, fields.New("a"), fields.New("b"))
		Expect(err).To(MatchError(fields.ErrDuplicateFieldConflict))
	})

	It("should reject a rename arity mismatch", func() {
		_, err := Rename(p, fields.New("a", "b"), fields.New("x"))
		Expect(err).To(MatchError(ErrArityMismatch))
	})

	It("should retain the selected fields only", func() {
		q, err := Retain(p, fields.Select("c", "a"))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("c", "a")))
	})

	It("should discard fields", func() {
		q, err := Discard(p, fields.New("b"))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("a", "c")))
	})

	It("should reject discarding an absent field", func() {
		_, err := Discard(p, fields.New("zzz"))
		Expect(err).To(MatchError(fields.ErrUnknownField))
	})

	It("should insert constant fields", func() {
		q, err := Insert(p, fields.New("k"), int64(42))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("a", "b", "c", "k")))
		Expect(q.Cursor().Spec().Params["values"]).To(Equal([]any{int64(42)}))
	})

	It("should reject non-literal insert values", func() {
		_, err := Insert(p, fields.New("k"), make(chan int))
		Expect(err).To(MatchError(ErrInvalidLiteral))
	})

	It("should reject unpaired insert values", func() {
		_, err := Insert(p, fields.New("k", "l"), 1)
		Expect(err).To(MatchError(ErrArityMismatch))
	})

	It("should validate the sample rate", func() {
		_, err := Sample(p, 1.5, 0)
		Expect(err).To(MatchError(ErrInvalidParameter))

		q, err := Sample(p, 0.1, 42)
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("a", "b", "c")))
	})

	It("should record the debug prefix", func() {
		q := Debug(p, "trace")
		Expect(q.Cursor().Spec().Params["prefix"]).To(Equal("trace"))
	})
})

var _ = Describe("Grouping normalization", func() {
	It("should pass non-empty keys through untouched", func() {
		p := sourcePlan()
		before := p.Cursor()
		q, keys, synthetic, err := NormalizeGrouping(p, fields.New("x"))
		Expect(err).NotTo(HaveOccurred())
		Expect(synthetic).To(BeFalse())
		Expect(keys).To(Equal(fields.New("x")))
		Expect(q.Cursor()).To(BeIdenticalTo(before))
	})

	It("should synthesize a constant single-group key for empty keys", func() {
		p := sourcePlan()
		q, keys, synthetic, err := NormalizeGrouping(p, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(synthetic).To(BeTrue())
		Expect(keys).To(HaveLen(1))

		// the pre-transform inserts the same constant for every tuple,
		// so any two tuples land in the same group
		pre := q.Cursor()
		Expect(pre.Kind()).To(Equal(plan.KindInsert))
		Expect(pre.Spec().Params["fields"]).To(Equal([]string{keys[0].String()}))
		values := pre.Spec().Params["values"].([]any)
		Expect(values).To(HaveLen(1))

		// a second normalization inserts the very same constant
		q2, _, _, err := NormalizeGrouping(sourcePlan(), nil)
		Expect(err).NotTo(HaveOccurred())
		values2 := q2.Cursor().Spec().Params["values"].([]any)
		Expect(values2[0]).To(Equal(values[0]))
	})
})

var _ = Describe("GroupBy", func() {
	It("should group by keys and declare aggregate outputs", func() {
		p := sourcePlan()
		q, err := GroupBy(p, fields.New("x"), fields.Select("x"), mustRef(sum),
			fields.New("total"))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.Cursor().Kind()).To(Equal(plan.KindGroupBy))
		Expect(q.CurrentFields()).To(Equal(fields.New("x", "total")))
		Expect(q.Cursor().Spec().Params["synthetic"]).To(Equal(false))
	})

	It("should aggregate over everything with empty keys", func() {
		p := sourcePlan()
		q, err := GroupBy(p, nil, fields.Select("x"), mustRef(sum), fields.New("total"))
		Expect(err).NotTo(HaveOccurred())
		Expect(q.CurrentFields()).To(Equal(fields.New("total")))
		Expect(q.Cursor().Spec().Params["synthetic"]).To(Equal(true))
	})
})

var _ = Describe("End-to-end construction", func() {
	It("should build the square-filter-write scenario", func() {
		p := plan.New()
		p = Source(p, "numbers", fields.New("x"))

		p, err := Map(p, fields.Select("x"), mustRef(square), fields.New("y"))
		Expect(err).NotTo(HaveOccurred())
		Expect(p.CurrentFields()).To(Equal(fields.New("x", "y")))

		p, err = Filter(p, fields.Select("y"), mustRef(moreThan, 10))
		Expect(err).NotTo(HaveOccurred())

		p, err = p.Write(plan.Sink{ID: "out", Destination: "file:///tmp/out"})
		Expect(err).NotTo(HaveOccurred())

		Expect(p.Tails()).To(HaveLen(1))
		Expect(p.Sinks()).To(HaveKey("out"))
		Expect(p.Traps()).To(BeEmpty())
	})
})

func sourcePlan() plan.Plan {
	p := plan.New()
	return Source(p, "t", fields.New("x"))
}
