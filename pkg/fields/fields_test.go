package fields

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestFields(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Fields")
}

var _ = Describe("Selector resolution", func() {
	var current Fields

	BeforeEach(func() {
		current = New("a", "b", "c")
	})

	It("should expand ALL to the current fields", func() {
		fs, err := All.Resolve(current)
		Expect(err).NotTo(HaveOccurred())
		Expect(fs).To(Equal(current))
	})

	It("should expand NONE to an empty sequence", func() {
		fs, err := None.Resolve(current)
		Expect(err).NotTo(HaveOccurred())
		Expect(fs).To(BeEmpty())
	})

	It("should pass an explicit list through", func() {
		fs, err := Select("b", "a").Resolve(current)
		Expect(err).NotTo(HaveOccurred())
		Expect(fs).To(Equal(New("b", "a")))
	})

	It("should fail on a field absent at the construction point", func() {
		_, err := Select("a", "nope").Resolve(current)
		Expect(err).To(HaveOccurred())
		Expect(err).To(MatchError(ErrUnknownField))
	})

	It("should defer checking when the current fields are unknown", func() {
		fs, err := Select("whatever").Resolve(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(fs).To(Equal(New("whatever")))

		fs, err = All.Resolve(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(fs).To(BeNil())
	})
})

var _ = Describe("Deduplication", func() {
	var gen *Generator

	BeforeEach(func() {
		gen = NewGenerator()
	})

	Context("with all-distinct names", func() {
		It("should be the identity and return empty rename-map and delta", func() {
			in := New("a", "b", "c")
			unique, renames, delta := Deduplicate(in, gen)
			Expect(unique).To(Equal(in))
			Expect(renames).To(BeNil())
			Expect(delta).To(BeNil())
		})

		It("should treat the empty sequence as distinct", func() {
			unique, renames, delta := Deduplicate(Fields{}, gen)
			Expect(unique).To(BeEmpty())
			Expect(renames).To(BeNil())
			Expect(delta).To(BeNil())
		})
	})

	Context("with repeated names", func() {
		It("should preserve arity and first occurrences", func() {
			in := New("a", "b", "a", "c", "b")
			unique, renames, delta := Deduplicate(in, gen)

			Expect(unique).To(HaveLen(len(in)))
			Expect(unique[0]).To(Equal(Field("a")))
			Expect(unique[1]).To(Equal(Field("b")))
			Expect(unique[3]).To(Equal(Field("c")))
			Expect(renames).To(HaveLen(2))
			Expect(delta).To(HaveLen(2))
		})

		It("should produce all-distinct names absent from the input", func() {
			in := New("a", "a", "a")
			unique, renames, delta := Deduplicate(in, gen)

			seen := map[Field]int{}
			for _, f := range unique {
				seen[f]++
			}
			for f, n := range seen {
				Expect(n).To(Equal(1), "field %q repeated", f)
			}
			for _, f := range delta {
				Expect(in.Contains(f)).To(BeFalse())
			}
			for _, r := range renames {
				Expect(r.From).To(Equal(Field("a")))
				Expect(in.Contains(r.To)).To(BeFalse())
			}
		})

		It("should record one rename per later occurrence", func() {
			in := New("x", "x", "x")
			_, renames, _ := Deduplicate(in, gen)
			Expect(renames).To(HaveLen(2))
			Expect(renames[0].To).NotTo(Equal(renames[1].To))
		})

		It("should skip generated names the input already carries", func() {
			g := NewGeneratorWithPrefix("tmp")
			in := New("x", "tmp_1", "x")
			unique, renames, _ := Deduplicate(in, g)

			Expect(renames).To(HaveLen(1))
			Expect(renames[0].To).NotTo(Equal(Field("tmp_1")))
			seen := map[Field]int{}
			for _, f := range unique {
				seen[f]++
			}
			for f, n := range seen {
				Expect(n).To(Equal(1), "field %q repeated", f)
			}
		})
	})

	Context("generator", func() {
		It("should never repeat names within one source", func() {
			a := gen.Next()
			b := gen.Next()
			Expect(a).NotTo(Equal(b))
		})

		It("should never repeat names across independent sources", func() {
			Expect(NewGenerator().Next()).NotTo(Equal(NewGenerator().Next()))
		})
	})
})

var _ = Describe("Union", func() {
	It("should append new fields in order", func() {
		out, err := Union(New("a", "b"), New("c"))
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal(New("a", "b", "c")))
	})

	It("should fail on a name tie", func() {
		_, err := Union(New("a", "b"), New("b"))
		Expect(err).To(MatchError(ErrDuplicateFieldConflict))
	})
})
