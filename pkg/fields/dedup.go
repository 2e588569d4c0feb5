package fields

// Rename records one original→generated replacement made by Deduplicate.
// A name repeated three times yields two Rename entries with the same From.
type Rename struct {
	From Field
	To   Field
}

// Deduplicate returns a sequence of identical arity where every later
// occurrence of a name already seen earlier is replaced by a freshly
// generated field. The returned renames record the replacements in input
// order; delta lists the generated fields, so the caller can discard them
// once no longer needed.
//
// When the input already has all-distinct names, Deduplicate returns the
// input unchanged with nil renames and nil delta. Call sites branch on this
// to decide whether to splice rename transforms, so the identity fast path
// is part of the contract.
func Deduplicate(fs Fields, gen *Generator) (Fields, []Rename, Fields) {
	seen := make(map[Field]struct{}, len(fs))
	dup := false
	for _, f := range fs {
		if _, ok := seen[f]; ok {
			dup = true
			break
		}
		seen[f] = struct{}{}
	}
	if !dup {
		return fs, nil, nil
	}

	// every input name is reserved up front so a generated replacement can
	// never tie with a later occurrence, even one carrying the generator's
	// own prefix
	reserved := make(map[Field]struct{}, len(fs))
	for _, f := range fs {
		reserved[f] = struct{}{}
	}

	unique := make(Fields, 0, len(fs))
	renames := []Rename{}
	delta := Fields{}
	taken := make(map[Field]struct{}, len(fs))
	for _, f := range fs {
		if _, ok := taken[f]; !ok {
			taken[f] = struct{}{}
			unique = append(unique, f)
			continue
		}
		g := gen.Next()
		for {
			if _, ok := reserved[g]; !ok {
				break
			}
			g = gen.Next()
		}
		reserved[g] = struct{}{}
		unique = append(unique, g)
		renames = append(renames, Rename{From: f, To: g})
		delta = append(delta, g)
	}

	return unique, renames, delta
}
