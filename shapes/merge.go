package shapes

import "sort"

// MergeFor collects every shape whose target equals classIRI exactly and
// merges, per property, the strictest compatible bound from all of them.
//
// Merge rules per facet kind:
//   - minCount: maximum (presence requirements only tighten)
//   - maxCount, maxLength, maxInclusive: minimum
//   - minLength, minInclusive: maximum
//   - pattern: conjunction of all patterns; joint unsatisfiability of the
//     merged patterns is not detected here, only by downstream validators
//   - value enumeration: set intersection
//   - datatype: all shapes must agree or *ConstraintConflictError is raised
//
// Every rule is commutative and associative, so merge output does not
// depend on shape order.
func MergeFor(classIRI string, all []Shape) (map[string]Facets, error) {
	merged := make(map[string]Facets)
	for _, s := range all {
		if s.Target != classIRI {
			continue
		}
		acc, ok := merged[s.Property]
		if !ok {
			merged[s.Property] = normalize(s.Facets)
			continue
		}
		next, err := mergeFacets(classIRI, s.Property, acc, s.Facets)
		if err != nil {
			return nil, err
		}
		merged[s.Property] = next
	}
	return merged, nil
}

// normalize copies facet values so merged output never aliases a loaded
// shape, and sorts set-valued facets for order-independent results.
func normalize(f Facets) Facets {
	out := Facets{Datatype: f.Datatype}
	out.MinCount = copyInt(f.MinCount)
	out.MaxCount = copyInt(f.MaxCount)
	out.MinLength = copyInt(f.MinLength)
	out.MaxLength = copyInt(f.MaxLength)
	out.MinInclusive = copyFloat(f.MinInclusive)
	out.MaxInclusive = copyFloat(f.MaxInclusive)
	if f.Patterns != nil {
		out.Patterns = append([]string(nil), f.Patterns...)
		sort.Strings(out.Patterns)
	}
	if f.In != nil {
		out.In = append([]string(nil), f.In...)
		sort.Strings(out.In)
	}
	return out
}

func mergeFacets(class, property string, a, b Facets) (Facets, error) {
	b = normalize(b)
	out := a

	out.MinCount = tightest(a.MinCount, b.MinCount, true)
	out.MaxCount = tightest(a.MaxCount, b.MaxCount, false)
	out.MinLength = tightest(a.MinLength, b.MinLength, true)
	out.MaxLength = tightest(a.MaxLength, b.MaxLength, false)
	out.MinInclusive = tightestFloat(a.MinInclusive, b.MinInclusive, true)
	out.MaxInclusive = tightestFloat(a.MaxInclusive, b.MaxInclusive, false)

	if len(b.Patterns) > 0 {
		out.Patterns = unionSorted(a.Patterns, b.Patterns)
	}

	switch {
	case a.Datatype == "":
		out.Datatype = b.Datatype
	case b.Datatype == "" || a.Datatype == b.Datatype:
		// keep a's datatype
	default:
		return Facets{}, &ConstraintConflictError{
			Class:     class,
			Property:  property,
			Datatypes: orderedPair(a.Datatype, b.Datatype),
		}
	}

	switch {
	case a.In == nil:
		out.In = b.In
	case b.In == nil:
		out.In = a.In
	default:
		out.In = intersectSorted(a.In, b.In)
	}
	return out, nil
}

// tightest picks the stricter of two optional integer bounds: the larger
// for lower bounds, the smaller for upper bounds.
func tightest(a, b *int, lower bool) *int {
	if a == nil {
		return copyInt(b)
	}
	if b == nil {
		return a
	}
	if lower == (*b > *a) {
		return copyInt(b)
	}
	return a
}

func tightestFloat(a, b *float64, lower bool) *float64 {
	if a == nil {
		return copyFloat(b)
	}
	if b == nil {
		return a
	}
	if lower == (*b > *a) {
		return copyFloat(b)
	}
	return a
}

// orderedPair reports a datatype conflict deterministically regardless of
// shape order.
func orderedPair(a, b string) [2]string {
	if a > b {
		return [2]string{b, a}
	}
	return [2]string{a, b}
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, s := range append(append([]string(nil), a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func intersectSorted(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, s := range b {
		inB[s] = true
	}
	out := []string{}
	for _, s := range a {
		if inB[s] {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
