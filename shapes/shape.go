// Package shapes loads constraint-shape declarations and merges, per
// class and property, the strictest compatible bound across all shapes.
//
// Shapes target classes by exact identity. A shape written for a parent
// class does not apply to its subclasses; if subclass constraints are
// wanted they must be authored as separate shapes. This asymmetry with
// the class model's property inheritance is deliberate and load-bearing
// for validation semantics.
package shapes

// Shape is one property-path constraint extracted from a node shape.
// Shapes carry no identity: they are never deduplicated, only merged by
// the union of their effects.
type Shape struct {
	// Target is the IRI of the class the shape constrains, by exact match.
	Target string
	// Path is the IRI of the constrained property.
	Path string
	// Property is the local name of Path; merging groups by it.
	Property string
	// Facets are the value constraints the shape declares.
	Facets Facets
}

// Facets is the open set of named value constraints. Nil pointer or nil
// slice fields mean the facet is absent.
type Facets struct {
	MinCount     *int
	MaxCount     *int
	Patterns     []string
	Datatype     string
	MinInclusive *float64
	MaxInclusive *float64
	MinLength    *int
	MaxLength    *int
	// In is the enumerated value set; nil means unconstrained, an empty
	// non-nil slice is a (jointly unsatisfiable) empty enumeration.
	In []string
}

// Required reports whether the facets demand at least one value.
func (f Facets) Required() bool {
	return f.MinCount != nil && *f.MinCount >= 1
}
