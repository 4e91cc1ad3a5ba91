// Package ontology loads the class/property model into an explicit
// adjacency structure and resolves the inherited property set of a class.
//
// The model is built once by Load and is immutable afterward; every later
// pipeline component receives it by reference and only reads it.
package ontology

import "sort"

// Class is one entity class declaration.
type Class struct {
	// IRI is the stable identity of the class.
	IRI string
	// Name is the IRI local name, used for file naming and definitions keys.
	Name string
	// Label is the human-readable name, falling back to Name.
	Label string
	// Comment is the human-readable description, may be empty.
	Comment string
	// Parent is the IRI of the single parent class declared in this model,
	// empty for roots. Multiple inheritance is not modeled.
	Parent string
	// Alignments are superclass IRIs outside the loaded model, kept for
	// documentation only (e.g. schema.org alignment).
	Alignments []string
}

// Property is one property edge declaration.
type Property struct {
	// IRI is the stable identity of the property.
	IRI string
	// Name is the IRI local name; properties are deduplicated by it during
	// resolution.
	Name string
	// Comment is the human-readable description, may be empty.
	Comment string
	// Domain is the IRI of the class the property applies to.
	Domain string
	// Range is either an XSD datatype IRI or the IRI of another class.
	Range string
	// Functional marks the property as single-valued per instance.
	Functional bool
}

// Model is the loaded class graph: classes by IRI plus a domain-indexed
// property adjacency, so resolution never re-queries a generic triple
// store.
type Model struct {
	classes  map[string]*Class
	props    map[string]*Property
	byDomain map[string][]*Property
}

// Class looks up a class by IRI.
func (m *Model) Class(iri string) (*Class, bool) {
	c, ok := m.classes[iri]
	return c, ok
}

// IsClass reports whether the IRI names a declared class.
func (m *Model) IsClass(iri string) bool {
	_, ok := m.classes[iri]
	return ok
}

// Classes returns all declared classes sorted by IRI.
func (m *Model) Classes() []*Class {
	out := make([]*Class, 0, len(m.classes))
	for _, c := range m.classes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].IRI < out[j].IRI })
	return out
}

// PropertiesOf returns the properties declared directly on the class,
// sorted by name.
func (m *Model) PropertiesOf(classIRI string) []*Property {
	edges := make([]*Property, len(m.byDomain[classIRI]))
	copy(edges, m.byDomain[classIRI])
	sort.Slice(edges, func(i, j int) bool { return edges[i].Name < edges[j].Name })
	return edges
}

// reindex rebuilds the domain adjacency after loading.
func (m *Model) reindex() {
	m.byDomain = make(map[string][]*Property)
	for _, p := range m.props {
		m.byDomain[p.Domain] = append(m.byDomain[p.Domain], p)
	}
}
