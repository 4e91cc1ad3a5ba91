// Package rdf provides the minimal triple model shared by the ontology and
// shape loaders: an in-memory indexed graph, an RDF/XML codec for the
// primary structured serialization, and a Turtle-subset decoder for the
// line-oriented fallback serialization.
package rdf

import (
	"fmt"
	"sort"
	"strings"
)

// TermKind discriminates the three kinds of graph terms.
type TermKind int

const (
	// IRI is a named resource term.
	IRI TermKind = iota
	// Blank is an anonymous node term.
	Blank
	// Literal is a data value term.
	Literal
)

// Term is a single node in a triple.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
}

// IRITerm builds a named resource term.
func IRITerm(iri string) Term { return Term{Kind: IRI, Value: iri} }

// BlankTerm builds an anonymous node term from a blank node identifier.
func BlankTerm(id string) Term { return Term{Kind: Blank, Value: id} }

// LiteralTerm builds a data value term with an optional datatype IRI.
func LiteralTerm(value, datatype string) Term {
	return Term{Kind: Literal, Value: value, Datatype: datatype}
}

// IsIRI reports whether the term names a resource.
func (t Term) IsIRI() bool { return t.Kind == IRI }

// String renders the term for error messages.
func (t Term) String() string {
	switch t.Kind {
	case IRI:
		return "<" + t.Value + ">"
	case Blank:
		return t.Value
	default:
		if t.Datatype != "" {
			return fmt.Sprintf("%q^^<%s>", t.Value, t.Datatype)
		}
		return fmt.Sprintf("%q", t.Value)
	}
}

// Triple is one subject-predicate-object statement. Subjects are IRI or
// blank terms; predicates are always IRIs.
type Triple struct {
	Subject   Term
	Predicate string
	Object    Term
}

// Graph is an indexed set of triples. It is append-only: loaders build it
// once and every later component reads it without mutation.
type Graph struct {
	triples   []Triple
	bySubject map[string][]int
	blankSeq  int
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{bySubject: make(map[string][]int)}
}

// Add appends one triple to the graph.
func (g *Graph) Add(t Triple) {
	g.bySubject[t.Subject.Value] = append(g.bySubject[t.Subject.Value], len(g.triples))
	g.triples = append(g.triples, t)
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int { return len(g.triples) }

// Triples returns all triples in insertion order.
func (g *Graph) Triples() []Triple { return g.triples }

// NewBlank mints a fresh blank node term unique within this graph.
func (g *Graph) NewBlank() Term {
	g.blankSeq++
	return BlankTerm(fmt.Sprintf("_:b%d", g.blankSeq))
}

// Objects returns every object of triples matching subject and predicate.
func (g *Graph) Objects(subject Term, predicate string) []Term {
	var out []Term
	for _, i := range g.bySubject[subject.Value] {
		if g.triples[i].Predicate == predicate {
			out = append(out, g.triples[i].Object)
		}
	}
	return out
}

// Value returns the first object of triples matching subject and predicate.
func (g *Graph) Value(subject Term, predicate string) (Term, bool) {
	for _, i := range g.bySubject[subject.Value] {
		if g.triples[i].Predicate == predicate {
			return g.triples[i].Object, true
		}
	}
	return Term{}, false
}

// SubjectsOfType returns the deduplicated subjects carrying an rdf:type
// assertion for the given class IRI, sorted for deterministic iteration.
func (g *Graph) SubjectsOfType(classIRI string) []Term {
	const rdfType = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	seen := make(map[string]Term)
	for _, t := range g.triples {
		if t.Predicate == rdfType && t.Object.IsIRI() && t.Object.Value == classIRI {
			seen[t.Subject.Value] = t.Subject
		}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Term, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

// List walks an RDF collection from its head cell and returns the member
// terms in order. Returns false if head is not a well-formed collection.
func (g *Graph) List(head Term) ([]Term, bool) {
	const (
		rdfFirst = "http://www.w3.org/1999/02/22-rdf-syntax-ns#first"
		rdfRest  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#rest"
		rdfNil   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#nil"
	)
	var out []Term
	cur := head
	for i := 0; i < g.Len()+1; i++ {
		if cur.IsIRI() && cur.Value == rdfNil {
			return out, true
		}
		first, ok := g.Value(cur, rdfFirst)
		if !ok {
			return nil, false
		}
		out = append(out, first)
		rest, ok := g.Value(cur, rdfRest)
		if !ok {
			return nil, false
		}
		cur = rest
	}
	return nil, false
}

// LocalName returns the fragment or last path segment of an IRI. It is the
// lexical identity used for property names and output file names.
func LocalName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(strings.TrimSuffix(iri, "/"), "/"); i >= 0 {
		return strings.TrimSuffix(iri, "/")[i+1:]
	}
	return iri
}
