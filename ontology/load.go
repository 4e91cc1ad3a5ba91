package ontology

import (
	"fmt"
	"os"
	"sort"

	"github.com/c360studio/ontoschema/rdf"
	"github.com/c360studio/ontoschema/vocabulary"
)

// Load parses one or more class-model fragments and merges them into a
// single model. Each fragment is tried as the primary structured
// serialization first; on failure it is re-read as the line-oriented
// fallback serialization, re-serialized in-memory to the primary form, and
// the primary parse is retried once. Both failures raise *ModelParseError.
func Load(paths ...string) (*Model, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("load class model: no source fragments given")
	}

	model := &Model{
		classes: make(map[string]*Class),
		props:   make(map[string]*Property),
	}
	for _, path := range paths {
		graph, err := loadGraph(path)
		if err != nil {
			return nil, err
		}
		if err := mergeFragment(model, graph, path); err != nil {
			return nil, err
		}
	}

	// Parent edges can only be settled once the full class set is known:
	// a subClassOf target outside the model is an alignment, not a parent.
	if err := linkParents(model); err != nil {
		return nil, err
	}

	// Every property domain must name a declared class. Dangling domains
	// abort the load rather than vanish from the output.
	for _, p := range model.props {
		if !model.IsClass(p.Domain) {
			return nil, &DanglingReferenceError{Kind: "property domain", Referrer: p.IRI, Target: p.Domain}
		}
	}

	model.reindex()
	return model, nil
}

// loadGraph reads one fragment with the primary/fallback parse sequence.
func loadGraph(path string) (*rdf.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read class model %s: %w", path, err)
	}

	graph, primaryErr := rdf.DecodeRDFXML(data)
	if primaryErr == nil {
		return graph, nil
	}

	fallback, fallbackErr := rdf.DecodeTurtle(data)
	if fallbackErr != nil {
		return nil, &ModelParseError{Source: path, Primary: primaryErr, Fallback: fallbackErr}
	}

	// Retry the primary parse against the in-memory re-serialization, so
	// both input serializations flow through the exact same decode path.
	graph, retryErr := rdf.DecodeRDFXML(rdf.EncodeRDFXML(fallback))
	if retryErr != nil {
		return nil, &ModelParseError{Source: path, Primary: primaryErr, Fallback: retryErr}
	}
	return graph, nil
}

// mergeFragment folds one parsed fragment into the model under the
// fragment merge rules: last-write-wins on attributes, first-write-wins on
// domain and range identity, identity conflicts abort the load.
func mergeFragment(model *Model, graph *rdf.Graph, source string) error {
	for _, subject := range classSubjects(graph) {
		iri := subject.Value
		class, ok := model.classes[iri]
		if !ok {
			class = &Class{IRI: iri, Name: rdf.LocalName(iri)}
			model.classes[iri] = class
		}
		if label, ok := graph.Value(subject, vocabulary.RDFSLabel); ok {
			class.Label = label.Value
		}
		if comment, ok := graph.Value(subject, vocabulary.RDFSComment); ok {
			class.Comment = comment.Value
		}
		if class.Label == "" {
			class.Label = class.Name
		}
		for _, parent := range graph.Objects(subject, vocabulary.RDFSSubClassOf) {
			if parent.IsIRI() && parent.Value != vocabulary.OWLThing {
				class.Alignments = append(class.Alignments, parent.Value)
			}
		}
	}

	for _, subject := range propertySubjects(graph) {
		iri := subject.Value
		prop, ok := model.props[iri]
		if !ok {
			prop = &Property{IRI: iri, Name: rdf.LocalName(iri)}
			model.props[iri] = prop
		}
		if comment, ok := graph.Value(subject, vocabulary.RDFSComment); ok {
			prop.Comment = comment.Value
		}
		if isFunctional(graph, subject) {
			prop.Functional = true
		}
		if domain, ok := graph.Value(subject, vocabulary.RDFSDomain); ok && domain.IsIRI() {
			if prop.Domain != "" && prop.Domain != domain.Value {
				return fmt.Errorf("merge class model %s: property %s declares domain %s, already declared as %s", source, iri, domain.Value, prop.Domain)
			}
			if prop.Domain == "" {
				prop.Domain = domain.Value
			}
		}
		if rng, ok := graph.Value(subject, vocabulary.RDFSRange); ok && rng.IsIRI() {
			if prop.Range != "" && prop.Range != rng.Value {
				return fmt.Errorf("merge class model %s: property %s declares range %s, already declared as %s", source, iri, rng.Value, prop.Range)
			}
			if prop.Range == "" {
				prop.Range = rng.Value
			}
		}
	}
	return nil
}

// classSubjects returns subjects declared as owl:Class or rdfs:Class.
func classSubjects(graph *rdf.Graph) []rdf.Term {
	seen := make(map[string]bool)
	var out []rdf.Term
	for _, t := range []string{vocabulary.OWLClass, vocabulary.RDFSClass} {
		for _, s := range graph.SubjectsOfType(t) {
			if !seen[s.Value] {
				seen[s.Value] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

// propertySubjects returns subjects declared as datatype, object or plain
// RDF properties.
func propertySubjects(graph *rdf.Graph) []rdf.Term {
	seen := make(map[string]bool)
	var out []rdf.Term
	types := []string{vocabulary.OWLDatatypeProperty, vocabulary.OWLObjectProperty, vocabulary.RDFProperty}
	for _, t := range types {
		for _, s := range graph.SubjectsOfType(t) {
			if !seen[s.Value] {
				seen[s.Value] = true
				out = append(out, s)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func isFunctional(graph *rdf.Graph, subject rdf.Term) bool {
	for _, o := range graph.Objects(subject, vocabulary.RDFType) {
		if o.IsIRI() && o.Value == vocabulary.OWLFunctionalProperty {
			return true
		}
	}
	return false
}

// linkParents promotes the first in-model superclass of each class to its
// parent edge; the remaining superclasses stay as alignments.
func linkParents(model *Model) error {
	for _, class := range model.classes {
		var alignments []string
		seen := make(map[string]bool)
		for _, super := range class.Alignments {
			if seen[super] {
				continue
			}
			seen[super] = true
			if class.Parent == "" && model.IsClass(super) && super != class.IRI {
				class.Parent = super
				continue
			}
			if !model.IsClass(super) {
				alignments = append(alignments, super)
			}
		}
		class.Alignments = alignments
	}
	return nil
}
