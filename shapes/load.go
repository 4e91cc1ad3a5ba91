package shapes

import (
	"fmt"
	"os"
	"strconv"

	"github.com/c360studio/ontoschema/rdf"
	"github.com/c360studio/ontoschema/vocabulary"
)

// Load parses a shape source into a flat list of shapes. No deduplication
// and no grouping happens here; grouping by class and property is the
// merger's job. Malformed input raises *ShapeParseError.
func Load(path string) ([]Shape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read constraint shapes %s: %w", path, err)
	}

	graph, err := rdf.DecodeTurtle(data)
	if err != nil {
		return nil, &ShapeParseError{Source: path, Err: err}
	}

	var out []Shape
	for _, node := range graph.SubjectsOfType(vocabulary.SHNodeShape) {
		// Targeting follows the declared target class, never the shape's
		// own lexical name. Shapes without a target constrain nothing.
		target, ok := graph.Value(node, vocabulary.SHTargetClass)
		if !ok || !target.IsIRI() {
			continue
		}
		for _, propShape := range graph.Objects(node, vocabulary.SHProperty) {
			pathTerm, ok := graph.Value(propShape, vocabulary.SHPath)
			if !ok || !pathTerm.IsIRI() {
				continue
			}
			facets, err := readFacets(graph, propShape)
			if err != nil {
				return nil, &ShapeParseError{Source: path, Err: fmt.Errorf("shape %s, path %s: %w", node, pathTerm.Value, err)}
			}
			out = append(out, Shape{
				Target:   target.Value,
				Path:     pathTerm.Value,
				Property: rdf.LocalName(pathTerm.Value),
				Facets:   facets,
			})
		}
	}
	return out, nil
}

// readFacets extracts the value constraints of one property shape.
func readFacets(graph *rdf.Graph, propShape rdf.Term) (Facets, error) {
	var f Facets
	var err error

	if f.MinCount, err = intFacet(graph, propShape, vocabulary.SHMinCount); err != nil {
		return f, err
	}
	if f.MaxCount, err = intFacet(graph, propShape, vocabulary.SHMaxCount); err != nil {
		return f, err
	}
	if f.MinLength, err = intFacet(graph, propShape, vocabulary.SHMinLength); err != nil {
		return f, err
	}
	if f.MaxLength, err = intFacet(graph, propShape, vocabulary.SHMaxLength); err != nil {
		return f, err
	}
	if f.MinInclusive, err = floatFacet(graph, propShape, vocabulary.SHMinInclusive); err != nil {
		return f, err
	}
	if f.MaxInclusive, err = floatFacet(graph, propShape, vocabulary.SHMaxInclusive); err != nil {
		return f, err
	}

	if pattern, ok := graph.Value(propShape, vocabulary.SHPattern); ok {
		f.Patterns = []string{pattern.Value}
	}
	if datatype, ok := graph.Value(propShape, vocabulary.SHDatatype); ok {
		if !datatype.IsIRI() {
			return f, fmt.Errorf("datatype facet must be an IRI, got %s", datatype)
		}
		f.Datatype = datatype.Value
	}
	if head, ok := graph.Value(propShape, vocabulary.SHIn); ok {
		members, ok := graph.List(head)
		if !ok {
			return f, fmt.Errorf("value enumeration is not a well-formed list")
		}
		f.In = make([]string, 0, len(members))
		for _, m := range members {
			f.In = append(f.In, m.Value)
		}
	}
	return f, nil
}

func intFacet(graph *rdf.Graph, subject rdf.Term, predicate string) (*int, error) {
	term, ok := graph.Value(subject, predicate)
	if !ok {
		return nil, nil
	}
	v, err := strconv.Atoi(term.Value)
	if err != nil {
		return nil, fmt.Errorf("%s facet: %q is not an integer", rdf.LocalName(predicate), term.Value)
	}
	return &v, nil
}

func floatFacet(graph *rdf.Graph, subject rdf.Term, predicate string) (*float64, error) {
	term, ok := graph.Value(subject, predicate)
	if !ok {
		return nil, nil
	}
	v, err := strconv.ParseFloat(term.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("%s facet: %q is not numeric", rdf.LocalName(predicate), term.Value)
	}
	return &v, nil
}
