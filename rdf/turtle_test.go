package rdf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/ontoschema/rdf"
	"github.com/c360studio/ontoschema/vocabulary"
)

const turtleDoc = `@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix owl: <http://www.w3.org/2002/07/owl#> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
@prefix actions: <https://vocab.example.org/actions/> .

# The base action class.
actions:Action a owl:Class ;
    rdfs:label "Action" ;
    rdfs:comment "A hierarchical task that can be performed" .

actions:title a owl:DatatypeProperty, owl:FunctionalProperty ;
    rdfs:domain actions:Action ;
    rdfs:range xsd:string .
`

func TestDecodeTurtle(t *testing.T) {
	g, err := rdf.DecodeTurtle([]byte(turtleDoc))
	require.NoError(t, err)

	action := rdf.IRITerm("https://vocab.example.org/actions/Action")
	label, ok := g.Value(action, vocabulary.RDFSLabel)
	require.True(t, ok)
	assert.Equal(t, "Action", label.Value)

	classes := g.SubjectsOfType(vocabulary.OWLClass)
	require.Len(t, classes, 1)
	assert.Equal(t, action, classes[0])

	// Comma-separated objects produce one triple each.
	title := rdf.IRITerm("https://vocab.example.org/actions/title")
	types := g.Objects(title, vocabulary.RDFType)
	assert.Len(t, types, 2)
}

func TestDecodeTurtleLiterals(t *testing.T) {
	src := `@prefix ex: <http://example.org/> .
@prefix xsd: <http://www.w3.org/2001/XMLSchema#> .
ex:s ex:int 42 ;
    ex:neg -7 ;
    ex:dec 1.5 ;
    ex:flag true ;
    ex:typed "2024-01-02"^^xsd:date ;
    ex:escaped "line\nbreak \"quoted\"" .
`
	g, err := rdf.DecodeTurtle([]byte(src))
	require.NoError(t, err)

	s := rdf.IRITerm("http://example.org/s")
	cases := []struct {
		pred, value, datatype string
	}{
		{"http://example.org/int", "42", vocabulary.XSDInteger},
		{"http://example.org/neg", "-7", vocabulary.XSDInteger},
		{"http://example.org/dec", "1.5", vocabulary.XSDDecimal},
		{"http://example.org/flag", "true", vocabulary.XSDBoolean},
		{"http://example.org/typed", "2024-01-02", vocabulary.XSDDate},
		{"http://example.org/escaped", "line\nbreak \"quoted\"", ""},
	}
	for _, tc := range cases {
		obj, ok := g.Value(s, tc.pred)
		require.True(t, ok, tc.pred)
		assert.Equal(t, tc.value, obj.Value, tc.pred)
		assert.Equal(t, tc.datatype, obj.Datatype, tc.pred)
	}
}

func TestDecodeTurtleBlankNodesAndCollections(t *testing.T) {
	src := `@prefix sh: <http://www.w3.org/ns/shacl#> .
@prefix ex: <http://example.org/> .
ex:Shape a sh:NodeShape ;
    sh:targetClass ex:Thing ;
    sh:property [
        sh:path ex:state ;
        sh:in ( "active" "done" "blocked" )
    ] .
`
	g, err := rdf.DecodeTurtle([]byte(src))
	require.NoError(t, err)

	shape := rdf.IRITerm("http://example.org/Shape")
	propShapes := g.Objects(shape, vocabulary.SHProperty)
	require.Len(t, propShapes, 1)

	head, ok := g.Value(propShapes[0], vocabulary.SHIn)
	require.True(t, ok)
	members, ok := g.List(head)
	require.True(t, ok)
	require.Len(t, members, 3)
	assert.Equal(t, "active", members[0].Value)
	assert.Equal(t, "blocked", members[2].Value)
}

func TestDecodeTurtleErrors(t *testing.T) {
	cases := map[string]string{
		"undeclared prefix":   `ex:s ex:p ex:o .`,
		"unterminated iri":    `<http://example.org/s ex:p "v" .`,
		"unterminated string": `@prefix ex: <http://example.org/> .` + "\nex:s ex:p \"open .",
		"missing terminator":  `@prefix ex: <http://example.org/> .` + "\nex:s ex:p ex:o",
		"unclosed bracket":    `@prefix ex: <http://example.org/> .` + "\nex:s ex:p [ ex:q ex:r .",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := rdf.DecodeTurtle([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestTurtleRDFXMLRoundTrip(t *testing.T) {
	g, err := rdf.DecodeTurtle([]byte(turtleDoc))
	require.NoError(t, err)

	back, err := rdf.DecodeRDFXML(rdf.EncodeRDFXML(g))
	require.NoError(t, err)
	require.Equal(t, g.Len(), back.Len())

	// Every original triple survives re-serialization.
	for _, tr := range g.Triples() {
		found := false
		for _, other := range back.Objects(tr.Subject, tr.Predicate) {
			if other == tr.Object {
				found = true
				break
			}
		}
		assert.True(t, found, "missing triple %v %s %v", tr.Subject, tr.Predicate, tr.Object)
	}
}
