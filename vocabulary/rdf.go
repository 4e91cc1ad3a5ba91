package vocabulary

// RDFNamespace is the base IRI prefix for core RDF terms.
const RDFNamespace = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

// RDFSNamespace is the base IRI prefix for RDF Schema terms.
const RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"

// Core RDF terms.
const (
	// RDFType asserts the class of a resource.
	RDFType = RDFNamespace + "type"

	// RDFProperty is the generic property class.
	RDFProperty = RDFNamespace + "Property"

	// RDFFirst is the head of an RDF collection cell.
	RDFFirst = RDFNamespace + "first"

	// RDFRest is the tail of an RDF collection cell.
	RDFRest = RDFNamespace + "rest"

	// RDFNil terminates an RDF collection.
	RDFNil = RDFNamespace + "nil"
)

// RDF Schema terms.
const (
	// RDFSClass is the RDFS class of classes.
	RDFSClass = RDFSNamespace + "Class"

	// RDFSLabel carries the human-readable name of a resource.
	RDFSLabel = RDFSNamespace + "label"

	// RDFSComment carries the human-readable description of a resource.
	RDFSComment = RDFSNamespace + "comment"

	// RDFSSubClassOf links a class to its parent class.
	RDFSSubClassOf = RDFSNamespace + "subClassOf"

	// RDFSDomain declares the class a property applies to.
	RDFSDomain = RDFSNamespace + "domain"

	// RDFSRange declares the value type of a property.
	RDFSRange = RDFSNamespace + "range"
)
