package vocabulary

// OWLNamespace is the base IRI prefix for OWL 2 terms.
const OWLNamespace = "http://www.w3.org/2002/07/owl#"

// OWL terms used by the class model loader.
const (
	// OWLOntology types the ontology header resource.
	OWLOntology = OWLNamespace + "Ontology"

	// OWLClass types an entity class declaration.
	OWLClass = OWLNamespace + "Class"

	// OWLDatatypeProperty types a property with a literal-valued range.
	OWLDatatypeProperty = OWLNamespace + "DatatypeProperty"

	// OWLObjectProperty types a property whose range is another class.
	OWLObjectProperty = OWLNamespace + "ObjectProperty"

	// OWLFunctionalProperty marks a property as single-valued per instance.
	OWLFunctionalProperty = OWLNamespace + "FunctionalProperty"

	// OWLThing is the universal superclass and never becomes a parent edge.
	OWLThing = OWLNamespace + "Thing"
)
