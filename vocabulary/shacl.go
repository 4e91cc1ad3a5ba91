package vocabulary

// SHNamespace is the base IRI prefix for SHACL terms.
const SHNamespace = "http://www.w3.org/ns/shacl#"

// SHACL terms used by the constraint shape loader.
const (
	// SHNodeShape types a shape that targets a class.
	SHNodeShape = SHNamespace + "NodeShape"

	// SHTargetClass declares the class a shape constrains.
	SHTargetClass = SHNamespace + "targetClass"

	// SHProperty links a node shape to one property shape.
	SHProperty = SHNamespace + "property"

	// SHPath declares the property a property shape constrains.
	SHPath = SHNamespace + "path"

	// SHMinCount is the minimum cardinality facet.
	SHMinCount = SHNamespace + "minCount"

	// SHMaxCount is the maximum cardinality facet.
	SHMaxCount = SHNamespace + "maxCount"

	// SHPattern is the regular-expression facet.
	SHPattern = SHNamespace + "pattern"

	// SHDatatype is the literal datatype facet.
	SHDatatype = SHNamespace + "datatype"

	// SHMinInclusive is the inclusive numeric lower bound facet.
	SHMinInclusive = SHNamespace + "minInclusive"

	// SHMaxInclusive is the inclusive numeric upper bound facet.
	SHMaxInclusive = SHNamespace + "maxInclusive"

	// SHMinLength is the minimum string length facet.
	SHMinLength = SHNamespace + "minLength"

	// SHMaxLength is the maximum string length facet.
	SHMaxLength = SHNamespace + "maxLength"

	// SHIn is the enumerated value set facet.
	SHIn = SHNamespace + "in"
)
