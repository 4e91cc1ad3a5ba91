package vocabulary

// XSDNamespace is the base IRI prefix for XML Schema datatypes.
const XSDNamespace = "http://www.w3.org/2001/XMLSchema#"

// XSD datatype IRIs recognized by the type mapper.
const (
	XSDString   = XSDNamespace + "string"
	XSDBoolean  = XSDNamespace + "boolean"
	XSDInteger  = XSDNamespace + "integer"
	XSDInt      = XSDNamespace + "int"
	XSDLong     = XSDNamespace + "long"
	XSDDecimal  = XSDNamespace + "decimal"
	XSDFloat    = XSDNamespace + "float"
	XSDDouble   = XSDNamespace + "double"
	XSDDate     = XSDNamespace + "date"
	XSDDateTime = XSDNamespace + "dateTime"
	XSDAnyURI   = XSDNamespace + "anyURI"
)
