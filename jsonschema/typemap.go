package jsonschema

import (
	"github.com/c360studio/ontoschema/shapes"
	"github.com/c360studio/ontoschema/vocabulary"
)

// MapType translates a primitive datatype IRI from the semantic vocabulary
// into a structural type and format hint. It is a pure lookup: the facets
// only influence the numeric bit-width hint for bounded integers, which
// downstream code generators use to pick fixed-width types.
func MapType(datatype string, facets shapes.Facets) (typ, format string) {
	switch datatype {
	case vocabulary.XSDBoolean:
		return "boolean", ""
	case vocabulary.XSDInteger, vocabulary.XSDInt, vocabulary.XSDLong:
		return "integer", narrowIntegerHint(facets)
	case vocabulary.XSDDecimal, vocabulary.XSDFloat, vocabulary.XSDDouble:
		return "number", ""
	case vocabulary.XSDDate:
		return "string", "date"
	case vocabulary.XSDDateTime:
		return "string", "date-time"
	case vocabulary.XSDAnyURI:
		return "string", "uri"
	case vocabulary.XSDString, "":
		return "string", ""
	default:
		// Unrecognized datatype IRIs degrade to plain strings rather than
		// failing the run; the lexical form is always representable.
		return "string", ""
	}
}

// narrowIntegerHint returns a fixed-width hint when the declared inclusive
// range fits a type narrower than a standard machine word, or "" when no
// such narrowing applies.
func narrowIntegerHint(facets shapes.Facets) string {
	if facets.MinInclusive == nil || facets.MaxInclusive == nil {
		return ""
	}
	lo, hi := *facets.MinInclusive, *facets.MaxInclusive
	if lo > hi {
		return ""
	}
	if lo >= 0 {
		switch {
		case hi <= 255:
			return "uint8"
		case hi <= 65535:
			return "uint16"
		case hi <= 4294967295:
			return "uint32"
		}
		return ""
	}
	switch {
	case lo >= -128 && hi <= 127:
		return "int8"
	case lo >= -32768 && hi <= 32767:
		return "int16"
	case lo >= -2147483648 && hi <= 2147483647:
		return "int32"
	}
	return ""
}
