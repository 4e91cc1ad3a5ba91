package jsonschema

import (
	"github.com/c360studio/ontoschema/ontology"
	"github.com/c360studio/ontoschema/vocabulary"
)

// JTDSchema is an RFC 8927 type definition for one class. JTD output is
// aimed at code generators rather than validators: bounded integers map to
// fixed-width types and pattern constraints are dropped (JTD cannot
// express them).
type JTDSchema struct {
	Metadata           map[string]string   `json:"metadata,omitempty"`
	Properties         map[string]*JTDType `json:"properties,omitempty"`
	OptionalProperties map[string]*JTDType `json:"optionalProperties,omitempty"`
}

// JTDType is one JTD form: a primitive type, an enum, or an elements
// array.
type JTDType struct {
	Type     string            `json:"type,omitempty"`
	Enum     []string          `json:"enum,omitempty"`
	Elements *JTDType          `json:"elements,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EmitJTD builds the JTD definition for one class from the same resolved
// state the JSON Schema emitter consumes. Required properties land in
// properties, the rest in optionalProperties.
func (e *Emitter) EmitJTD(class *ontology.Class, props []ResolvedProperty) *JTDSchema {
	out := &JTDSchema{
		Metadata:           map[string]string{"description": class.Comment},
		Properties:         make(map[string]*JTDType),
		OptionalProperties: make(map[string]*JTDType),
	}
	if class.Comment == "" {
		out.Metadata = nil
	}

	for _, p := range props {
		t := e.jtdType(p)
		if p.Facets.MaxCount != nil && *p.Facets.MaxCount > 1 {
			t = &JTDType{Elements: t}
		}
		if p.Required {
			out.Properties[p.Name] = t
		} else {
			out.OptionalProperties[p.Name] = t
		}
	}
	if len(out.Properties) == 0 {
		out.Properties = nil
	}
	if len(out.OptionalProperties) == 0 {
		out.OptionalProperties = nil
	}
	return out
}

func (e *Emitter) jtdType(p ResolvedProperty) *JTDType {
	if refName, ok := e.classRange(p); ok {
		return &JTDType{Type: "string", Metadata: map[string]string{"reference": refName}}
	}
	if p.Facets.In != nil {
		return &JTDType{Enum: append([]string(nil), p.Facets.In...)}
	}

	datatype := p.Facets.Datatype
	if datatype == "" && p.Edge != nil {
		datatype = p.Edge.Range
	}
	switch datatype {
	case vocabulary.XSDBoolean:
		return &JTDType{Type: "boolean"}
	case vocabulary.XSDInteger, vocabulary.XSDInt, vocabulary.XSDLong:
		if hint := narrowIntegerHint(p.Facets); hint != "" {
			return &JTDType{Type: hint}
		}
		// JTD omits 64-bit integers; int32 is the widest faithful choice.
		return &JTDType{Type: "int32"}
	case vocabulary.XSDDecimal, vocabulary.XSDFloat, vocabulary.XSDDouble:
		return &JTDType{Type: "float64"}
	case vocabulary.XSDDateTime:
		return &JTDType{Type: "timestamp"}
	default:
		return &JTDType{Type: "string"}
	}
}
