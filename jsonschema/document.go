// Package jsonschema turns resolved classes into JSON Schema documents:
// one self-contained document per class plus a combined document that
// cross-references every class through a shared definitions table. An
// experimental JTD emitter produces RFC 8927 type definitions from the
// same resolved state.
package jsonschema

import (
	"sort"

	"github.com/c360studio/ontoschema/ontology"
	"github.com/c360studio/ontoschema/shapes"
)

// DraftURI identifies the JSON Schema dialect of all emitted documents.
const DraftURI = "https://json-schema.org/draft/2020-12/schema"

// Document is an emitted schema document or combined-document fragment.
type Document struct {
	Schema      string               `json:"$schema,omitempty"`
	ID          string               `json:"$id,omitempty"`
	Title       string               `json:"title,omitempty"`
	Description string               `json:"description,omitempty"`
	Type        string               `json:"type,omitempty"`
	Properties  map[string]*Property `json:"properties,omitempty"`
	Required    []string             `json:"required,omitempty"`
	Defs        map[string]*Document `json:"$defs,omitempty"`
}

// Property is the structural definition of a single property. Only facets
// meaningful to a consumer appear here; resolution bookkeeping such as the
// functional flag or contributing-shape provenance never serializes.
type Property struct {
	Ref         string      `json:"$ref,omitempty"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Type        string      `json:"type,omitempty"`
	Format      string      `json:"format,omitempty"`
	Pattern     string      `json:"pattern,omitempty"`
	AllOf       []*Property `json:"allOf,omitempty"`
	Enum        []any       `json:"enum,omitempty"`
	Minimum     *float64    `json:"minimum,omitempty"`
	Maximum     *float64    `json:"maximum,omitempty"`
	MinLength   *int        `json:"minLength,omitempty"`
	MaxLength   *int        `json:"maxLength,omitempty"`
	Items       *Property   `json:"items,omitempty"`
	MinItems    *int        `json:"minItems,omitempty"`
	MaxItems    *int        `json:"maxItems,omitempty"`
}

// ResolvedProperty is the per-class working view the emitter consumes:
// the declared property edge (nil when only a shape mentions the
// property), the merged facet set, and the class that contributed the
// declaration. It exists for exactly one emission pass and is never
// persisted.
type ResolvedProperty struct {
	Name          string
	Edge          *ontology.Property
	Facets        shapes.Facets
	Required      bool
	InheritedFrom string
}

// BuildResolved joins the property resolver's output with the merged
// facets for the class. Shape-only properties (constrained but not
// declared) are surfaced as edge-less entries rather than dropped.
func BuildResolved(edges []ontology.ResolvedEdge, merged map[string]shapes.Facets) []ResolvedProperty {
	out := make([]ResolvedProperty, 0, len(edges))
	seen := make(map[string]bool, len(edges))
	for _, e := range edges {
		facets := merged[e.Property.Name]
		seen[e.Property.Name] = true
		out = append(out, ResolvedProperty{
			Name:          e.Property.Name,
			Edge:          e.Property,
			Facets:        facets,
			Required:      facets.Required(),
			InheritedFrom: e.InheritedFrom,
		})
	}
	for name, facets := range merged {
		if seen[name] {
			continue
		}
		out = append(out, ResolvedProperty{
			Name:     name,
			Facets:   facets,
			Required: facets.Required(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
