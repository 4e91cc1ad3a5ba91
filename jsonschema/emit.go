package jsonschema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/c360studio/ontoschema/ontology"
	"github.com/c360studio/ontoschema/rdf"
)

// Emitter produces schema documents for classes one at a time and keeps
// the running definitions table for the combined document. It is the only
// component with cross-cutting state; the definitions table is the sole
// shared resource when classes are emitted concurrently, so registration
// is serialized behind a mutex.
type Emitter struct {
	model  *ontology.Model
	baseID string

	mu   sync.Mutex
	defs map[string]*Document
}

// NewEmitter creates an emitter for the given model. baseID, when set, is
// the IRI prefix stamped into each document's $id.
func NewEmitter(model *ontology.Model, baseID string) *Emitter {
	return &Emitter{model: model, baseID: baseID, defs: make(map[string]*Document)}
}

// Emit builds the self-contained document and the combined fragment for
// one class. The self-contained document inlines class-valued ranges as
// reference-typed string placeholders so it stays valid with no external
// lookups; the fragment expresses them as named cross-references into the
// shared definitions table, where the fragment is also registered.
func (e *Emitter) Emit(class *ontology.Class, props []ResolvedProperty) (*Document, *Document, error) {
	self := e.newClassDocument(class)
	self.Schema = DraftURI
	if e.baseID != "" {
		self.ID = e.baseID + strings.ToLower(class.Name) + ".schema.json"
	}
	fragment := e.newClassDocument(class)

	for _, p := range props {
		selfProp, err := e.buildProperty(p, false)
		if err != nil {
			return nil, nil, fmt.Errorf("emit %s.%s: %w", class.Name, p.Name, err)
		}
		fragProp, err := e.buildProperty(p, true)
		if err != nil {
			return nil, nil, fmt.Errorf("emit %s.%s: %w", class.Name, p.Name, err)
		}
		self.Properties[p.Name] = selfProp
		fragment.Properties[p.Name] = fragProp
		if p.Required {
			self.Required = append(self.Required, p.Name)
			fragment.Required = append(fragment.Required, p.Name)
		}
	}
	sort.Strings(self.Required)
	sort.Strings(fragment.Required)

	e.mu.Lock()
	e.defs[class.Name] = fragment
	e.mu.Unlock()

	return self, fragment, nil
}

// Combined assembles the aggregate document cross-referencing every
// emitted class through the shared definitions table.
func (e *Emitter) Combined(id, title, description string) *Document {
	e.mu.Lock()
	defs := make(map[string]*Document, len(e.defs))
	for name, doc := range e.defs {
		defs[name] = doc
	}
	e.mu.Unlock()

	return &Document{
		Schema:      DraftURI,
		ID:          id,
		Title:       title,
		Description: description,
		Defs:        defs,
	}
}

func (e *Emitter) newClassDocument(class *ontology.Class) *Document {
	desc := class.Comment
	if class.Parent != "" {
		parentName := rdf.LocalName(class.Parent)
		if parent, ok := e.model.Class(class.Parent); ok {
			parentName = parent.Name
		}
		if desc != "" {
			desc += " (Inherits from: " + parentName + ")"
		} else {
			desc = "Inherits from: " + parentName
		}
	}
	return &Document{
		Title:       class.Label,
		Description: desc,
		Type:        "object",
		Properties:  make(map[string]*Property),
	}
}

// buildProperty translates one resolved property into its structural
// definition. combined selects the cross-reference flavor for
// class-valued ranges.
func (e *Emitter) buildProperty(p ResolvedProperty, combined bool) (*Property, error) {
	var base *Property
	if refName, ok := e.classRange(p); ok {
		if combined {
			base = &Property{Ref: "#/$defs/" + refName}
		} else {
			base = &Property{
				Title:       p.Name,
				Type:        "string",
				Description: "Reference to " + refName,
			}
		}
	} else {
		datatype := p.Facets.Datatype
		if datatype == "" && p.Edge != nil {
			datatype = p.Edge.Range
		}
		typ, format := MapType(datatype, p.Facets)
		base = &Property{Title: p.Name, Type: typ, Format: format}
		if p.Edge != nil {
			base.Description = p.Edge.Comment
		}
		applyValueFacets(base, p, typ)
	}

	// Cardinality above one lifts the property to an array of the base
	// definition.
	if p.Facets.MaxCount != nil && *p.Facets.MaxCount > 1 {
		items := *base
		items.Title = ""
		items.Description = ""
		arr := &Property{
			Title:       base.Title,
			Description: base.Description,
			Type:        "array",
			Items:       &items,
			MaxItems:    p.Facets.MaxCount,
		}
		if p.Facets.MinCount != nil {
			arr.MinItems = p.Facets.MinCount
		}
		return arr, nil
	}
	return base, nil
}

// classRange reports whether the property's range is another class and
// returns that class's definition name.
func (e *Emitter) classRange(p ResolvedProperty) (string, bool) {
	if p.Edge == nil || p.Facets.Datatype != "" {
		return "", false
	}
	target, ok := e.model.Class(p.Edge.Range)
	if !ok {
		return "", false
	}
	return target.Name, true
}

// applyValueFacets copies the merged value constraints onto the
// structural definition. Multiple patterns become an allOf conjunction;
// the merge layer guarantees their order is deterministic.
func applyValueFacets(prop *Property, p ResolvedProperty, typ string) {
	switch len(p.Facets.Patterns) {
	case 0:
	case 1:
		prop.Pattern = p.Facets.Patterns[0]
	default:
		for _, pattern := range p.Facets.Patterns {
			prop.AllOf = append(prop.AllOf, &Property{Pattern: pattern})
		}
	}
	prop.Minimum = p.Facets.MinInclusive
	prop.Maximum = p.Facets.MaxInclusive
	prop.MinLength = p.Facets.MinLength
	prop.MaxLength = p.Facets.MaxLength
	if p.Facets.In != nil {
		prop.Enum = enumValues(p.Facets.In, typ)
	}
}

// enumValues renders the enumerated value set in the structural type's
// natural JSON representation.
func enumValues(in []string, typ string) []any {
	out := make([]any, 0, len(in))
	for _, v := range in {
		switch typ {
		case "integer":
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				out = append(out, n)
				continue
			}
		case "number":
			if n, err := strconv.ParseFloat(v, 64); err == nil {
				out = append(out, n)
				continue
			}
		case "boolean":
			if b, err := strconv.ParseBool(v); err == nil {
				out = append(out, b)
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
