package rdf

import (
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/c360studio/ontoschema/vocabulary"
)

// xmlElement is the generic element shape used to walk RDF/XML without a
// schema-specific struct per vocabulary term.
type xmlElement struct {
	XMLName   xml.Name
	About     string       `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# about,attr"`
	NodeID    string       `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# nodeID,attr"`
	Resource  string       `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# resource,attr"`
	Datatype  string       `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# datatype,attr"`
	ParseType string       `xml:"http://www.w3.org/1999/02/22-rdf-syntax-ns# parseType,attr"`
	Text      string       `xml:",chardata"`
	Children  []xmlElement `xml:",any"`
}

// DecodeRDFXML parses the primary structured serialization into a graph.
// The supported dialect is the node-and-property-element form produced by
// standard ontology editors: typed node elements or rdf:Description with
// rdf:about, property elements with rdf:resource, rdf:nodeID, nested node
// elements, rdf:parseType="Resource", or literal content.
func DecodeRDFXML(data []byte) (*Graph, error) {
	var root xmlElement
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("rdfxml: %w", err)
	}
	if root.XMLName.Space != vocabulary.RDFNamespace || root.XMLName.Local != "RDF" {
		return nil, fmt.Errorf("rdfxml: root element is {%s}%s, want rdf:RDF", root.XMLName.Space, root.XMLName.Local)
	}
	g := NewGraph()
	for i := range root.Children {
		if _, err := decodeNode(g, &root.Children[i]); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// decodeNode interprets a node element, emits its triples, and returns its
// subject term.
func decodeNode(g *Graph, el *xmlElement) (Term, error) {
	var subject Term
	switch {
	case el.About != "":
		subject = IRITerm(el.About)
	case el.NodeID != "":
		subject = BlankTerm("_:" + el.NodeID)
	default:
		subject = g.NewBlank()
	}

	elType := el.XMLName.Space + el.XMLName.Local
	if elType != vocabulary.RDFNamespace+"Description" {
		g.Add(Triple{Subject: subject, Predicate: vocabulary.RDFType, Object: IRITerm(elType)})
	}

	for i := range el.Children {
		if err := decodeProperty(g, subject, &el.Children[i]); err != nil {
			return Term{}, err
		}
	}
	return subject, nil
}

// decodeProperty interprets one property element of the given subject.
func decodeProperty(g *Graph, subject Term, el *xmlElement) error {
	predicate := el.XMLName.Space + el.XMLName.Local

	switch {
	case el.Resource != "":
		g.Add(Triple{Subject: subject, Predicate: predicate, Object: IRITerm(el.Resource)})
	case el.NodeID != "":
		g.Add(Triple{Subject: subject, Predicate: predicate, Object: BlankTerm("_:" + el.NodeID)})
	case el.ParseType == "Resource":
		// The property element body is itself a property list of an
		// implicit blank node.
		blank := g.NewBlank()
		g.Add(Triple{Subject: subject, Predicate: predicate, Object: blank})
		for i := range el.Children {
			if err := decodeProperty(g, blank, &el.Children[i]); err != nil {
				return err
			}
		}
	case len(el.Children) > 0:
		for i := range el.Children {
			object, err := decodeNode(g, &el.Children[i])
			if err != nil {
				return err
			}
			g.Add(Triple{Subject: subject, Predicate: predicate, Object: object})
		}
	default:
		g.Add(Triple{Subject: subject, Predicate: predicate, Object: LiteralTerm(el.Text, el.Datatype)})
	}
	return nil
}

// EncodeRDFXML serializes a graph into the primary structured form. The
// fallback parse path uses it to re-serialize a line-oriented source
// in-memory before retrying the primary parse.
func EncodeRDFXML(g *Graph) []byte {
	grouped := make(map[string][]Triple)
	var order []string
	for _, t := range g.Triples() {
		key := t.Subject.Value
		if _, ok := grouped[key]; !ok {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], t)
	}
	sort.Strings(order)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	sb.WriteString(fmt.Sprintf(`<rdf:RDF xmlns:rdf="%s">`+"\n", vocabulary.RDFNamespace))

	for _, key := range order {
		triples := grouped[key]
		subject := triples[0].Subject
		if subject.Kind == Blank {
			sb.WriteString(fmt.Sprintf(`  <rdf:Description rdf:nodeID="%s">`+"\n", xmlEscape(strings.TrimPrefix(subject.Value, "_:"))))
		} else {
			sb.WriteString(fmt.Sprintf(`  <rdf:Description rdf:about="%s">`+"\n", xmlEscape(subject.Value)))
		}
		for _, t := range triples {
			writePropertyXML(&sb, t)
		}
		sb.WriteString("  </rdf:Description>\n")
	}

	sb.WriteString("</rdf:RDF>\n")
	return []byte(sb.String())
}

// writePropertyXML writes one property element with a locally declared
// namespace prefix, so predicates from any namespace round-trip.
func writePropertyXML(sb *strings.Builder, t Triple) {
	ns, local := splitIRI(t.Predicate)
	open := fmt.Sprintf(`<p:%s xmlns:p="%s"`, local, xmlEscape(ns))

	switch t.Object.Kind {
	case IRI:
		sb.WriteString(fmt.Sprintf(`    %s rdf:resource="%s"/>`+"\n", open, xmlEscape(t.Object.Value)))
	case Blank:
		sb.WriteString(fmt.Sprintf(`    %s rdf:nodeID="%s"/>`+"\n", open, xmlEscape(strings.TrimPrefix(t.Object.Value, "_:"))))
	default:
		if t.Object.Datatype != "" {
			sb.WriteString(fmt.Sprintf(`    %s rdf:datatype="%s">%s</p:%s>`+"\n", open, xmlEscape(t.Object.Datatype), xmlEscape(t.Object.Value), local))
		} else {
			sb.WriteString(fmt.Sprintf(`    %s>%s</p:%s>`+"\n", open, xmlEscape(t.Object.Value), local))
		}
	}
}

// splitIRI separates an IRI into namespace and XML-safe local name at the
// last '#' or '/'.
func splitIRI(iri string) (ns, local string) {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[:i+1], iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[:i+1], iri[i+1:]
	}
	return "", iri
}

// xmlEscape escapes text and attribute values for XML output.
func xmlEscape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}
