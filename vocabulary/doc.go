// Package vocabulary defines the W3C namespace IRIs consumed by the
// ontology and shape loaders: RDF, RDFS, OWL, XSD and SHACL terms.
//
// Only the terms the pipeline actually reads are declared here; this is
// not an attempt at a complete vocabulary mirror.
package vocabulary
