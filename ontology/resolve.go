package ontology

// ResolvedEdge is one property applicable to a class, together with the
// class that declared it. InheritedFrom equals the queried class IRI for
// direct declarations.
type ResolvedEdge struct {
	Property      *Property
	InheritedFrom string
}

// Resolve computes the full applicable property set of a class by walking
// its parent chain to the root. Properties are deduplicated by name with
// the most specific declaration winning; a parent chain that revisits a
// class raises *HierarchyCycleError.
//
// Nothing performs the equivalent walk for constraint shapes: shape
// targeting is by exact class identity (see the shapes package), so this
// resolver is the only place inheritance is computed.
func (m *Model) Resolve(classIRI string) ([]ResolvedEdge, error) {
	if !m.IsClass(classIRI) {
		return nil, &DanglingReferenceError{Kind: "class", Referrer: "resolve", Target: classIRI}
	}

	var (
		out     []ResolvedEdge
		taken   = make(map[string]bool)
		visited = make(map[string]bool)
		chain   []string
	)

	cur := classIRI
	for cur != "" {
		if visited[cur] {
			return nil, &HierarchyCycleError{Class: classIRI, Chain: append(chain, cur)}
		}
		visited[cur] = true
		chain = append(chain, cur)

		for _, p := range m.PropertiesOf(cur) {
			if taken[p.Name] {
				continue
			}
			taken[p.Name] = true
			out = append(out, ResolvedEdge{Property: p, InheritedFrom: cur})
		}

		class, ok := m.classes[cur]
		if !ok {
			break
		}
		cur = class.Parent
	}
	return out, nil
}
