package ontology

import (
	"fmt"
	"strings"
)

// ModelParseError reports that a class-model source failed both the
// primary structured parse and the line-oriented fallback parse. Both
// failure reasons are retained for diagnosis.
type ModelParseError struct {
	Source   string
	Primary  error
	Fallback error
}

func (e *ModelParseError) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("parse class model %s: %v", e.Source, e.Primary)
	}
	return fmt.Sprintf("parse class model %s: primary parse failed (%v); fallback parse failed (%v)", e.Source, e.Primary, e.Fallback)
}

// Unwrap exposes both underlying parse failures to errors.Is/As.
func (e *ModelParseError) Unwrap() []error {
	if e.Fallback == nil {
		return []error{e.Primary}
	}
	return []error{e.Primary, e.Fallback}
}

// HierarchyCycleError reports a class parent chain that loops back onto an
// already-visited class.
type HierarchyCycleError struct {
	Class string
	Chain []string
}

func (e *HierarchyCycleError) Error() string {
	return fmt.Sprintf("class hierarchy cycle at %s: %s", e.Class, strings.Join(e.Chain, " -> "))
}

// DanglingReferenceError reports a reference to a class the model does not
// declare: a property domain, or a lookup of an unknown class.
type DanglingReferenceError struct {
	Kind     string
	Referrer string
	Target   string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("dangling %s reference: %s refers to unknown class %s", e.Kind, e.Referrer, e.Target)
}
