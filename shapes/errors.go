package shapes

import "fmt"

// ShapeParseError reports a malformed constraint-shape source. Shapes are
// authored in one canonical serialization, so there is no fallback parse.
type ShapeParseError struct {
	Source string
	Err    error
}

func (e *ShapeParseError) Error() string {
	return fmt.Sprintf("parse constraint shapes %s: %v", e.Source, e.Err)
}

func (e *ShapeParseError) Unwrap() error { return e.Err }

// ConstraintConflictError reports two shapes on the same class and
// property declaring datatypes that cannot both hold.
type ConstraintConflictError struct {
	Class     string
	Property  string
	Datatypes [2]string
}

func (e *ConstraintConflictError) Error() string {
	return fmt.Sprintf("conflicting datatypes for %s on class %s: %s vs %s", e.Property, e.Class, e.Datatypes[0], e.Datatypes[1])
}
