package generator

import "fmt"

// Pipeline stage names used in failure reports.
const (
	StageLoadModel  = "load-model"
	StageLoadShapes = "load-shapes"
	StageResolve    = "resolve"
	StageMerge      = "merge"
	StageEmit       = "emit"
	StageWrite      = "write"
)

// StageError wraps a pipeline failure with the stage that failed and the
// identifier that triggered it. Every stage failure aborts the whole run;
// there is no partial schema output.
type StageError struct {
	Stage string
	ID    string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage failed for %s: %v", e.Stage, e.ID, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }
