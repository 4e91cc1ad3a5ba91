// Package generator wires the pipeline together: load the class model and
// constraint shapes, resolve and merge per class, and emit every schema
// document in one all-or-nothing pass.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/c360studio/ontoschema/jsonschema"
	"github.com/c360studio/ontoschema/ontology"
	"github.com/c360studio/ontoschema/shapes"
)

// Options configures a generation run.
type Options struct {
	// ModelGlob locates the class-model fragments; doublestar patterns are
	// supported so a model split across files loads as one graph.
	ModelGlob string
	// ShapesPath locates the constraint-shape source.
	ShapesPath string
	// OutputDir receives the generated documents. Nothing is written there
	// until every document has been produced successfully.
	OutputDir string
	// VocabularyName names the combined document; derived from the first
	// model fragment when empty.
	VocabularyName string
	// BaseID is the IRI prefix for document $id fields.
	BaseID string
	// EmitJTD additionally writes one JTD definition per class.
	EmitJTD bool
	// Workers bounds concurrent per-class emission; defaults to GOMAXPROCS.
	Workers int
	// Logger receives structured progress output; defaults to slog.Default.
	Logger *slog.Logger
}

// Report summarizes a successful run.
type Report struct {
	RunID    string
	Classes  []string
	Files    []string
	Duration time.Duration
}

// Run executes the whole pipeline. Both loads complete before any
// resolution begins; per-class work then fans out, and output files reach
// OutputDir only after the complete set exists in a staging directory.
func Run(ctx context.Context, opts Options) (*Report, error) {
	start := time.Now()
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	runID := uuid.New().String()
	logger = logger.With(slog.String("run_id", runID))

	fragments, err := doublestar.FilepathGlob(opts.ModelGlob)
	if err != nil {
		return nil, &StageError{Stage: StageLoadModel, ID: opts.ModelGlob, Err: err}
	}
	if len(fragments) == 0 {
		return nil, &StageError{Stage: StageLoadModel, ID: opts.ModelGlob, Err: fmt.Errorf("no model fragments match")}
	}
	sort.Strings(fragments)

	model, err := ontology.Load(fragments...)
	if err != nil {
		return nil, &StageError{Stage: StageLoadModel, ID: opts.ModelGlob, Err: err}
	}
	classes := model.Classes()
	logger.Info("loaded class model",
		slog.Int("fragments", len(fragments)),
		slog.Int("classes", len(classes)))

	shapeList, err := shapes.Load(opts.ShapesPath)
	if err != nil {
		return nil, &StageError{Stage: StageLoadShapes, ID: opts.ShapesPath, Err: err}
	}
	logger.Info("loaded constraint shapes", slog.Int("shapes", len(shapeList)))

	// Shape targets must name declared classes. A typo in a target would
	// otherwise make the whole shape a silent no-op.
	for _, s := range shapeList {
		if !model.IsClass(s.Target) {
			err := &ontology.DanglingReferenceError{Kind: "shape target", Referrer: s.Path, Target: s.Target}
			return nil, &StageError{Stage: StageLoadShapes, ID: s.Target, Err: err}
		}
	}

	vocabName := opts.VocabularyName
	if vocabName == "" {
		vocabName = deriveVocabularyName(fragments[0])
	}

	// Stage next to the output directory so the final renames never cross
	// a filesystem boundary.
	parent := filepath.Dir(filepath.Clean(opts.OutputDir))
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, &StageError{Stage: StageWrite, ID: opts.OutputDir, Err: err}
	}
	staging, err := os.MkdirTemp(parent, ".ontoschema-stage-*")
	if err != nil {
		return nil, &StageError{Stage: StageWrite, ID: opts.OutputDir, Err: err}
	}
	defer os.RemoveAll(staging)

	emitter := jsonschema.NewEmitter(model, opts.BaseID)

	var (
		mu    sync.Mutex
		files []string
	)
	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for _, class := range classes {
		group.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			written, err := emitClass(emitter, model, shapeList, class, staging, opts.EmitJTD)
			if err != nil {
				return err
			}
			mu.Lock()
			files = append(files, written...)
			mu.Unlock()
			logger.Debug("emitted class", slog.String("class", class.Name))
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	combinedName := strings.ToLower(vocabName) + "-combined.schema.json"
	combined := emitter.Combined(
		opts.BaseID+combinedName,
		vocabName+" Ontology JSON Schemas",
		fmt.Sprintf("JSON Schema definitions generated from the %s class model and constraint shapes", vocabName),
	)
	if err := writeDocument(staging, combinedName, combined); err != nil {
		return nil, &StageError{Stage: StageWrite, ID: combinedName, Err: err}
	}
	files = append(files, combinedName)

	// Every document exists in staging; only now touch the output
	// directory.
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, &StageError{Stage: StageWrite, ID: opts.OutputDir, Err: err}
	}
	sort.Strings(files)
	for _, name := range files {
		if err := os.Rename(filepath.Join(staging, name), filepath.Join(opts.OutputDir, name)); err != nil {
			return nil, &StageError{Stage: StageWrite, ID: name, Err: err}
		}
	}

	names := make([]string, 0, len(classes))
	for _, class := range classes {
		names = append(names, class.Name)
	}
	report := &Report{RunID: runID, Classes: names, Files: files, Duration: time.Since(start)}
	logger.Info("generation complete",
		slog.Int("classes", len(names)),
		slog.Int("files", len(files)),
		slog.Duration("duration", report.Duration))
	return report, nil
}

// emitClass resolves, merges and emits one class into the staging
// directory, returning the file names it wrote.
func emitClass(emitter *jsonschema.Emitter, model *ontology.Model, shapeList []shapes.Shape, class *ontology.Class, staging string, emitJTD bool) ([]string, error) {
	edges, err := model.Resolve(class.IRI)
	if err != nil {
		return nil, &StageError{Stage: StageResolve, ID: class.IRI, Err: err}
	}
	merged, err := shapes.MergeFor(class.IRI, shapeList)
	if err != nil {
		return nil, &StageError{Stage: StageMerge, ID: class.IRI, Err: err}
	}
	resolved := jsonschema.BuildResolved(edges, merged)

	self, _, err := emitter.Emit(class, resolved)
	if err != nil {
		return nil, &StageError{Stage: StageEmit, ID: class.IRI, Err: err}
	}

	schemaName := strings.ToLower(class.Name) + ".schema.json"
	if err := writeDocument(staging, schemaName, self); err != nil {
		return nil, &StageError{Stage: StageWrite, ID: schemaName, Err: err}
	}
	written := []string{schemaName}

	if emitJTD {
		jtdName := strings.ToLower(class.Name) + ".jtd.json"
		if err := writeDocument(staging, jtdName, emitter.EmitJTD(class, resolved)); err != nil {
			return nil, &StageError{Stage: StageWrite, ID: jtdName, Err: err}
		}
		written = append(written, jtdName)
	}
	return written, nil
}

func writeDocument(dir, name string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), append(data, '\n'), 0o644)
}

// deriveVocabularyName turns a model fragment path like
// "actions-vocabulary.ttl" into "actions".
func deriveVocabularyName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.TrimSuffix(base, "-vocabulary")
}
