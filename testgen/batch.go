package testgen

import (
	"context"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
	"github.com/teranos/acceptmark/spec"
)

// Writer persists generated units. Implementations must replace path
// atomically; see internal/fileio.
type Writer interface {
	WriteText(path, content string) error
}

// Options configures a batch run.
type Options struct {
	// OutputDir is joined with each spec's GeneratedFileName
	OutputDir string
	Dialect   Dialect
	Generator Generator
	Writer    Writer

	// Jobs bounds the number of specs processed concurrently; <= 1 is sequential
	Jobs int

	// AfterWrite runs after each successful write, e.g. a formatter
	AfterWrite func(path string) error
}

// Kind classifies a per-item failure.
type Kind string

const (
	KindOK        Kind = ""
	KindMalformed Kind = "malformed"
	KindDuplicate Kind = "duplicate"
	KindWrite     Kind = "write"
	KindHook      Kind = "hook"
	KindCanceled  Kind = "canceled"
)

// ItemResult is the outcome for one spec of a batch.
type ItemResult struct {
	Spec *spec.Spec
	Path string
	Err  error
	Kind Kind
}

// OK reports whether the item was written.
func (r ItemResult) OK() bool { return r.Err == nil }

// Report collects the results of a batch run in input order.
type Report struct {
	Items    []ItemResult
	Duration time.Duration
}

// Failed reports whether any item failed.
func (r *Report) Failed() bool {
	for _, item := range r.Items {
		if item.Err != nil {
			return true
		}
	}
	return false
}

// Written returns the paths of the units that were written.
func (r *Report) Written() []string {
	var paths []string
	for _, item := range r.Items {
		if item.Err == nil {
			paths = append(paths, item.Path)
		}
	}
	return paths
}

// Failures returns the failed items.
func (r *Report) Failures() []ItemResult {
	var failed []ItemResult
	for _, item := range r.Items {
		if item.Err != nil {
			failed = append(failed, item)
		}
	}
	return failed
}

// Err joins the errors of every failed item, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, item := range r.Failures() {
		errs = append(errs, item.Err)
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

// Generate renders every spec and writes it to OutputDir.
//
// Colliding specs (shared prefix or output file) are reported and skipped.
// A malformed spec, a write failure or an AfterWrite failure is recorded for
// that item and the batch continues. The returned error is reserved for
// misconfiguration; per-item failures are only visible through the Report.
func Generate(ctx context.Context, specs []*spec.Spec, opts Options) (*Report, error) {
	if opts.Generator == nil {
		return nil, errors.New("no generator configured")
	}
	if opts.Writer == nil {
		return nil, errors.New("no writer configured")
	}

	start := time.Now()
	log := logger.ComponentLogger("testgen")

	report := &Report{Items: make([]ItemResult, len(specs))}
	duplicates, batchErr := spec.ValidateBatch(specs)
	if batchErr != nil {
		log.Warnw("Skipping specifications with colliding names", logger.FieldError, batchErr)
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, s := range specs {
		path := filepath.Join(opts.OutputDir, s.GeneratedFileName)
		if err, dup := duplicates[i]; dup {
			report.Items[i] = ItemResult{Spec: s, Path: path, Err: err, Kind: KindDuplicate}
			continue
		}
		if err := gctx.Err(); err != nil {
			report.Items[i] = ItemResult{Spec: s, Path: path, Err: err, Kind: KindCanceled}
			continue
		}

		i, s := i, s
		g.Go(func() error {
			// each goroutine owns report.Items[i]
			report.Items[i] = generateOne(gctx, s, path, opts)
			return nil
		})
	}
	_ = g.Wait()

	report.Duration = time.Since(start)

	failed := len(report.Failures())
	log.Infow("Generation finished",
		logger.FieldCount, len(specs),
		logger.FieldFailed, failed,
		logger.FieldOutputDir, opts.OutputDir,
		logger.FieldDialect, opts.Dialect.String(),
		logger.FieldDurationMS, report.Duration.Milliseconds())

	return report, nil
}

func generateOne(ctx context.Context, s *spec.Spec, path string, opts Options) ItemResult {
	item := ItemResult{Spec: s, Path: path}
	log := logger.ChildLogger(logger.ComponentLogger("testgen"), logger.FieldSpec, s.Prefix())

	if err := ctx.Err(); err != nil {
		item.Err, item.Kind = err, KindCanceled
		return item
	}

	src, err := opts.Generator.Emit(s, opts.Dialect)
	if err != nil {
		log.Errorw("Specification rejected", logger.FieldDocument, s.SourceDocumentName, logger.FieldError, err)
		item.Err, item.Kind = err, KindMalformed
		return item
	}

	if err := opts.Writer.WriteText(path, src); err != nil {
		if !errors.IsWriteFailure(err) {
			err = errors.WrapWriteFailure(err, path)
		}
		log.Errorw("Failed to write generated unit", logger.FieldPath, path, logger.FieldError, err)
		item.Err, item.Kind = err, KindWrite
		return item
	}

	if opts.AfterWrite != nil {
		if err := opts.AfterWrite(path); err != nil {
			log.Errorw("Post-write hook failed", logger.FieldPath, path, logger.FieldError, err)
			item.Err, item.Kind = errors.Wrapf(err, "post-write hook for %s", path), KindHook
			return item
		}
	}

	log.Infow("Generated unit",
		logger.FieldPath, path,
		logger.FieldTests, len(s.Tests))
	return item
}
