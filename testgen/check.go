package testgen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/teranos/acceptmark/errors"
	"github.com/teranos/acceptmark/logger"
	"github.com/teranos/acceptmark/spec"
)

// CheckResult holds the result of an up-to-date check
type CheckResult struct {
	UpToDate bool
	// Stale lists output paths whose content differs from a fresh render
	Stale []string
	// Missing lists output paths that do not exist yet
	Missing []string
	// Failed lists specs that could not be rendered or whose output could not be read
	Failed []ItemResult
}

// Err returns an error marked errors.ErrStale when the check did not pass.
func (r *CheckResult) Err() error {
	if r.UpToDate {
		return nil
	}
	return errors.WithHint(
		errors.Wrapf(errors.ErrStale, "%d stale, %d missing, %d failed",
			len(r.Stale), len(r.Missing), len(r.Failed)),
		"run `amtool generate` and commit the result")
}

// Check renders every spec in memory and compares it with the file
// currently at its output path. Nothing is written.
func Check(ctx context.Context, specs []*spec.Spec, opts Options) (*CheckResult, error) {
	if opts.Generator == nil {
		return nil, errors.New("no generator configured")
	}

	result := &CheckResult{}

	skipped, _ := spec.ValidateBatch(specs)
	for i, s := range specs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(opts.OutputDir, s.GeneratedFileName)
		if err, dup := skipped[i]; dup {
			result.Failed = append(result.Failed, ItemResult{Spec: s, Path: path, Err: err, Kind: KindDuplicate})
			continue
		}

		src, err := opts.Generator.Emit(s, opts.Dialect)
		if err != nil {
			result.Failed = append(result.Failed, ItemResult{Spec: s, Path: path, Err: err, Kind: KindMalformed})
			continue
		}

		different, err := contentDiffers(path, []byte(src))
		switch {
		case os.IsNotExist(errors.UnwrapAll(err)):
			result.Missing = append(result.Missing, path)
		case err != nil:
			result.Failed = append(result.Failed, ItemResult{Spec: s, Path: path, Err: err, Kind: KindWrite})
		case different:
			result.Stale = append(result.Stale, path)
		}

		logger.Debugw("Checked generated unit",
			logger.FieldSpec, s.Prefix(),
			logger.FieldPath, path)
	}

	result.UpToDate = len(result.Stale) == 0 && len(result.Missing) == 0 && len(result.Failed) == 0
	return result, nil
}

// contentDiffers compares the file at path with want, byte for byte.
func contentDiffers(path string, want []byte) (bool, error) {
	have, err := os.ReadFile(path)
	if err != nil {
		return false, errors.Wrapf(err, "failed to read %s", path)
	}
	return !bytes.Equal(have, want), nil
}
