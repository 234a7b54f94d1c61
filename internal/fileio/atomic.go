// Package fileio writes generated files so readers never observe a partial file.
package fileio

import (
	"os"
	"path/filepath"

	"github.com/teranos/acceptmark/errors"
)

// DefaultMode is used for files that do not exist yet.
const DefaultMode os.FileMode = 0o644

// AtomicWriter replaces files by writing a temporary file in the target
// directory and renaming it over the destination.
type AtomicWriter struct {
	// MkdirAll creates missing parent directories instead of failing
	MkdirAll bool
}

// WriteText writes content to path. An existing file keeps its permissions.
// Every error is marked errors.ErrWriteFailure.
func (w AtomicWriter) WriteText(path, content string) error {
	if err := w.write(path, []byte(content)); err != nil {
		return errors.WrapWriteFailure(err, path)
	}
	return nil
}

func (w AtomicWriter) write(path string, data []byte) error {
	dir := filepath.Dir(path)

	mode := DefaultMode
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return errors.Newf("%s is a directory", path)
		}
		mode = info.Mode().Perm()
	}

	if w.MkdirAll {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	} else if info, err := os.Stat(dir); err != nil {
		return errors.WithHint(err, "create the output directory or enable create_output_dir")
	} else if !info.IsDir() {
		return errors.Newf("%s is not a directory", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
