// Package fs writes ingestion results to the local filesystem.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/supplier"
)

// Ensure Writer implements supplier.ResultWriter at compile time.
var _ supplier.ResultWriter = (*Writer)(nil)

// MarshalResult encodes a Result as indented JSON followed by a newline.
func MarshalResult(result supplier.Result) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Writer writes results as JSON files. Relative paths are resolved
// against the base directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteResult writes result to path. The file is replaced atomically: the
// JSON is written to a temporary file in the same directory and renamed
// into place.
func (w *Writer) WriteResult(ctx context.Context, path string, result supplier.Result) error {
	if path == "" {
		return supplier.Errorf(supplier.EINVALID, "output path required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(w.baseDir, path)
	}

	data, err := MarshalResult(result)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
