package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/auragold"
)

// File stores the state as an "all data" export in a single JSON file.
//
// Being the export format, the file can be copied as a backup, and is
// validated on load like any import.
type File struct {
	path string
	now  func() time.Time
}

// NewFile returns a store backed by the file at path.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// Path returns the file path.
func (f *File) Path() string { return f.path }

// Load reads the state from the file. A missing file is an empty state.
func (f *File) Load(ctx context.Context) (auragold.State, error) {
	if err := ctx.Err(); err != nil {
		return auragold.State{}, err
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return auragold.State{}, nil
	}
	if err != nil {
		return auragold.State{}, fmt.Errorf("could not read store %q: %w", f.path, err)
	}

	imp, err := auragold.DecodeAllImport(bytes.NewReader(data))
	if err != nil {
		return auragold.State{}, fmt.Errorf("could not decode store %q: %w", f.path, err)
	}
	return auragold.ApplyAllImport(auragold.State{}, imp, auragold.ReplaceMode), nil
}

// Save writes s to the file.
//
// The content is written to a temporary file first, then renamed over the
// previous one, so that a failure never leaves a truncated store.
func (f *File) Save(ctx context.Context, s auragold.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("could not create directory for store %q: %w", f.path, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(f.path)+".*")
	if err != nil {
		return fmt.Errorf("could not create temporary file for store %q: %w", f.path, err)
	}
	defer os.Remove(tmp.Name()) // no-op once renamed

	if err := auragold.ExportAll(tmp, s, f.now()); err != nil {
		tmp.Close()
		return fmt.Errorf("could not encode store %q: %w", f.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("could not write store %q: %w", f.path, err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("could not replace store %q: %w", f.path, err)
	}
	return nil
}
