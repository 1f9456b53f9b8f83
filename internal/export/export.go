// Package export writes the accumulated sample log to files. Every export
// serializes the whole log and replaces the destination, so a later export
// of a longer log yields a superset of the earlier file and never a file
// with repeated rows or headers.
package export

import (
	"bufio"
	"io"
	"os"
	"path/filepath"

	apperrors "github.com/Dicklesworthstone/sysmonlog/internal/errors"
	"github.com/Dicklesworthstone/sysmonlog/internal/model"
)

// Exporter persists a full snapshot of the log. Implementations must not
// modify samples.
type Exporter interface {
	Format() string
	Destination() string
	Export(samples []model.Sample) error
}

// Set runs exporters in order and stops at the first failure.
type Set []Exporter

func (s Set) Export(samples []model.Sample) error {
	for _, e := range s {
		if err := e.Export(samples); err != nil {
			return err
		}
	}
	return nil
}

// Destinations lists the paths written by the set, in order.
func (s Set) Destinations() []string {
	out := make([]string, 0, len(s))
	for _, e := range s {
		out = append(out, e.Destination())
	}
	return out
}

func wrap(format, path string, err error) error {
	if err == nil {
		return nil
	}
	return apperrors.ExportError{Format: format, Path: path, Cause: err}
}

// writeAtomic streams into a temporary file next to path and renames it
// over path, so readers see either the previous export or the new one.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	if err = write(bw); err != nil {
		return err
	}
	if err = bw.Flush(); err != nil {
		return err
	}
	if err = f.Sync(); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// CreateTemp uses 0600.
	if err = os.Chmod(tmp, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
