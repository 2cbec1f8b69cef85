package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes archives into a download directory
type FileSink struct {
	Dir string

	lastPath string
}

// NewFileSink creates a sink writing into dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Save writes the archive through a temporary file so an interrupted write
// never leaves a partial archive under the final name.
func (s *FileSink) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return fmt.Errorf("invalid artifact name %q", name)
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.Dir, "."+name+".*.part")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close archive: %w", err)
	}

	target := filepath.Join(s.Dir, name)
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move archive into place: %w", err)
	}

	s.lastPath = target
	return nil
}

// LastPath returns the path of the most recently saved archive
func (s *FileSink) LastPath() string {
	return s.lastPath
}
