package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stdio is the file name that refers to standard input or output.
const Stdio = "-"

// FileStore reads and writes the local filesystem.
type FileStore struct {
	Stdin  io.Reader
	Stdout io.Writer
}

func NewFileStore() *FileStore {
	return &FileStore{Stdin: os.Stdin, Stdout: os.Stdout}
}

func (s *FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if name == Stdio {
		return io.NopCloser(s.Stdin), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

func (s *FileStore) Put(ctx context.Context, name string, r io.Reader) error {
	if name == Stdio {
		if _, err := io.Copy(s.Stdout, r); err != nil {
			return fmt.Errorf("failed to write to stdout: %w", err)
		}
		return nil
	}

	// the target only ever holds a complete write
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp, name); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}
