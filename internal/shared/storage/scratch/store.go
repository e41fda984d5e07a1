package scratch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"studybyte-backend/internal/shared/util"
)

// ErrTooLarge is returned when an upload exceeds the store's size limit.
var ErrTooLarge = errors.New("upload exceeds size limit")

// File is an upload written to the scratch directory.
type File struct {
	Path string
	Name string
	Size int64
}

// Store keeps uploads on local disk only for the duration of a request.
type Store struct {
	dir      string
	maxBytes int64
}

// New creates a store rooted at dir. maxBytes <= 0 disables the size check.
func New(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Save writes r to a uniquely named file. The client name is sanitized and
// kept after a random prefix. A partial file is removed on failure.
func (s *Store) Save(ctx context.Context, fileName string, r io.Reader) (File, error) {
	if err := ctx.Err(); err != nil {
		return File{}, err
	}
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return File{}, fmt.Errorf("sanitize file name: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return File{}, fmt.Errorf("mkdir: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s", uuid.NewString(), name))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return File{}, fmt.Errorf("open file: %w", err)
	}

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	written, copyErr := io.Copy(f, src)
	closeErr := f.Close()

	switch {
	case copyErr != nil:
		err = fmt.Errorf("write body: %w", copyErr)
	case closeErr != nil:
		err = fmt.Errorf("close file: %w", closeErr)
	case s.maxBytes > 0 && written > s.maxBytes:
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return File{}, err
	}
	return File{Path: path, Name: name, Size: written}, nil
}

// Remove deletes a saved file. A file that is already gone is not an error.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}
