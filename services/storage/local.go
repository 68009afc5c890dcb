package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"autolot/models"
)

// LocalStorage implements FileStorage on a local directory that the router
// serves as static content.
type LocalStorage struct {
	root      string
	urlPrefix string
}

// NewLocalStorage creates the storage root if needed and returns a store
// rooted there. urlPrefix is the public mount point, e.g. "/uploads".
func NewLocalStorage(root, urlPrefix string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", root, err)
	}
	return &LocalStorage{root: root, urlPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

// Save writes the uploaded file under a collision-resistant name: a
// time-based prefix joined to the sanitized original name.
func (s *LocalStorage) Save(ctx context.Context, file *multipart.FileHeader) (models.ImageRef, error) {
	src, err := file.Open()
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("failed to open upload %s: %w", file.Filename, err)
	}
	defer src.Close()

	name := storedName(file.Filename)
	dst, err := os.Create(filepath.Join(s.root, name))
	if err != nil {
		return models.ImageRef{}, fmt.Errorf("failed to create file %s: %w", name, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return models.ImageRef{}, fmt.Errorf("failed to write file %s: %w", name, err)
	}
	return models.ImageRef{Filename: name, Path: s.urlPrefix + "/" + name}, nil
}

// Remove deletes a stored file. A missing file is not an error so that
// cleanup after a partial failure can run unconditionally.
func (s *LocalStorage) Remove(ctx context.Context, filename string) error {
	err := os.Remove(filepath.Join(s.root, filepath.Base(filename)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file %s: %w", filename, err)
	}
	return nil
}

// storedName builds the stored filename: a UnixNano prefix plus the original
// base name with path separators and spaces squeezed out.
func storedName(original string) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%d-%s", time.Now().UnixNano(), base)
}
