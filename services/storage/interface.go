package storage

import (
	"context"
	"mime/multipart"

	"autolot/models"
)

// FileStorage defines the interface for persisting uploaded listing media.
// Stored files are addressable by a relative public path and served back as
// static content.
type FileStorage interface {
	// Save persists one uploaded file and returns its stored name and public path.
	Save(ctx context.Context, file *multipart.FileHeader) (models.ImageRef, error)
	// Remove deletes a stored file by its stored name.
	Remove(ctx context.Context, filename string) error
}
