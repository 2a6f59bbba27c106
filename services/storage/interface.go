package storage

import (
	"context"
	"io"
)

// StorageService uploads public media and returns its URL.
type StorageService interface {
	UploadImage(ctx context.Context, file io.Reader, folder, publicID string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
}
