package service

import (
	"context"
	"io"
)

// Uploader is the external file-store collaborator. Upload yields a stable
// reference URL for the stored file.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
