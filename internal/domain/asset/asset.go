package asset

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	KindAvatar       = "avatar"
	KindProjectImage = "project-image"
	KindCertificate  = "certificate"
	KindResume       = "resume"
)

// Asset records an uploaded file: who owns it, what kind of reference it is,
// and the stable URL the file store handed back.
type Asset struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Kind      string    `json:"kind"`
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	MimeType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

type Repository interface {
	Save(ctx context.Context, a *Asset) error
	FindByFilename(ctx context.Context, filename string) (*Asset, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Asset, error)
}
