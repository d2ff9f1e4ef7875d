package portfolio

import (
	"time"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
)

// Broadcast payload shapes. Each emission carries the owner identity (where
// the audience needs it) and an ISO-8601 timestamp.

type createdPayload struct {
	OwnerID   string              `json:"ownerId"`
	Portfolio *portfolio.Document `json:"portfolio"`
	Timestamp string              `json:"timestamp"`
}

type updatedPayload struct {
	OwnerID   string `json:"ownerId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// adminSyncPayload is the customer-room variant of portfolio-updated; it
// deliberately omits the owner id, matching the admin-originated shape.
type adminSyncPayload struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type changedPayload struct {
	OwnerID   string              `json:"ownerId"`
	Portfolio *portfolio.Document `json:"portfolio"`
	UpdatedBy string              `json:"updatedBy"`
	Timestamp string              `json:"timestamp"`
}

type deletedPayload struct {
	OwnerID   string `json:"ownerId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type avatarPayload struct {
	OwnerID   string `json:"ownerId"`
	AvatarURL string `json:"avatarUrl"`
	Timestamp string `json:"timestamp"`
}

func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339)
}
