package persistence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
)

func seedDoc(ownerID string) *portfolio.Document {
	return &portfolio.Document{
		OwnerID: ownerID,
		Profile: portfolio.Profile{Name: "Owner", Bio: "seeded"},
		Skills:  []portfolio.Skill{{Name: "Go", Level: "Advanced"}},
	}
}

func TestMemoryMirror_GetSeeded(t *testing.T) {
	mirror := NewMemoryMirror([]*portfolio.Document{seedDoc("a@test.com"), seedDoc("b@test.com")})

	assert.Equal(t, 2, mirror.Len())

	doc, err := mirror.Get("a@test.com")
	require.NoError(t, err)
	assert.Equal(t, "a@test.com", doc.OwnerID)
	assert.Equal(t, "seeded", doc.Profile.Bio)
}

func TestMemoryMirror_GetUnknownOwner(t *testing.T) {
	mirror := NewMemoryMirror(nil)

	_, err := mirror.Get("nobody@test.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestMemoryMirror_PutMergesShallow(t *testing.T) {
	mirror := NewMemoryMirror([]*portfolio.Document{seedDoc("a@test.com")})

	merged, err := mirror.Put("a@test.com", portfolio.Partial{
		Profile: &portfolio.Profile{Name: "Owner", Bio: "edited"},
	})
	require.NoError(t, err)

	assert.Equal(t, "edited", merged.Profile.Bio)
	assert.Len(t, merged.Skills, 1, "absent fields keep prior values")

	stored, err := mirror.Get("a@test.com")
	require.NoError(t, err)
	assert.Equal(t, "edited", stored.Profile.Bio)
}

func TestMemoryMirror_PutUnknownOwnerDoesNotCreate(t *testing.T) {
	mirror := NewMemoryMirror(nil)

	_, err := mirror.Put("nobody@test.com", portfolio.Partial{
		Profile: &portfolio.Profile{Name: "Ghost"},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Equal(t, 0, mirror.Len())
}

func TestMemoryMirror_ReturnsCopies(t *testing.T) {
	mirror := NewMemoryMirror([]*portfolio.Document{seedDoc("a@test.com")})

	doc, err := mirror.Get("a@test.com")
	require.NoError(t, err)
	doc.Skills[0].Name = "Tampered"

	again, err := mirror.Get("a@test.com")
	require.NoError(t, err)
	assert.Equal(t, "Go", again.Skills[0].Name)
}

func TestMemoryMirror_SeedOverwrites(t *testing.T) {
	mirror := NewMemoryMirror([]*portfolio.Document{seedDoc("a@test.com")})

	replacement := seedDoc("a@test.com")
	replacement.Profile.Bio = "replaced"
	mirror.Seed(replacement)

	doc, err := mirror.Get("a@test.com")
	require.NoError(t, err)
	assert.Equal(t, "replaced", doc.Profile.Bio)
	assert.Equal(t, 1, mirror.Len())
}
