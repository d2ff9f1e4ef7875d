package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

func TestCreate_PersistsSeedsAndBroadcasts(t *testing.T) {
	repo := newFakePortfolioRepo()
	mirror := newFakeMirror()
	broadcaster := &fakeBroadcaster{}
	uc := NewCreatePortfolioUseCase(repo, mirror, broadcaster, logger.NewNop())

	out, err := uc.Execute(context.Background(), CreatePortfolioInput{Document: *testDoc(customerOwner)})
	require.NoError(t, err)
	assert.False(t, out.Document.UpdatedAt.IsZero())

	stored, err := repo.FindByOwnerID(context.Background(), customerOwner)
	require.NoError(t, err)
	assert.Equal(t, customerOwner, stored.OwnerID)

	mirrored, err := mirror.Get(customerOwner)
	require.NoError(t, err)
	assert.Equal(t, customerOwner, mirrored.OwnerID)

	created := broadcaster.byEvent(realtime.EventPortfolioCreated)
	require.Len(t, created, 1)
	payload, ok := created[0].Payload.(createdPayload)
	require.True(t, ok)
	assert.Equal(t, customerOwner, payload.OwnerID)
}

func TestCreate_InvalidDocumentEmitsNothing(t *testing.T) {
	repo := newFakePortfolioRepo()
	broadcaster := &fakeBroadcaster{}
	uc := NewCreatePortfolioUseCase(repo, newFakeMirror(), broadcaster, logger.NewNop())

	doc := portfolio.Document{OwnerID: "a@test.com"}
	_, err := uc.Execute(context.Background(), CreatePortfolioInput{Document: doc})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrInvalidInput))
	assert.Empty(t, broadcaster.records())
	assert.Zero(t, repo.upserts)
}

func TestCreate_SecondWriteReplacesFirst(t *testing.T) {
	repo := newFakePortfolioRepo()
	mirror := newFakeMirror()
	uc := NewCreatePortfolioUseCase(repo, mirror, &fakeBroadcaster{}, logger.NewNop())

	first := testDoc(customerOwner)
	_, err := uc.Execute(context.Background(), CreatePortfolioInput{Document: *first})
	require.NoError(t, err)

	second := testDoc(customerOwner)
	second.Profile.Bio = "replaced"
	_, err = uc.Execute(context.Background(), CreatePortfolioInput{Document: *second})
	require.NoError(t, err)

	stored, err := repo.FindByOwnerID(context.Background(), customerOwner)
	require.NoError(t, err)
	assert.Equal(t, "replaced", stored.Profile.Bio)
}
