package portfolio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
)

func TestDelete_RemovesFromDurableStoreAndBroadcasts(t *testing.T) {
	repo := newFakePortfolioRepo(testDoc(customerOwner))
	broadcaster := &fakeBroadcaster{}
	uc := NewDeletePortfolioUseCase(repo, broadcaster)

	err := uc.Execute(context.Background(), DeletePortfolioInput{OwnerID: customerOwner})
	require.NoError(t, err)

	_, err = repo.FindByOwnerID(context.Background(), customerOwner)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	deleted := broadcaster.byEvent(realtime.EventPortfolioDeleted)
	require.Len(t, deleted, 1)
	payload, ok := deleted[0].Payload.(deletedPayload)
	require.True(t, ok)
	assert.Equal(t, customerOwner, payload.OwnerID)
}

func TestDelete_UnknownOwnerEmitsNothing(t *testing.T) {
	repo := newFakePortfolioRepo()
	broadcaster := &fakeBroadcaster{}
	uc := NewDeletePortfolioUseCase(repo, broadcaster)

	err := uc.Execute(context.Background(), DeletePortfolioInput{OwnerID: "ghost@test.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
	assert.Empty(t, broadcaster.records())
}
