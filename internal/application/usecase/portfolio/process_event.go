package portfolio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/adapters/event"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

// ProcessEventUseCase is the worker-side half of the write-behind path: it
// takes a committed mirror write off the event stream and upserts the
// post-merge document into the durable store.
type ProcessEventUseCase struct {
	repo   portfolio.Repository
	logger logger.Logger
}

func NewProcessEventUseCase(repo portfolio.Repository, log logger.Logger) *ProcessEventUseCase {
	return &ProcessEventUseCase{repo: repo, logger: log}
}

func (uc *ProcessEventUseCase) Execute(ctx context.Context, payload event.PortfolioEventPayload) error {
	switch payload.EventType {
	case event.PortfolioEventTypeUpdated, event.PortfolioEventTypeSynced, event.PortfolioEventTypeAvatar:
	default:
		uc.logger.Warn("skipping unknown portfolio event type",
			zap.String("event_type", payload.EventType),
			zap.String("owner_id", payload.OwnerID),
		)
		return nil
	}

	if payload.Document == nil {
		return fmt.Errorf("event %q for owner %q carries no document", payload.EventType, payload.OwnerID)
	}

	if err := uc.repo.Upsert(ctx, payload.Document); err != nil {
		return fmt.Errorf("upsert portfolio for owner %q: %w", payload.OwnerID, err)
	}

	uc.logger.Info("portfolio persisted",
		zap.String("event_type", payload.EventType),
		zap.String("owner_id", payload.OwnerID),
	)
	return nil
}
