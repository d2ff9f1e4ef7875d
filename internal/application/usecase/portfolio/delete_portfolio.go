package portfolio

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
)

type DeletePortfolioUseCase struct {
	repo        portfolio.Repository
	broadcaster service.Broadcaster
}

func NewDeletePortfolioUseCase(repo portfolio.Repository, broadcaster service.Broadcaster) *DeletePortfolioUseCase {
	return &DeletePortfolioUseCase{repo: repo, broadcaster: broadcaster}
}

type DeletePortfolioInput struct {
	OwnerID string
}

// Execute removes the document from the durable store only. The mirror entry
// is left in place on purpose: deletes are rare, admin-driven, and mirror
// entries are disposable working copies repopulated at the next startup.
// An unknown owner fails with not-found and emits nothing.
func (uc *DeletePortfolioUseCase) Execute(ctx context.Context, input DeletePortfolioInput) error {
	ctx, span := tracer.Start(ctx, "DeletePortfolio")
	defer span.End()
	span.SetAttributes(attribute.String("owner_id", input.OwnerID))

	if err := uc.repo.Delete(ctx, input.OwnerID); err != nil {
		span.RecordError(err)
		return err
	}

	uc.broadcaster.BroadcastAll(realtime.EventPortfolioDeleted, deletedPayload{
		OwnerID:   input.OwnerID,
		Message:   "Portfolio deleted",
		Timestamp: isoNow(),
	})
	return nil
}
