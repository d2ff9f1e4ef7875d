package portfolio

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/realtime"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type CreatePortfolioUseCase struct {
	repo        portfolio.Repository
	mirror      service.Mirror
	broadcaster service.Broadcaster
	logger      logger.Logger
}

func NewCreatePortfolioUseCase(
	repo portfolio.Repository,
	mirror service.Mirror,
	broadcaster service.Broadcaster,
	log logger.Logger,
) *CreatePortfolioUseCase {
	return &CreatePortfolioUseCase{repo: repo, mirror: mirror, broadcaster: broadcaster, logger: log}
}

type CreatePortfolioInput struct {
	Document portfolio.Document
}

type CreatePortfolioOutput struct {
	Document *portfolio.Document
}

// Execute validates and persists the document to the durable store (upsert
// on first write), seeds the mirror entry so later partial updates can merge
// against it, and only then announces the creation to every connected
// client.
func (uc *CreatePortfolioUseCase) Execute(ctx context.Context, input CreatePortfolioInput) (*CreatePortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "CreatePortfolio")
	defer span.End()

	doc := input.Document
	doc.UpdatedAt = time.Now().UTC()

	if err := doc.Validate(); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("owner_id", doc.OwnerID))

	if err := uc.repo.Upsert(ctx, &doc); err != nil {
		span.RecordError(err)
		return nil, err
	}
	uc.mirror.Seed(&doc)

	uc.broadcaster.BroadcastAll(realtime.EventPortfolioCreated, createdPayload{
		OwnerID:   doc.OwnerID,
		Portfolio: &doc,
		Timestamp: isoNow(),
	})

	return &CreatePortfolioOutput{Document: &doc}, nil
}
