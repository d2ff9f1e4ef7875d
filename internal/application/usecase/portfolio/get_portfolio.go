package portfolio

import (
	"context"
	"errors"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
)

type GetPortfolioUseCase struct {
	mirror service.Mirror
	repo   portfolio.Repository
}

func NewGetPortfolioUseCase(mirror service.Mirror, repo portfolio.Repository) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{mirror: mirror, repo: repo}
}

type GetPortfolioInput struct {
	OwnerID string
}

type GetPortfolioOutput struct {
	Document *portfolio.Document
}

// Execute reads from the mirror, the canonical read path. A mirror miss
// falls back to the durable store and back-fills the mirror, so documents
// created before this process started are still readable.
func (uc *GetPortfolioUseCase) Execute(ctx context.Context, input GetPortfolioInput) (*GetPortfolioOutput, error) {
	doc, err := uc.mirror.Get(input.OwnerID)
	if err == nil {
		return &GetPortfolioOutput{Document: doc}, nil
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	doc, err = uc.repo.FindByOwnerID(ctx, input.OwnerID)
	if err != nil {
		return nil, err
	}
	uc.mirror.Seed(doc)
	return &GetPortfolioOutput{Document: doc}, nil
}
