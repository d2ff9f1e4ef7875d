package auth

import (
	"context"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/user"
)

type ProfileUseCase struct {
	userRepo user.Repository
}

func NewProfileUseCase(repo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: repo}
}

type GetProfileInput struct {
	Email string
}

type GetProfileOutput struct {
	User *user.User
}

func (uc *ProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	u, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{User: u}, nil
}
