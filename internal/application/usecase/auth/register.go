package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/user"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/auth"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

type RegisterOutput struct {
	AccessToken string
	User        *user.User
}

func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {

	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	email := strings.ToLower(input.Email)
	role := input.Role
	if role == "" {
		role = user.RoleCustomer
	}
	if role != user.RoleAdmin && role != user.RoleCustomer {
		return nil, apperror.NewInvalidInput("role must be 'admin' or 'customer'", nil)
	}

	exists, err := uc.userRepo.ExistsByEmailOrUsername(ctx, email, input.Username)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if exists {
		return nil, apperror.NewConflict("user", "email or username", email)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Save(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.OwnerID(), u.Role)
	if err != nil {
		span.RecordError(err)
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &RegisterOutput{AccessToken: token, User: u}, nil
}
