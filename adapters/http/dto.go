package http

import (
	"time"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/portfolio"
	"github.com/gayathrinuthana/portfolio-api/internal/domain/user"
)

// Auth DTOs

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	OwnerID   string    `json:"ownerId"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		OwnerID:   u.OwnerID(),
		CreatedAt: u.CreatedAt,
	}
}

// Portfolio DTOs. Documents travel in their wire shape already (the domain
// struct carries the JSON tags), so requests bind straight into domain types.

type CreatePortfolioRequest struct {
	portfolio.Document
}

type UpdatePortfolioRequest struct {
	portfolio.Partial
}

type UploadResponse struct {
	ImageURL     string  `json:"imageUrl"`
	PreviewURL   *string `json:"previewUrl,omitempty"`
	IsPDF        *bool   `json:"isPdf,omitempty"`
	IsPowerPoint *bool   `json:"isPowerPoint,omitempty"`
}
