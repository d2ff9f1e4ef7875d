package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/gayathrinuthana/portfolio-api/internal/application/usecase/auth"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

type AuthHandler struct {
	loginUseCase    *authUC.LoginUseCase
	registerUseCase *authUC.RegisterUseCase
	profileUseCase  *authUC.ProfileUseCase
	logoutUseCase   *authUC.LogoutUseCase
	logger          logger.Logger
}

func NewAuthHandler(
	loginUC *authUC.LoginUseCase,
	registerUC *authUC.RegisterUseCase,
	profileUC *authUC.ProfileUseCase,
	logoutUC *authUC.LogoutUseCase,
	log logger.Logger,
) *AuthHandler {
	return &AuthHandler{
		loginUseCase:    loginUC,
		registerUseCase: registerUC,
		profileUseCase:  profileUC,
		logoutUseCase:   logoutUC,
		logger:          log,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("email and password are required", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": output.AccessToken,
		"user":  ToUserDTO(output.User),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("username, email, and password are required", err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": output.AccessToken,
		"user":  ToUserDTO(output.User),
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	ownerID, ok := GetOwnerIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("ownerID not found in context"))
		return
	}

	output, err := h.profileUseCase.Execute(c.Request.Context(), authUC.GetProfileInput{Email: ownerID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToUserDTO(output.User))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := GetClaimsFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("claims not found in context"))
		return
	}

	if err := h.logoutUseCase.Execute(c.Request.Context(), authUC.LogoutInput{Claims: claims}); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
