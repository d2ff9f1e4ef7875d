package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gayathrinuthana/portfolio-api/internal/domain/user"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

// NewRouter mounts the API surface: the auth routes, the portfolio CRUD and
// upload routes, and the websocket endpoint.
func NewRouter(
	authHandler *AuthHandler,
	portfolioHandler *PortfolioHandler,
	wsHandler *WSHandler,
	authMiddleware gin.HandlerFunc,
	log logger.Logger,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ErrorMiddleware(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.GET("/profile", authMiddleware, authHandler.Profile)
		authRoutes.POST("/logout", authMiddleware, authHandler.Logout)
	}

	portfolioRoutes := router.Group("/portfolio")
	{
		portfolioRoutes.POST("", portfolioHandler.Create)
		portfolioRoutes.GET("/:ownerId", portfolioHandler.Get)
		portfolioRoutes.PUT("/:ownerId", portfolioHandler.Update)
		portfolioRoutes.DELETE("/:ownerId", authMiddleware, RequireRole(user.RoleAdmin), portfolioHandler.Delete)

		portfolioRoutes.POST("/:ownerId/photo", portfolioHandler.UploadPhoto)
		portfolioRoutes.POST("/:ownerId/project-image", portfolioHandler.UploadProjectImage)
		portfolioRoutes.POST("/:ownerId/certificate-image", portfolioHandler.UploadCertificateImage)
		portfolioRoutes.GET("/pdf-preview/:filename", portfolioHandler.PDFPreview)
	}

	router.GET("/ws", wsHandler.Serve)

	return router
}
