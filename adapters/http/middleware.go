package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gayathrinuthana/portfolio-api/internal/application/service"
	"github.com/gayathrinuthana/portfolio-api/pkg/apperror"
	"github.com/gayathrinuthana/portfolio-api/pkg/auth"
	"github.com/gayathrinuthana/portfolio-api/pkg/logger"
)

const (
	GinContextKeyOwnerID = "ownerID"
	GinContextKeyRole    = "role"
	GinContextKeyClaims  = "claims"
)

// AuthMiddleware validates the bearer token and rejects tokens that were
// denylisted by logout.
func AuthMiddleware(jwtSvc *auth.JWTService, tokens service.TokenStore, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		revoked, err := tokens.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Error("Failed to check token revocation", err, zap.String("token_id", claims.ID))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
			return
		}

		c.Set(GinContextKeyOwnerID, claims.OwnerID)
		c.Set(GinContextKeyRole, claims.Role)
		c.Set(GinContextKeyClaims, claims)

		c.Next()
	}
}

// RequireRole gates a route group to the listed roles. Must run after
// AuthMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(GinContextKeyRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions."})
	}
}

// ErrorMiddleware renders the last error a handler attached via c.Error.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed", err, zap.String("path", c.FullPath()))
		}

		if appErr, ok := err.(*apperror.AppError); ok {
			c.JSON(status, appErr.ToJSON())
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
	}
}

func GetOwnerIDFromGinContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(GinContextKeyOwnerID)
	if !ok {
		return "", false
	}
	ownerID, ok := v.(string)
	return ownerID, ok
}

func GetClaimsFromGinContext(c *gin.Context) (*auth.CustomClaims, bool) {
	v, ok := c.Get(GinContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.CustomClaims)
	return claims, ok
}
