package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"autoshop/api/internal/models"
	"autoshop/api/internal/security"
)

// Context keys set by Auth and read by handlers downstream.
const (
	CtxAccessToken  = "access_token"
	CtxAccessClaims = "access_claims"
	CtxCurrentUser  = "current_user"
)

// UserFetcher and SessionChecker are the slices of the repositories the
// auth middleware needs. Tests substitute stubs.
type UserFetcher interface {
	GetByID(ctx context.Context, id string) (models.User, error)
}

type SessionChecker interface {
	GetByID(ctx context.Context, id string) (models.Session, error)
	Touch(ctx context.Context, id string, ip string) error
}

func Auth(jwtSecret string, users UserFetcher, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "NO_TOKEN",
				"message": "authorization token required",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAccessToken(tokenStr, jwtSecret)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "EXPIRED_TOKEN",
					"message": "token has expired",
				})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "INVALID_TOKEN",
				"message": "token is invalid",
			})
			return
		}

		session, err := sessions.GetByID(c.Request.Context(), claims.SessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "INVALID_TOKEN",
				"message": "session no longer exists",
			})
			return
		}

		if session.UserID != claims.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "INVALID_TOKEN",
				"message": "token is invalid",
			})
			return
		}

		if time.Now().After(session.ExpiresAt) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "EXPIRED_TOKEN",
				"message": "session has expired",
			})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "INVALID_USER",
				"message": "account no longer exists",
			})
			return
		}

		if !user.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "INVALID_USER",
				"message": "account is disabled",
			})
			return
		}

		// Best effort; a touch failure must not reject the request.
		_ = sessions.Touch(c.Request.Context(), session.ID, c.ClientIP())

		c.Set(CtxAccessToken, tokenStr)
		c.Set(CtxAccessClaims, *claims)
		c.Set(CtxCurrentUser, user)

		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Auth.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, ok := c.Get(CtxCurrentUser)
	if !ok {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// CurrentClaims returns the verified token claims set by Auth.
func CurrentClaims(c *gin.Context) (security.AccessClaims, bool) {
	val, ok := c.Get(CtxAccessClaims)
	if !ok {
		return security.AccessClaims{}, false
	}
	claims, ok := val.(security.AccessClaims)
	return claims, ok
}
