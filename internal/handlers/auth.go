package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/security"
	"autoshop/api/internal/service"
)

type addressResponse struct {
	Region   string `json:"region"`
	Province string `json:"province"`
	City     string `json:"city"`
	Barangay string `json:"barangay"`
	Street   string `json:"street"`
	Country  string `json:"country"`
}

type userResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      string          `json:"role"`
	IsActive  bool            `json:"isActive"`
	AvatarURL *string         `json:"avatarUrl,omitempty"`
	Address   addressResponse `json:"address"`
}

func toUserResponse(user models.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		AvatarURL: user.AvatarURL,
		Address: addressResponse{
			Region:   user.Address.Region,
			Province: user.Address.Province,
			City:     user.Address.City,
			Barangay: user.Address.Barangay,
			Street:   user.Address.Street,
			Country:  user.Address.Country,
		},
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "email and password are required")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Email:     req.Email,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.GetHeader("User-Agent"),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		fail(c, http.StatusInternalServerError, "AUTH_ERROR", "unable to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   result.Token,
		"user":    toUserResponse(result.User),
	})
}

// Logout is best effort. A missing or invalid token still yields 200; the
// client discards its copy either way.
func (h HandlerSet) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if claims, err := security.ParseAccessToken(tokenStr, h.cfg.Security.JWTSecret); err == nil {
			if err := h.authService.Logout(c.Request.Context(), claims.SessionID); err != nil {
				h.log.Warn().Err(err).Str("session_id", claims.SessionID).Msg("logout cleanup failed")
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	fail(c, http.StatusNotImplemented, "NOT_IMPLEMENTED", "registration is not available")
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h HandlerSet) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "email is required")
		return
	}

	if err := h.resetService.RequestReset(c.Request.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("forgot password failed")
		fail(c, http.StatusInternalServerError, "AUTH_ERROR", "unable to process request")
		return
	}

	// The same body regardless of whether the email matched an account.
	c.JSON(http.StatusOK, gin.H{
		"message": "if an account exists for that email, a reset link has been sent",
	})
}

func (h HandlerSet) VerifyResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "token is required")
		return
	}

	if err := h.resetService.VerifyToken(c.Request.Context(), token); err != nil {
		if errors.Is(err, repository.ErrResetNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "reset token is invalid or expired")
			return
		}
		h.log.Error().Err(err).Msg("verify reset token failed")
		fail(c, http.StatusInternalServerError, "AUTH_ERROR", "unable to verify token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": true})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (h HandlerSet) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.Password == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "token and password are required")
		return
	}

	if err := h.resetService.ResetPassword(c.Request.Context(), req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrWeakPassword):
			fail(c, http.StatusBadRequest, "WEAK_PASSWORD",
				"password must be at least 8 characters with an uppercase letter, a lowercase letter, and a number")
		case errors.Is(err, repository.ErrResetNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "reset token is invalid or expired")
		case errors.Is(err, repository.ErrUserNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "reset token is invalid or expired")
		default:
			h.log.Error().Err(err).Msg("reset password failed")
			fail(c, http.StatusInternalServerError, "AUTH_ERROR", "unable to reset password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "password has been reset"})
}
