package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"autoshop/api/internal/middleware"
	"autoshop/api/internal/repository"
	"autoshop/api/internal/service"
)

type sessionResponse struct {
	ID           string    `json:"id"`
	Device       string    `json:"device"`
	Browser      string    `json:"browser"`
	IPAddress    string    `json:"ipAddress"`
	Location     string    `json:"location,omitempty"`
	LastActiveAt time.Time `json:"lastActiveAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
	Current      bool      `json:"current"`
}

func (h HandlerSet) ListSessions(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "NO_AUTH", "authentication required")
		return
	}
	claims, _ := middleware.CurrentClaims(c)

	entries, err := h.authService.ListSessions(c.Request.Context(), user.ID, claims.SessionID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", user.ID).Msg("list sessions failed")
		fail(c, http.StatusInternalServerError, "AUTH_ERROR", "unable to list sessions")
		return
	}

	resp := make([]sessionResponse, 0, len(entries))
	for _, entry := range entries {
		resp = append(resp, sessionResponse{
			ID:           entry.Session.ID,
			Device:       entry.Session.Device,
			Browser:      entry.Session.Browser,
			IPAddress:    entry.Session.IPAddress,
			Location:     entry.Session.Location,
			LastActiveAt: entry.Session.LastActiveAt,
			ExpiresAt:    entry.Session.ExpiresAt,
			Current:      entry.Current,
		})
	}

	c.JSON(http.StatusOK, gin.H{"sessions": resp})
}

func (h HandlerSet) TerminateSession(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "NO_AUTH", "authentication required")
		return
	}
	claims, _ := middleware.CurrentClaims(c)

	sessionID := c.Param("id")
	err := h.authService.TerminateSession(c.Request.Context(), user.ID, sessionID, claims.SessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCurrentSession):
			fail(c, http.StatusBadRequest, "CURRENT_SESSION", "use logout to end the current session")
		case errors.Is(err, repository.ErrSessionNotFound):
			fail(c, http.StatusNotFound, "NOT_FOUND", "session not found")
		case errors.Is(err, service.ErrSessionForbidden):
			fail(c, http.StatusForbidden, "FORBIDDEN", "session belongs to another user")
		default:
			h.log.Error().Err(err).Str("session_id", sessionID).Msg("terminate session failed")
			fail(c, http.StatusInternalServerError, "AUTH_ERROR", "unable to terminate session")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "session terminated"})
}
