package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (h HandlerSet) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list users failed")
		fail(c, http.StatusInternalServerError, "USERS_ERROR", "unable to list users")
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}

	c.JSON(http.StatusOK, gin.H{"users": resp})
}

type dashboardStats struct {
	TotalUsers    int `json:"totalUsers"`
	ActiveUsers   int `json:"activeUsers"`
	InactiveUsers int `json:"inactiveUsers"`
	Customers     int `json:"customers"`
	Vehicles      int `json:"vehicles"`
	ServiceOrders int `json:"serviceOrders"`
}

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 60 * time.Second
)

func (h HandlerSet) DashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
		var stats dashboardStats
		if json.Unmarshal(cached, &stats) == nil {
			c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": true})
			return
		}
	}

	total, active, err := h.users.CountByActive(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("stats query failed")
		fail(c, http.StatusInternalServerError, "STATS_ERROR", "unable to load stats")
		return
	}

	customers, err := h.customers.Count(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("stats query failed")
		fail(c, http.StatusInternalServerError, "STATS_ERROR", "unable to load stats")
		return
	}

	vehicles, err := h.vehicles.Count(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("stats query failed")
		fail(c, http.StatusInternalServerError, "STATS_ERROR", "unable to load stats")
		return
	}

	orders, err := h.orders.Count(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("stats query failed")
		fail(c, http.StatusInternalServerError, "STATS_ERROR", "unable to load stats")
		return
	}

	stats := dashboardStats{
		TotalUsers:    total,
		ActiveUsers:   active,
		InactiveUsers: total - active,
		Customers:     customers,
		Vehicles:      vehicles,
		ServiceOrders: orders,
	}

	if payload, err := json.Marshal(stats); err == nil {
		if err := h.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
			h.log.Warn().Err(err).Msg("stats cache write failed")
		}
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats, "cached": false})
}
