package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"autoshop/api/internal/ids"
	"autoshop/api/internal/models"
	"autoshop/api/internal/repository"
)

type orderRequest struct {
	CustomerID  string  `json:"customerId"`
	VehicleID   string  `json:"vehicleId"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	Total       float64 `json:"total"`
}

type orderResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	VehicleID   string    `json:"vehicleId"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Total       float64   `json:"total"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toOrderResponse(o models.ServiceOrder) orderResponse {
	return orderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		VehicleID:   o.VehicleID,
		Description: o.Description,
		Status:      string(o.Status),
		Total:       o.Total,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func validOrderStatus(status string) bool {
	switch models.OrderStatus(status) {
	case models.OrderStatusPending, models.OrderStatusInProgress,
		models.OrderStatusCompleted, models.OrderStatusCancelled:
		return true
	}
	return false
}

func (h HandlerSet) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list orders failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to list service orders")
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"serviceOrders": resp})
}

func (h HandlerSet) GetOrder(c *gin.Context) {
	o, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "service order not found")
			return
		}
		h.log.Error().Err(err).Msg("get order failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to load service order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"serviceOrder": toOrderResponse(o)})
}

func (h HandlerSet) CreateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "invalid request body")
		return
	}
	if req.CustomerID == "" || strings.TrimSpace(req.Description) == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "customerId and description are required")
		return
	}

	status := req.Status
	if status == "" {
		status = string(models.OrderStatusPending)
	}
	if !validOrderStatus(status) {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "status must be pending, in_progress, completed, or cancelled")
		return
	}

	if _, err := h.customers.GetByID(c.Request.Context(), req.CustomerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
			return
		}
		h.log.Error().Err(err).Msg("create order failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to create service order")
		return
	}

	o := models.ServiceOrder{
		ID:          ids.NewOrder(),
		CustomerID:  req.CustomerID,
		VehicleID:   req.VehicleID,
		Description: req.Description,
		Status:      models.OrderStatus(status),
		Total:       req.Total,
	}
	if err := h.orders.Create(c.Request.Context(), o); err != nil {
		h.log.Error().Err(err).Msg("create order failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to create service order")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "service order created",
		"serviceOrder": toOrderResponse(o),
	})
}

func (h HandlerSet) UpdateOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "invalid request body")
		return
	}
	if req.Status != "" && !validOrderStatus(req.Status) {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "status must be pending, in_progress, completed, or cancelled")
		return
	}

	o, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "service order not found")
			return
		}
		h.log.Error().Err(err).Msg("update order failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to update service order")
		return
	}

	if req.VehicleID != "" {
		o.VehicleID = req.VehicleID
	}
	if req.Description != "" {
		o.Description = req.Description
	}
	if req.Status != "" {
		o.Status = models.OrderStatus(req.Status)
	}
	if req.Total != 0 {
		o.Total = req.Total
	}

	if err := h.orders.Update(c.Request.Context(), o); err != nil {
		h.log.Error().Err(err).Msg("update order failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to update service order")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "service order updated",
		"serviceOrder": toOrderResponse(o),
	})
}

func (h HandlerSet) DeleteOrder(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "service order not found")
			return
		}
		h.log.Error().Err(err).Msg("delete order failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to delete service order")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "service order deleted"})
}
