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

type customerRequest struct {
	FirstName      string  `json:"firstName"`
	MiddleName     string  `json:"middleName"`
	LastName       string  `json:"lastName"`
	Suffix         string  `json:"suffix"`
	PhoneNumber    string  `json:"phoneNumber"`
	Email          string  `json:"email"`
	ProfilePicture *string `json:"profilePicture"`
	LoyaltyStatus  string  `json:"loyaltyStatus"`
	Notes          string  `json:"notes"`
}

type customerResponse struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	MiddleName     string    `json:"middleName,omitempty"`
	LastName       string    `json:"lastName"`
	Suffix         string    `json:"suffix,omitempty"`
	PhoneNumber    string    `json:"phoneNumber"`
	Email          string    `json:"email,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	LoyaltyStatus  string    `json:"loyaltyStatus,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toCustomerResponse(cust models.Customer) customerResponse {
	return customerResponse{
		ID:             cust.ID,
		FirstName:      cust.FirstName,
		MiddleName:     cust.MiddleName,
		LastName:       cust.LastName,
		Suffix:         cust.Suffix,
		PhoneNumber:    cust.PhoneNumber,
		Email:          cust.Email,
		ProfilePicture: cust.ProfilePicture,
		LoyaltyStatus:  cust.LoyaltyStatus,
		Notes:          cust.Notes,
		CreatedAt:      cust.CreatedAt,
		UpdatedAt:      cust.UpdatedAt,
	}
}

func (h HandlerSet) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list customers failed")
		fail(c, http.StatusInternalServerError, "CUSTOMER_ERROR", "unable to list customers")
		return
	}

	resp := make([]customerResponse, 0, len(customers))
	for _, cust := range customers {
		resp = append(resp, toCustomerResponse(cust))
	}
	c.JSON(http.StatusOK, gin.H{"customers": resp})
}

func (h HandlerSet) GetCustomer(c *gin.Context) {
	cust, err := h.customers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
			return
		}
		h.log.Error().Err(err).Msg("get customer failed")
		fail(c, http.StatusInternalServerError, "CUSTOMER_ERROR", "unable to load customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"customer": toCustomerResponse(cust)})
}

func (h HandlerSet) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "invalid request body")
		return
	}
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" || strings.TrimSpace(req.PhoneNumber) == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "firstName, lastName, and phoneNumber are required")
		return
	}

	cust := models.Customer{
		ID:             ids.NewCustomer(),
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		Suffix:         req.Suffix,
		PhoneNumber:    req.PhoneNumber,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		ProfilePicture: req.ProfilePicture,
		LoyaltyStatus:  req.LoyaltyStatus,
		Notes:          req.Notes,
	}
	if err := h.customers.Create(c.Request.Context(), cust); err != nil {
		h.log.Error().Err(err).Msg("create customer failed")
		fail(c, http.StatusInternalServerError, "CUSTOMER_ERROR", "unable to create customer")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "customer created",
		"customer": toCustomerResponse(cust),
	})
}

func (h HandlerSet) UpdateCustomer(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "invalid request body")
		return
	}

	cust, err := h.customers.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
			return
		}
		h.log.Error().Err(err).Msg("update customer failed")
		fail(c, http.StatusInternalServerError, "CUSTOMER_ERROR", "unable to update customer")
		return
	}

	cust.FirstName = req.FirstName
	cust.MiddleName = req.MiddleName
	cust.LastName = req.LastName
	cust.Suffix = req.Suffix
	cust.PhoneNumber = req.PhoneNumber
	cust.Email = strings.ToLower(strings.TrimSpace(req.Email))
	cust.ProfilePicture = req.ProfilePicture
	cust.LoyaltyStatus = req.LoyaltyStatus
	cust.Notes = req.Notes

	if err := h.customers.Update(c.Request.Context(), cust); err != nil {
		h.log.Error().Err(err).Msg("update customer failed")
		fail(c, http.StatusInternalServerError, "CUSTOMER_ERROR", "unable to update customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "customer updated",
		"customer": toCustomerResponse(cust),
	})
}

func (h HandlerSet) DeleteCustomer(c *gin.Context) {
	if err := h.customers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
			return
		}
		h.log.Error().Err(err).Msg("delete customer failed")
		fail(c, http.StatusInternalServerError, "CUSTOMER_ERROR", "unable to delete customer")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

func (h HandlerSet) ListCustomerOrders(c *gin.Context) {
	customerID := c.Param("id")
	if _, err := h.customers.GetByID(c.Request.Context(), customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
			return
		}
		h.log.Error().Err(err).Msg("list customer orders failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to list service orders")
		return
	}

	orders, err := h.orders.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.log.Error().Err(err).Msg("list customer orders failed")
		fail(c, http.StatusInternalServerError, "ORDER_ERROR", "unable to list service orders")
		return
	}

	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, gin.H{"serviceOrders": resp})
}

func (h HandlerSet) ListCustomerVehicles(c *gin.Context) {
	customerID := c.Param("id")
	if _, err := h.customers.GetByID(c.Request.Context(), customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
			return
		}
		h.log.Error().Err(err).Msg("list customer vehicles failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to list vehicles")
		return
	}

	vehicles, err := h.vehicles.ListByCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.log.Error().Err(err).Msg("list customer vehicles failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to list vehicles")
		return
	}

	resp := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, toVehicleResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": resp})
}
