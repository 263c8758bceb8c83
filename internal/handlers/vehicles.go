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

type vehicleRequest struct {
	LicensePlate string `json:"licensePlate"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	VIN          string `json:"vin"`
	Mileage      int    `json:"mileage"`
	VehicleType  string `json:"vehicleType"`
	Notes        string `json:"notes"`
}

type vehicleResponse struct {
	ID           string    `json:"id"`
	CustomerID   string    `json:"customerId"`
	LicensePlate string    `json:"licensePlate"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	VIN          string    `json:"vin,omitempty"`
	Mileage      int       `json:"mileage"`
	VehicleType  string    `json:"vehicleType,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toVehicleResponse(v models.Vehicle) vehicleResponse {
	return vehicleResponse{
		ID:           v.ID,
		CustomerID:   v.CustomerID,
		LicensePlate: v.LicensePlate,
		Make:         v.Make,
		Model:        v.Model,
		Year:         v.Year,
		VIN:          v.VIN,
		Mileage:      v.Mileage,
		VehicleType:  v.VehicleType,
		Notes:        v.Notes,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func (h HandlerSet) GetVehicle(c *gin.Context) {
	v, err := h.vehicles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "vehicle not found")
			return
		}
		h.log.Error().Err(err).Msg("get vehicle failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to load vehicle")
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": toVehicleResponse(v)})
}

func (h HandlerSet) ListVehiclesByCustomer(c *gin.Context) {
	vehicles, err := h.vehicles.ListByCustomer(c.Request.Context(), c.Param("customerId"))
	if err != nil {
		h.log.Error().Err(err).Msg("list vehicles failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to list vehicles")
		return
	}

	resp := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, toVehicleResponse(v))
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": resp})
}

func (h HandlerSet) CreateVehicle(c *gin.Context) {
	customerID := c.Param("customerId")
	if _, err := h.customers.GetByID(c.Request.Context(), customerID); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "customer not found")
			return
		}
		h.log.Error().Err(err).Msg("create vehicle failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to create vehicle")
		return
	}

	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "invalid request body")
		return
	}
	if strings.TrimSpace(req.LicensePlate) == "" || strings.TrimSpace(req.Make) == "" || strings.TrimSpace(req.Model) == "" {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "licensePlate, make, and model are required")
		return
	}

	v := models.Vehicle{
		ID:           ids.NewVehicle(),
		CustomerID:   customerID,
		LicensePlate: req.LicensePlate,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		VIN:          req.VIN,
		Mileage:      req.Mileage,
		VehicleType:  req.VehicleType,
		Notes:        req.Notes,
	}
	if err := h.vehicles.Create(c.Request.Context(), v); err != nil {
		h.log.Error().Err(err).Msg("create vehicle failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to create vehicle")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "vehicle created",
		"vehicle": toVehicleResponse(v),
	})
}

func (h HandlerSet) UpdateVehicle(c *gin.Context) {
	var req vehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "MISSING_FIELDS", "invalid request body")
		return
	}

	v, err := h.vehicles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "vehicle not found")
			return
		}
		h.log.Error().Err(err).Msg("update vehicle failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to update vehicle")
		return
	}

	v.LicensePlate = req.LicensePlate
	v.Make = req.Make
	v.Model = req.Model
	v.Year = req.Year
	v.VIN = req.VIN
	v.Mileage = req.Mileage
	v.VehicleType = req.VehicleType
	v.Notes = req.Notes

	if err := h.vehicles.Update(c.Request.Context(), v); err != nil {
		h.log.Error().Err(err).Msg("update vehicle failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to update vehicle")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "vehicle updated",
		"vehicle": toVehicleResponse(v),
	})
}

func (h HandlerSet) DeleteVehicle(c *gin.Context) {
	if err := h.vehicles.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrVehicleNotFound) {
			fail(c, http.StatusNotFound, "NOT_FOUND", "vehicle not found")
			return
		}
		h.log.Error().Err(err).Msg("delete vehicle failed")
		fail(c, http.StatusInternalServerError, "VEHICLE_ERROR", "unable to delete vehicle")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "vehicle deleted"})
}
