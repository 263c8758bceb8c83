package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Customer struct {
	ID             string
	FirstName      string
	MiddleName     string
	LastName       string
	Suffix         string
	PhoneNumber    string
	Email          string
	ProfilePicture *string
	LoyaltyStatus  string
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Vehicle struct {
	ID           string
	CustomerID   string
	LicensePlate string
	Make         string
	Model        string
	Year         int
	VIN          string
	Mileage      int
	VehicleType  string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ServiceOrder struct {
	ID          string
	CustomerID  string
	VehicleID   string
	Description string
	Status      OrderStatus
	Total       float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
