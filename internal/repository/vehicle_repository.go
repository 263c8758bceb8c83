package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autoshop/api/internal/models"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

const vehicleColumns = `
	id, customer_id, license_plate, make, model, year, vin, mileage,
	vehicle_type, notes, created_at, updated_at
`

type VehicleRepository struct {
	pool *pgxpool.Pool
}

func NewVehicleRepository(pool *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{pool: pool}
}

func scanVehicle(row pgx.Row) (models.Vehicle, error) {
	var v models.Vehicle
	if err := row.Scan(
		&v.ID,
		&v.CustomerID,
		&v.LicensePlate,
		&v.Make,
		&v.Model,
		&v.Year,
		&v.VIN,
		&v.Mileage,
		&v.VehicleType,
		&v.Notes,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Vehicle{}, ErrVehicleNotFound
		}
		return models.Vehicle{}, err
	}
	return v, nil
}

func (r *VehicleRepository) Create(ctx context.Context, v models.Vehicle) error {
	const query = `
		INSERT INTO vehicles (
			id, customer_id, license_plate, make, model, year, vin, mileage,
			vehicle_type, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		v.ID, v.CustomerID, v.LicensePlate, v.Make, v.Model,
		v.Year, v.VIN, v.Mileage, v.VehicleType, v.Notes,
	)
	return err
}

func (r *VehicleRepository) GetByID(ctx context.Context, id string) (models.Vehicle, error) {
	const query = `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`
	return scanVehicle(r.pool.QueryRow(ctx, query, id))
}

func (r *VehicleRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.Vehicle, error) {
	const query = `
		SELECT ` + vehicleColumns + `
		FROM vehicles WHERE customer_id = $1 ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) Update(ctx context.Context, v models.Vehicle) error {
	const query = `
		UPDATE vehicles SET
			license_plate = $2, make = $3, model = $4, year = $5, vin = $6,
			mileage = $7, vehicle_type = $8, notes = $9, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		v.ID, v.LicensePlate, v.Make, v.Model, v.Year,
		v.VIN, v.Mileage, v.VehicleType, v.Notes,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM vehicles WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVehicleNotFound
	}
	return nil
}

func (r *VehicleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
