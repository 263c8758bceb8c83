package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autoshop/api/internal/models"
)

var ErrOrderNotFound = errors.New("service order not found")

const orderColumns = `
	id, customer_id, vehicle_id, description, status, total,
	created_at, updated_at
`

type ServiceOrderRepository struct {
	pool *pgxpool.Pool
}

func NewServiceOrderRepository(pool *pgxpool.Pool) *ServiceOrderRepository {
	return &ServiceOrderRepository{pool: pool}
}

func scanOrder(row pgx.Row) (models.ServiceOrder, error) {
	var o models.ServiceOrder
	if err := row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.VehicleID,
		&o.Description,
		&o.Status,
		&o.Total,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ServiceOrder{}, ErrOrderNotFound
		}
		return models.ServiceOrder{}, err
	}
	return o, nil
}

func (r *ServiceOrderRepository) Create(ctx context.Context, o models.ServiceOrder) error {
	const query = `
		INSERT INTO service_orders (
			id, customer_id, vehicle_id, description, status, total,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.CustomerID, o.VehicleID, o.Description, o.Status, o.Total,
	)
	return err
}

func (r *ServiceOrderRepository) GetByID(ctx context.Context, id string) (models.ServiceOrder, error) {
	const query = `SELECT ` + orderColumns + ` FROM service_orders WHERE id = $1`
	return scanOrder(r.pool.QueryRow(ctx, query, id))
}

func (r *ServiceOrderRepository) List(ctx context.Context) ([]models.ServiceOrder, error) {
	const query = `SELECT ` + orderColumns + ` FROM service_orders ORDER BY created_at DESC`
	return r.queryOrders(ctx, query)
}

func (r *ServiceOrderRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.ServiceOrder, error) {
	const query = `
		SELECT ` + orderColumns + `
		FROM service_orders WHERE customer_id = $1 ORDER BY created_at DESC
	`
	return r.queryOrders(ctx, query, customerID)
}

func (r *ServiceOrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.ServiceOrder, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.ServiceOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

func (r *ServiceOrderRepository) Update(ctx context.Context, o models.ServiceOrder) error {
	const query = `
		UPDATE service_orders SET
			vehicle_id = $2, description = $3, status = $4, total = $5,
			updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query, o.ID, o.VehicleID, o.Description, o.Status, o.Total)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *ServiceOrderRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM service_orders WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *ServiceOrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM service_orders`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
