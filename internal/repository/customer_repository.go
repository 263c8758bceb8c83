package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autoshop/api/internal/models"
)

var ErrCustomerNotFound = errors.New("customer not found")

const customerColumns = `
	id, first_name, middle_name, last_name, suffix, phone_number, email,
	profile_picture, loyalty_status, notes, created_at, updated_at
`

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var c models.Customer
	if err := row.Scan(
		&c.ID,
		&c.FirstName,
		&c.MiddleName,
		&c.LastName,
		&c.Suffix,
		&c.PhoneNumber,
		&c.Email,
		&c.ProfilePicture,
		&c.LoyaltyStatus,
		&c.Notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Customer{}, ErrCustomerNotFound
		}
		return models.Customer{}, err
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, c models.Customer) error {
	const query = `
		INSERT INTO customers (
			id, first_name, middle_name, last_name, suffix, phone_number, email,
			profile_picture, loyalty_status, notes, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.FirstName, c.MiddleName, c.LastName, c.Suffix,
		c.PhoneNumber, c.Email, c.ProfilePicture, c.LoyaltyStatus, c.Notes,
	)
	return err
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (models.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

func (r *CustomerRepository) List(ctx context.Context) ([]models.Customer, error) {
	const query = `SELECT ` + customerColumns + ` FROM customers ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *CustomerRepository) Update(ctx context.Context, c models.Customer) error {
	const query = `
		UPDATE customers SET
			first_name = $2, middle_name = $3, last_name = $4, suffix = $5,
			phone_number = $6, email = $7, profile_picture = $8,
			loyalty_status = $9, notes = $10, updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		c.ID, c.FirstName, c.MiddleName, c.LastName, c.Suffix,
		c.PhoneNumber, c.Email, c.ProfilePicture, c.LoyaltyStatus, c.Notes,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM customers WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

func (r *CustomerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
