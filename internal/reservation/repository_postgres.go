package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound          = errors.New("reservation not found")
	ErrInvalidStatus     = errors.New("unknown reservation status")
	ErrInvalidTransition = errors.New("illegal reservation status transition")
)

const storeTimeout = 5 * time.Second

type Repository interface {
	Create(ctx context.Context, res Reservation) (Reservation, error)
	List(ctx context.Context) ([]Reservation, error)
	GetStatus(ctx context.Context, id int) (Status, error)
	UpdateStatus(ctx context.Context, id int, status Status) error
}

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertReservationQuery = `
		INSERT INTO reservations (code, customer_name, product_id, reserved_for, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	listReservationsQuery = `
		SELECT id, code, customer_name, product_id, reserved_for, status, created_at
		FROM reservations
		ORDER BY created_at DESC, id DESC`
	getReservationStatusQuery = `SELECT status FROM reservations WHERE id = $1`
	updateReservationQuery    = `UPDATE reservations SET status = $1 WHERE id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, res Reservation) (Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, insertReservationQuery,
		res.Code, res.CustomerName, res.ProductID, res.ReservedFor, string(res.Status), res.CreatedAt).Scan(&res.ID)
	if err != nil {
		return Reservation{}, fmt.Errorf("insert reservation: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listReservationsQuery)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	defer rows.Close()

	out := make([]Reservation, 0)
	for rows.Next() {
		var res Reservation
		var status string
		if err := rows.Scan(&res.ID, &res.Code, &res.CustomerName, &res.ProductID, &res.ReservedFor, &status, &res.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		res.Status = Status(status)
		out = append(out, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetStatus(ctx context.Context, id int) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var status string
	if err := r.db.QueryRowContext(ctx, getReservationStatusQuery, id).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load reservation status: %w", err)
	}
	return Status(status), nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, updateReservationQuery, string(status), id)
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reservation status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
