package inventory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("inventory item not found")

const storeTimeout = 5 * time.Second

// Repository reads and adjusts the stock column of the products table; the
// checkout transaction is the only other writer of that column.
type Repository interface {
	List(ctx context.Context) ([]Item, error)
	SetStock(ctx context.Context, productID, quantity int) error
}

type PostgresRepository struct {
	db *sql.DB
}

const (
	listStockQuery = `SELECT id, name, stock FROM products ORDER BY id`
	setStockQuery  = `UPDATE products SET stock = $1 WHERE id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listStockQuery)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.CurrentQuantity); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		it.StockStatus = StatusFor(it.CurrentQuantity)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	return items, nil
}

func (r *PostgresRepository) SetStock(ctx context.Context, productID, quantity int) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, setStockQuery, quantity, productID)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
