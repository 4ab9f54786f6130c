package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/lib/pq"
)

// storeTimeout bounds every round-trip to the store; an expired deadline
// surfaces as a store error and, inside Create, rolls the checkout back.
const storeTimeout = 5 * time.Second

// totalTolerance is the accepted deviation per line item between the
// client-declared total and the server-computed one.
const totalTolerance = 0.01

type PostgresRepository struct {
	db *sql.DB
}

const (
	// FOR UPDATE keeps concurrent checkouts from decrementing the same
	// stock rows past zero.
	pricesQuery = `SELECT id, price FROM products WHERE id = ANY($1::int[]) FOR UPDATE`

	decrementStockQuery = `UPDATE products SET stock = stock - $1 WHERE id = $2 AND stock >= $1`

	insertOrderQuery = `
		INSERT INTO orders (customer_name, total, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	insertLineQuery = `
		INSERT INTO order_items (order_id, product_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4)`

	listOrdersQuery = `
		SELECT id, customer_name, total, status, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC`

	getStatusQuery = `SELECT status FROM orders WHERE id = $1`

	listLinesQuery = `
		SELECT COALESCE(p.name, ''), oi.quantity, oi.unit_price, COALESCE(p.image_url, '')
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.id`

	updateStatusQuery = `UPDATE orders SET status = $1 WHERE id = $2`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, customerName string, lines []Line, declaredTotal float64) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin checkout: %w", err)
	}

	id, err := createInTx(ctx, tx, customerName, lines, declaredTotal)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return 0, fmt.Errorf("%w: %v (while handling: %v)", ErrRollbackFailed, rbErr, err)
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit checkout: %w", err)
	}
	return id, nil
}

func createInTx(ctx context.Context, tx *sql.Tx, customerName string, lines []Line, declaredTotal float64) (int, error) {
	ids := make([]int, 0, len(lines))
	for _, ln := range lines {
		ids = append(ids, ln.ProductID)
	}

	rows, err := tx.QueryContext(ctx, pricesQuery, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("load catalog prices: %w", err)
	}
	prices := make(map[int]float64, len(lines))
	for rows.Next() {
		var id int
		var price float64
		if err := rows.Scan(&id, &price); err != nil {
			rows.Close()
			return 0, fmt.Errorf("scan catalog price: %w", err)
		}
		prices[id] = price
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("load catalog prices: %w", err)
	}

	// re-price every line from the catalog; the client-sent prices are never
	// trusted, the declared total only acts as a consistency check
	total := 0.0
	for i := range lines {
		price, ok := prices[lines[i].ProductID]
		if !ok {
			return 0, ErrUnknownProduct
		}
		lines[i].UnitPrice = price
		total += price * float64(lines[i].Quantity)
	}
	if math.Abs(total-declaredTotal) > totalTolerance*float64(len(lines)) {
		return 0, ErrTotalMismatch
	}

	for _, ln := range lines {
		res, err := tx.ExecContext(ctx, decrementStockQuery, ln.Quantity, ln.ProductID)
		if err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		}
		if n, err := res.RowsAffected(); err != nil {
			return 0, fmt.Errorf("decrement stock: %w", err)
		} else if n == 0 {
			return 0, ErrInsufficientStock
		}
	}

	var orderID int
	err = tx.QueryRowContext(ctx, insertOrderQuery, customerName, total, StatusPending, time.Now().UTC()).Scan(&orderID)
	if err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	for _, ln := range lines {
		if _, err := tx.ExecContext(ctx, insertLineQuery, orderID, ln.ProductID, ln.Quantity, ln.UnitPrice); err != nil {
			return 0, fmt.Errorf("insert order item: %w", err)
		}
	}

	return orderID, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listOrdersQuery)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var ord Order
		var status string
		if err := rows.Scan(&ord.ID, &ord.CustomerName, &ord.Total, &status, &ord.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		ord.Status = Status(status)
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

func (r *PostgresRepository) ListLines(ctx context.Context, orderID int) ([]DetailLine, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	// a missing order must surface as ErrNotFound, not an empty result
	var status string
	if err := r.db.QueryRowContext(ctx, getStatusQuery, orderID).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load order: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, listLinesQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	lines := make([]DetailLine, 0)
	for rows.Next() {
		var ln DetailLine
		if err := rows.Scan(&ln.Name, &ln.Quantity, &ln.Price, &ln.Image); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		lines = append(lines, ln)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return lines, nil
}

func (r *PostgresRepository) GetStatus(ctx context.Context, orderID int) (Status, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	var status string
	if err := r.db.QueryRowContext(ctx, getStatusQuery, orderID).Scan(&status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("load order status: %w", err)
	}
	return Status(status), nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID int, status Status) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, updateStatusQuery, string(status), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
