package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const storeTimeout = 5 * time.Second

// cancelledStatus mirrors the order package's terminal Cancelado label; it is
// duplicated here so the report package has no dependency on order internals.
const cancelledStatus = "Cancelado"

type Repository interface {
	SalesSummary(ctx context.Context) (SalesSummary, error)
}

type PostgresRepository struct {
	db *sql.DB
}

const salesByStatusQuery = `
	SELECT status, COUNT(*), COALESCE(SUM(total), 0)
	FROM orders
	GROUP BY status`

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) SalesSummary(ctx context.Context) (SalesSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, salesByStatusQuery)
	if err != nil {
		return SalesSummary{}, fmt.Errorf("sales summary: %w", err)
	}
	defer rows.Close()

	summary := SalesSummary{ByStatus: map[string]int{}}
	for rows.Next() {
		var status string
		var count int
		var total float64
		if err := rows.Scan(&status, &count, &total); err != nil {
			return SalesSummary{}, fmt.Errorf("scan sales row: %w", err)
		}
		summary.ByStatus[status] = count
		summary.TotalOrders += count
		if status != cancelledStatus {
			summary.TotalRevenue += total
		}
	}
	if err := rows.Err(); err != nil {
		return SalesSummary{}, fmt.Errorf("sales summary: %w", err)
	}
	return summary, nil
}
