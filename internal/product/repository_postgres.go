package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

const storeTimeout = 5 * time.Second

type PostgresRepository struct {
	db *sql.DB
}

const (
	listProductsQuery = `
		SELECT id, name, description, price, image_url, stock, status
		FROM products
		ORDER BY id`
	getProductByIDQuery = `
		SELECT id, name, description, price, image_url, stock, status
		FROM products
		WHERE id = $1`
	listProductsByIDsQuery = `
		SELECT id, name, description, price, image_url, stock, status
		FROM products
		WHERE id = ANY($1::int[])
		ORDER BY id`
	insertProductQuery = `
		INSERT INTO products (name, description, price, image_url, stock, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	updateProductQuery = `
		UPDATE products
		SET name = $1,
			description = $2,
			price = $3,
			image_url = $4,
			stock = $5,
			status = $6
		WHERE id = $7`
	deleteProductQuery = `DELETE FROM products WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var p Product
	var description, imageURL, status sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &description, &p.Price, &imageURL, &p.Stock, &status); err != nil {
		return Product{}, err
	}
	p.Description = description.String
	p.ImageURL = imageURL.String
	p.Status = status.String
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int) (Product, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, fmt.Errorf("load product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByIDs(ctx context.Context, ids []int) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listProductsByIDsQuery, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	defer rows.Close()

	out := make([]Product, 0, len(ids))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products by ids: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p Product) (Product, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, insertProductQuery,
		p.Name, p.Description, p.Price, p.ImageURL, p.Stock, p.Status).Scan(&p.ID)
	if err != nil {
		return Product{}, fmt.Errorf("insert product: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int, p Product) (Product, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, updateProductQuery,
		p.Name, p.Description, p.Price, p.ImageURL, p.Stock, p.Status, id)
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	if n == 0 {
		return Product{}, ErrNotFound
	}
	p.ID = id
	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deleteProductQuery, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
