package product

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("product not found")

// Repository defines persistence operations for the catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int) (Product, error)
	// ListByIDs returns the products whose id is present in ids; missing ids
	// are simply absent from the result. An empty ids slice returns an empty
	// slice without querying.
	ListByIDs(ctx context.Context, ids []int) ([]Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id int, p Product) (Product, error)
	Delete(ctx context.Context, id int) error
}
