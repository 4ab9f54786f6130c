package inventory

import (
	"context"
	"errors"
)

var ErrNegativeStock = errors.New("stock cannot be negative")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

func (s *Service) SetStock(ctx context.Context, productID, quantity int) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	return s.repo.SetStock(ctx, productID, quantity)
}
