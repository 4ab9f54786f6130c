package reservation

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidReservation = errors.New("reservation needs a customer name and a product")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new pending reservation with a generated pickup code.
func (s *Service) Create(ctx context.Context, customerName string, productID int, reservedFor string) (Reservation, error) {
	if customerName == "" || productID <= 0 {
		return Reservation{}, ErrInvalidReservation
	}

	return s.repo.Create(ctx, Reservation{
		Code:         newCode(),
		CustomerName: customerName,
		ProductID:    productID,
		ReservedFor:  reservedFor,
		Status:       StatusPending,
		CreatedAt:    time.Now().UTC(),
	})
}

func (s *Service) List(ctx context.Context) ([]Reservation, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateStatus(ctx context.Context, id int, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetStatus(ctx, id)
	if err != nil {
		return err
	}
	if current == status {
		return nil
	}
	if !current.CanTransitionTo(status) {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, id, status)
}

// newCode derives a short uppercase pickup reference from a v4 UUID.
func newCode() string {
	id := uuid.NewString()
	return "R-" + strings.ToUpper(id[:8])
}
