package order

import "context"

// defaultCustomer labels checkouts that arrive without a customer name.
const defaultCustomer = "Invitado"

// Service provides business logic for orders.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the cart and delegates the atomic write to the repository.
// The repository re-prices each line from the catalog; the declared total is
// only used as a consistency check against the client's view of the cart.
func (s *Service) Create(ctx context.Context, customerName string, lines []Line, declaredTotal float64) (int, error) {
	if customerName == "" {
		customerName = defaultCustomer
	}
	if len(lines) == 0 {
		return 0, ErrEmptyCart
	}
	for _, ln := range lines {
		if ln.ProductID <= 0 || ln.Quantity <= 0 {
			return 0, ErrInvalidLine
		}
	}
	return s.repo.Create(ctx, customerName, lines, declaredTotal)
}

func (s *Service) List(ctx context.Context) ([]Order, error) {
	return s.repo.List(ctx)
}

func (s *Service) Detail(ctx context.Context, orderID int) ([]DetailLine, error) {
	return s.repo.ListLines(ctx, orderID)
}

// UpdateStatus moves an order to a new status. Unknown values are rejected
// before touching the store; transitions out of Completado or Cancelado are
// rejected after reading the current status.
func (s *Service) UpdateStatus(ctx context.Context, orderID int, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	current, err := s.repo.GetStatus(ctx, orderID)
	if err != nil {
		return err
	}
	if current == status {
		return nil
	}
	if !current.CanTransitionTo(status) {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatus(ctx, orderID, status)
}
