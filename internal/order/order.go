package order

import "time"

// Order is the header row for one checkout. The total is computed server-side
// from catalog prices at creation time and never changes afterwards; status is
// the only mutable field.
type Order struct {
	ID           int       `json:"id"`
	CustomerName string    `json:"customerName"`
	Total        float64   `json:"total"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Line is one product entry within an order. UnitPrice is a point-in-time copy
// of the catalog price taken inside the checkout transaction; later catalog
// price changes do not touch it.
type Line struct {
	OrderID   int     `json:"orderId"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// DetailLine is a line item enriched with the product's current display name
// and image. Name and image come from a read-time join; price and quantity are
// the frozen values stored at checkout.
type DetailLine struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image"`
}

// Status is the order lifecycle state. Values are stored and serialized with
// the storefront's Spanish labels.
type Status string

const (
	StatusPending    Status = "Pendiente"
	StatusProcessing Status = "Procesando"
	StatusShipped    Status = "Enviado"
	StatusCompleted  Status = "Completado"
	StatusCancelled  Status = "Cancelado"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether an order currently in s may move to next.
// Any non-terminal state may move to any other state; Completado and Cancelado
// are final.
func (s Status) CanTransitionTo(next Status) bool {
	if !next.Valid() {
		return false
	}
	if s.Terminal() {
		return false
	}
	return next != s
}
