package reservation

import "time"

// Reservation holds a product put aside for in-store pickup. Code is the
// short reference customers quote at the counter.
type Reservation struct {
	ID           int       `json:"id"`
	Code         string    `json:"code"`
	CustomerName string    `json:"customerName"`
	ProductID    int       `json:"productId"`
	ReservedFor  string    `json:"reservedFor"`
	Status       Status    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Status uses the storefront's Spanish labels, like order statuses.
type Status string

const (
	StatusPending   Status = "Pendiente"
	StatusConfirmed Status = "Confirmada"
	StatusCompleted Status = "Completada"
	StatusCancelled Status = "Cancelada"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo encodes the counter workflow: a pending reservation is
// confirmed or cancelled, a confirmed one is completed or cancelled, and the
// two final states never change.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	}
	return false
}
