package reservation

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tiendamoda/clothing-store-backend/internal/product"
)

// ProductCatalog is the slice of the product service the reservation listing
// needs to show product names next to reservations.
type ProductCatalog interface {
	ListByIDs(ctx context.Context, ids []int) ([]product.Product, error)
}

type Handler struct {
	service *Service
	catalog ProductCatalog
}

func NewHandler(service *Service, catalog ProductCatalog) *Handler {
	return &Handler{service: service, catalog: catalog}
}

// RegisterPublicRoutes lets storefront customers place reservations.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/reservations", h.createReservation)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/reservations", h.getReservations)
	app.Put("/api/reservations/:id<[0-9]+>/status", h.updateStatus)
}

type createReservationRequest struct {
	Customer    string `json:"customer"`
	ProductID   int    `json:"productId"`
	ReservedFor string `json:"reservedFor"`
}

func (h *Handler) createReservation(c *fiber.Ctx) error {
	payload := new(createReservationRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	created, err := h.service.Create(c.UserContext(), payload.Customer, payload.ProductID, payload.ReservedFor)
	if err != nil {
		if errors.Is(err, ErrInvalidReservation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// reservationView is a reservation with the product name joined in for the
// back-office table.
type reservationView struct {
	Reservation
	ProductName string `json:"productName,omitempty"`
}

func (h *Handler) getReservations(c *fiber.Ctx) error {
	reservations, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}

	views := make([]reservationView, 0, len(reservations))
	for _, res := range reservations {
		views = append(views, reservationView{Reservation: res})
	}

	if h.catalog != nil && len(reservations) > 0 {
		idSet := map[int]struct{}{}
		for _, res := range reservations {
			idSet[res.ProductID] = struct{}{}
		}
		ids := make([]int, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}

		// name lookup failing only degrades the listing, it never blocks it
		if products, err := h.catalog.ListByIDs(c.UserContext(), ids); err == nil {
			names := make(map[int]string, len(products))
			for _, p := range products {
				names[p.ID] = p.Name
			}
			for i := range views {
				views[i].ProductName = names[views[i].ProductID]
			}
		}
	}

	return c.JSON(views)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid reservation id"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateStatus(c.UserContext(), id, Status(payload.Status)); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "reservation not found"})
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
		}
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}
