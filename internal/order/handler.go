package order

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Handler maps the /api/orders endpoints onto the order service.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes checkout; the storefront posts orders without
// an account.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/orders", h.createOrder)
}

// RegisterProtectedRoutes exposes the back-office order views behind JWT.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/orders", h.getOrders)
	app.Get("/api/orders/:id<[0-9]+>", h.getOrderDetail)
	app.Put("/api/orders/:id<[0-9]+>/status", h.updateStatus)
}

type cartItem struct {
	ID       int     `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type createOrderRequest struct {
	Customer string     `json:"customer"`
	Cart     []cartItem `json:"cart"`
	Total    float64    `json:"total"`
}

// orderSummary is the admin list shape: id carries the display form ("#12"),
// realId the numeric key.
type orderSummary struct {
	ID           string  `json:"id"`
	RealID       int     `json:"realId"`
	CustomerName string  `json:"customerName"`
	Date         string  `json:"date"`
	TotalAmount  float64 `json:"totalAmount"`
	Status       string  `json:"status"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	lines := make([]Line, 0, len(payload.Cart))
	for _, item := range payload.Cart {
		lines = append(lines, Line{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	orderID, err := h.service.Create(c.UserContext(), payload.Customer, lines, payload.Total)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"orderId": orderID})
}

func (h *Handler) getOrders(c *fiber.Ctx) error {
	orders, err := h.service.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}

	summaries := make([]orderSummary, 0, len(orders))
	for _, ord := range orders {
		summaries = append(summaries, orderSummary{
			ID:           fmt.Sprintf("#%d", ord.ID),
			RealID:       ord.ID,
			CustomerName: ord.CustomerName,
			Date:         ord.CreatedAt.UTC().Format(time.RFC3339),
			TotalAmount:  ord.Total,
			Status:       string(ord.Status),
		})
	}
	return c.JSON(summaries)
}

func (h *Handler) getOrderDetail(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	lines, err := h.service.Detail(c.UserContext(), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(lines)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *fiber.Ctx) error {
	orderID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid order id"})
	}

	payload := new(updateStatusRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if err := h.service.UpdateStatus(c.UserContext(), orderID, Status(payload.Status)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "status updated"})
}

// respondError maps the order error taxonomy onto HTTP statuses: caller
// errors to 400, missing orders to 404, stock shortage to 409 and everything
// else (store failures included) to 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInvalidLine),
		errors.Is(err, ErrUnknownProduct),
		errors.Is(err, ErrTotalMismatch),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
}
