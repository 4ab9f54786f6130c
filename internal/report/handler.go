package report

import "github.com/gofiber/fiber/v2"

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Get("/api/reports/sales", h.getSalesReport)
}

func (h *Handler) getSalesReport(c *fiber.Ctx) error {
	summary, err := h.repo.SalesSummary(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": err.Error()})
	}
	return c.JSON(summary)
}
