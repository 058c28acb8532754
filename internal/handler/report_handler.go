package handler

import (
	"fmt"

	"fish-ledger/internal/model"
	"fish-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// GetDashboardStats
// GET /api/v1/dashboard/stats
func (h *ReportHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, stats)
}

// GetStockMovement returns sold and purchased weight per day
// GET /api/v1/dashboard/stock-movement?days=7
func (h *ReportHandler) GetStockMovement(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days < 1 || days > service.MaxMovementDays {
		return fail(c, fiber.StatusBadRequest, fmt.Sprintf("days must be between 1 and %d", service.MaxMovementDays))
	}
	data, err := h.service.GetStockMovement(c.UserContext(), days)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, data)
}

// GetStatement
// GET /api/v1/reports/statement/:party/:id?from=&to=
func (h *ReportHandler) GetStatement(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid party ID")
	}
	from, err := queryDate(c, "from")
	if err != nil || from == nil {
		return fail(c, fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := queryDate(c, "to")
	if err != nil || to == nil {
		return fail(c, fiber.StatusBadRequest, "to must be YYYY-MM-DD")
	}

	st, err := h.service.GetPartyStatement(c.UserContext(), model.PartyType(c.Params("party")), id, *from, *to)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, st)
}
