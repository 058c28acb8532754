package handler

import (
	"fish-ledger/internal/model"
	"fish-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type PaymentRequest struct {
	PartyType   string          `json:"party_type" validate:"required,oneof=customer supplier"`
	PartyID     uuid.UUID       `json:"party_id" validate:"uuid_required"`
	PaymentDate string          `json:"payment_date" validate:"required,isodate"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Method      string          `json:"method" validate:"max=20"`
	Reference   string          `json:"reference" validate:"max=60"`
	Notes       string          `json:"notes"`
}

// Create records money received from a customer or paid to a supplier
// POST /api/v1/payments
func (h *PaymentHandler) Create(c *fiber.Ctx) error {
	var req PaymentRequest
	if err := bind(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	payment, err := h.service.Create(c.UserContext(), service.PaymentInput{
		PartyType:   model.PartyType(req.PartyType),
		PartyID:     req.PartyID,
		PaymentDate: mustDate(req.PaymentDate),
		Amount:      req.Amount,
		Method:      req.Method,
		Reference:   req.Reference,
		Notes:       req.Notes,
		CreatedBy:   getUserID(c),
	})
	if err != nil {
		return handleError(c, err)
	}
	return created(c, payment)
}

// Delete
// DELETE /api/v1/payments/:id
func (h *PaymentHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid payment ID")
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

// List
// GET /api/v1/payments?party_type=customer&party_id=
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	partyID, err := uuid.Parse(c.Query("party_id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "party_id is required")
	}
	payments, err := h.service.List(c.UserContext(), model.PartyType(c.Query("party_type")), partyID)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, payments)
}
