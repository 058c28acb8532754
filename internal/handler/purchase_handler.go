package handler

import (
	"fish-ledger/internal/repository"
	"fish-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PurchaseHandler struct {
	service service.PurchaseService
}

func NewPurchaseHandler(s service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: s}
}

type PurchaseLineRequest struct {
	ItemID uuid.UUID       `json:"item_id" validate:"uuid_required"`
	Weight decimal.Decimal `json:"weight" validate:"gt=0"`
	Rate   decimal.Decimal `json:"rate" validate:"gte=0"`
	// Amount, when set, replaces weight × rate.
	Amount decimal.Decimal `json:"amount" validate:"gte=0"`
	Notes  string          `json:"notes"`
}

type PurchaseRequest struct {
	SupplierID    uuid.UUID             `json:"supplier_id" validate:"uuid_required"`
	VehicleNumber string                `json:"vehicle_number" validate:"max=30"`
	PurchaseDate  string                `json:"purchase_date" validate:"required,isodate"`
	Notes         string                `json:"notes"`
	Concession    decimal.Decimal       `json:"concession" validate:"gte=0"`
	CashPaid      decimal.Decimal       `json:"cash_paid" validate:"gte=0"`
	Items         []PurchaseLineRequest `json:"items" validate:"min=1,dive"`
}

func (r PurchaseRequest) toInput(userID string) service.PurchaseInput {
	in := service.PurchaseInput{
		SupplierID:    r.SupplierID,
		VehicleNumber: r.VehicleNumber,
		PurchaseDate:  mustDate(r.PurchaseDate),
		Notes:         r.Notes,
		Concession:    r.Concession,
		CashPaid:      r.CashPaid,
		CreatedBy:     userID,
		Items:         make([]service.PurchaseLineInput, len(r.Items)),
	}
	for i, l := range r.Items {
		in.Items[i] = service.PurchaseLineInput{ItemID: l.ItemID, Weight: l.Weight, Rate: l.Rate, Amount: l.Amount, Notes: l.Notes}
	}
	return in
}

// Create posts a new purchase
// POST /api/v1/purchases
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req PurchaseRequest
	if err := bind(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.UserContext(), req.toInput(getUserID(c)))
	if err != nil {
		return handleError(c, err)
	}
	return created(c, fiber.Map{"id": res.ID, "purchaseNumber": res.Number})
}

// Update
// PUT /api/v1/purchases/:id
func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid purchase ID")
	}
	var req PurchaseRequest
	if err := bind(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.UserContext(), id, req.toInput(getUserID(c))); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

// Delete
// DELETE /api/v1/purchases/:id
func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid purchase ID")
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid purchase ID")
	}
	purchase, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, purchase)
}

func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	var filter repository.PurchaseFilter
	var err error
	if filter.From, err = queryDate(c, "from"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.SupplierID, err = queryUUID(c, "supplier_id"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	filter.IncludeDeleted = c.QueryBool("include_deleted")

	purchases, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, purchases)
}
