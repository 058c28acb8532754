package handler

import (
	"fish-ledger/internal/repository"
	"fish-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SaleHandler struct {
	service service.SaleService
}

func NewSaleHandler(s service.SaleService) *SaleHandler {
	return &SaleHandler{service: s}
}

type SaleLineRequest struct {
	ItemID        uuid.UUID       `json:"item_id" validate:"uuid_required"`
	CustomerID    *uuid.UUID      `json:"customer_id"`
	Weight        decimal.Decimal `json:"weight" validate:"gt=0"`
	Rate          decimal.Decimal `json:"rate" validate:"gte=0"`
	FareCharges   decimal.Decimal `json:"fare_charges" validate:"gte=0"`
	IceCharges    decimal.Decimal `json:"ice_charges" validate:"gte=0"`
	CashAmount    decimal.Decimal `json:"cash_amount" validate:"gte=0"`
	ReceiptAmount decimal.Decimal `json:"receipt_amount" validate:"gte=0"`
	IsStock       bool            `json:"is_stock"`
	Notes         string          `json:"notes"`
}

type SaleRequest struct {
	CustomerID    uuid.UUID         `json:"customer_id" validate:"uuid_required"`
	SupplierID    *uuid.UUID        `json:"supplier_id"`
	VehicleNumber string            `json:"vehicle_number" validate:"max=30"`
	SaleDate      string            `json:"sale_date" validate:"required,isodate"`
	Details       string            `json:"details"`
	Items         []SaleLineRequest `json:"items" validate:"min=1,dive"`
}

func (r SaleRequest) toInput(userID string) service.SaleInput {
	in := service.SaleInput{
		CustomerID:    r.CustomerID,
		SupplierID:    r.SupplierID,
		VehicleNumber: r.VehicleNumber,
		SaleDate:      mustDate(r.SaleDate),
		Details:       r.Details,
		CreatedBy:     userID,
		Items:         make([]service.SaleLineInput, len(r.Items)),
	}
	for i, l := range r.Items {
		in.Items[i] = service.SaleLineInput{
			ItemID:        l.ItemID,
			CustomerID:    l.CustomerID,
			Weight:        l.Weight,
			Rate:          l.Rate,
			FareCharges:   l.FareCharges,
			IceCharges:    l.IceCharges,
			CashAmount:    l.CashAmount,
			ReceiptAmount: l.ReceiptAmount,
			IsStock:       l.IsStock,
			Notes:         l.Notes,
		}
	}
	return in
}

// Create posts a new sale
// POST /api/v1/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var req SaleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.UserContext(), req.toInput(getUserID(c)))
	if err != nil {
		return handleError(c, err)
	}
	return created(c, fiber.Map{"id": res.ID, "saleNumber": res.Number})
}

// Update replaces a sale's header and lines
// PUT /api/v1/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}
	var req SaleRequest
	if err := bind(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Update(c.UserContext(), id, req.toInput(getUserID(c))); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

// Delete reverses and soft-deletes a sale
// DELETE /api/v1/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

func (h *SaleHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid sale ID")
	}
	sale, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, sale)
}

// List supports ?from=&to=&customer_id=&supplier_id=&include_deleted=true
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var filter repository.SaleFilter
	var err error
	if filter.From, err = queryDate(c, "from"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.CustomerID, err = queryUUID(c, "customer_id"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	if filter.SupplierID, err = queryUUID(c, "supplier_id"); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	filter.IncludeDeleted = c.QueryBool("include_deleted")

	sales, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, sales)
}
