package handler

import (
	"fish-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SupplierBillHandler struct {
	service service.SupplierBillService
}

func NewSupplierBillHandler(s service.SupplierBillService) *SupplierBillHandler {
	return &SupplierBillHandler{service: s}
}

type BillRequest struct {
	SupplierID uuid.UUID `json:"supplier_id" validate:"uuid_required"`
	BillDate   string    `json:"bill_date" validate:"required,isodate"`
	DateFrom   string    `json:"date_from" validate:"required,isodate"`
	DateTo     string    `json:"date_to" validate:"required,isodate"`
	// CommissionPct defaults to the supplier's percentage when omitted.
	CommissionPct    *decimal.Decimal `json:"commission_pct" validate:"omitempty,gte=0,lte=100"`
	CoolieCharges    decimal.Decimal  `json:"coolie_charges" validate:"gte=0"`
	TransportCharges decimal.Decimal  `json:"transport_charges" validate:"gte=0"`
	IceCharges       decimal.Decimal  `json:"ice_charges" validate:"gte=0"`
	OtherCharges     decimal.Decimal  `json:"other_charges" validate:"gte=0"`
	AdvanceDeducted  decimal.Decimal  `json:"advance_deducted" validate:"gte=0"`
	CashPaid         decimal.Decimal  `json:"cash_paid" validate:"gte=0"`
	Notes            string           `json:"notes"`
}

func (r BillRequest) toInput(userID string) service.BillInput {
	return service.BillInput{
		SupplierID:       r.SupplierID,
		BillDate:         mustDate(r.BillDate),
		DateFrom:         mustDate(r.DateFrom),
		DateTo:           mustDate(r.DateTo),
		CommissionPct:    r.CommissionPct,
		CoolieCharges:    r.CoolieCharges,
		TransportCharges: r.TransportCharges,
		IceCharges:       r.IceCharges,
		OtherCharges:     r.OtherCharges,
		AdvanceDeducted:  r.AdvanceDeducted,
		CashPaid:         r.CashPaid,
		Notes:            r.Notes,
		CreatedBy:        userID,
	}
}

// Preview lists the unbilled consignment lines of a supplier
// GET /api/v1/supplier-bills/preview?supplier_id=&from=&to=
func (h *SupplierBillHandler) Preview(c *fiber.Ctx) error {
	supplierID, err := uuid.Parse(c.Query("supplier_id"))
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "supplier_id is required")
	}
	from, err := queryDate(c, "from")
	if err != nil || from == nil {
		return fail(c, fiber.StatusBadRequest, "from must be YYYY-MM-DD")
	}
	to, err := queryDate(c, "to")
	if err != nil || to == nil {
		return fail(c, fiber.StatusBadRequest, "to must be YYYY-MM-DD")
	}

	preview, err := h.service.GeneratePreview(c.UserContext(), supplierID, *from, *to)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, preview)
}

// Create posts a bill and marks its lines billed
// POST /api/v1/supplier-bills
func (h *SupplierBillHandler) Create(c *fiber.Ctx) error {
	var req BillRequest
	if err := bind(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	res, err := h.service.Create(c.UserContext(), req.toInput(getUserID(c)))
	if err != nil {
		return handleError(c, err)
	}
	return created(c, fiber.Map{"id": res.ID, "billNumber": res.Number})
}

// Update only touches draft bills; "applied" is false otherwise.
// PUT /api/v1/supplier-bills/:id
func (h *SupplierBillHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid bill ID")
	}
	var req BillRequest
	if err := bind(c, &req); err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}

	applied, err := h.service.Update(c.UserContext(), id, req.toInput(getUserID(c)))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id, "applied": applied})
}

// Delete
// DELETE /api/v1/supplier-bills/:id
func (h *SupplierBillHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid bill ID")
	}
	applied, err := h.service.Delete(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id, "applied": applied})
}

func (h *SupplierBillHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid bill ID")
	}
	bill, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, bill)
}

func (h *SupplierBillHandler) List(c *fiber.Ctx) error {
	supplierID, err := queryUUID(c, "supplier_id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, err.Error())
	}
	bills, err := h.service.List(c.UserContext(), supplierID, c.QueryBool("include_deleted"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, bills)
}
