package handler

import (
	"fish-ledger/internal/model"
	"fish-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler serves items, categories, customers, suppliers and settings.
type MasterHandler struct {
	service service.MasterService
}

func NewMasterHandler(s service.MasterService) *MasterHandler {
	return &MasterHandler{service: s}
}

// ---- categories ----

func (h *MasterHandler) CreateCategory(c *fiber.Ctx) error {
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if err := h.service.CreateCategory(c.UserContext(), &category, getUserID(c)); err != nil {
		return handleError(c, err)
	}
	return created(c, category)
}

func (h *MasterHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category ID")
	}
	var category model.Category
	if err := c.BodyParser(&category); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if err := h.service.UpdateCategory(c.UserContext(), id, &category, getUserID(c)); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

func (h *MasterHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, categories)
}

// ---- items ----

func (h *MasterHandler) CreateItem(c *fiber.Ctx) error {
	var item model.Item
	if err := c.BodyParser(&item); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if err := h.service.CreateItem(c.UserContext(), &item, getUserID(c)); err != nil {
		return handleError(c, err)
	}
	return created(c, item)
}

// UpdateItem changes descriptive fields only; stock is owned by the ledger.
func (h *MasterHandler) UpdateItem(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid item ID")
	}
	var item model.Item
	if err := c.BodyParser(&item); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	updated, err := h.service.UpdateItem(c.UserContext(), id, &item, getUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, updated)
}

func (h *MasterHandler) DeactivateItem(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid item ID")
	}
	if err := h.service.DeactivateItem(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

func (h *MasterHandler) GetItem(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid item ID")
	}
	item, err := h.service.GetItem(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, item)
}

func (h *MasterHandler) ListItems(c *fiber.Ctx) error {
	items, err := h.service.ListItems(c.UserContext(), c.QueryBool("active_only"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, items)
}

// ---- customers ----

func (h *MasterHandler) CreateCustomer(c *fiber.Ctx) error {
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if err := h.service.CreateCustomer(c.UserContext(), &customer, getUserID(c)); err != nil {
		return handleError(c, err)
	}
	return created(c, customer)
}

func (h *MasterHandler) UpdateCustomer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid customer ID")
	}
	var customer model.Customer
	if err := c.BodyParser(&customer); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	updated, err := h.service.UpdateCustomer(c.UserContext(), id, &customer, getUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, updated)
}

func (h *MasterHandler) DeactivateCustomer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid customer ID")
	}
	if err := h.service.DeactivateCustomer(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

func (h *MasterHandler) GetCustomer(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid customer ID")
	}
	customer, err := h.service.GetCustomer(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, customer)
}

func (h *MasterHandler) ListCustomers(c *fiber.Ctx) error {
	customers, err := h.service.ListCustomers(c.UserContext(), c.QueryBool("active_only"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, customers)
}

// ---- suppliers ----

func (h *MasterHandler) CreateSupplier(c *fiber.Ctx) error {
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if err := h.service.CreateSupplier(c.UserContext(), &supplier, getUserID(c)); err != nil {
		return handleError(c, err)
	}
	return created(c, supplier)
}

func (h *MasterHandler) UpdateSupplier(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid supplier ID")
	}
	var supplier model.Supplier
	if err := c.BodyParser(&supplier); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	updated, err := h.service.UpdateSupplier(c.UserContext(), id, &supplier, getUserID(c))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, updated)
}

func (h *MasterHandler) DeactivateSupplier(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid supplier ID")
	}
	if err := h.service.DeactivateSupplier(c.UserContext(), id); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"id": id})
}

func (h *MasterHandler) GetSupplier(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid supplier ID")
	}
	supplier, err := h.service.GetSupplier(c.UserContext(), id)
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, supplier)
}

func (h *MasterHandler) ListSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers(c.UserContext(), c.QueryBool("active_only"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, suppliers)
}

// ---- settings ----

type SettingRequest struct {
	Value string `json:"value"`
}

func (h *MasterHandler) GetSetting(c *fiber.Ctx) error {
	value, err := h.service.GetSetting(c.UserContext(), c.Params("key"))
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"key": c.Params("key"), "value": value})
}

func (h *MasterHandler) SetSetting(c *fiber.Ctx) error {
	var req SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid JSON")
	}
	if err := h.service.SetSetting(c.UserContext(), c.Params("key"), req.Value); err != nil {
		return handleError(c, err)
	}
	return ok(c, fiber.Map{"key": c.Params("key"), "value": req.Value})
}

func (h *MasterHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.service.ListSettings(c.UserContext())
	if err != nil {
		return handleError(c, err)
	}
	return ok(c, settings)
}
