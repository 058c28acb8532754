package service

import (
	"testing"

	"fish-ledger/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateItemSeedsStockFromOpening(t *testing.T) {
	env := newTestEnv(t)
	it := env.item(t, "Tuna", "42.5")

	got, err := env.master.GetItem(env.ctx, it.ID)
	require.NoError(t, err)
	requireDec(t, "42.5", got.CurrentStock)
	assert.True(t, got.IsActive)
}

func TestUpdateItemNeverTouchesStock(t *testing.T) {
	env := newTestEnv(t)
	it := env.item(t, "Tuna", "10")

	updated, err := env.master.UpdateItem(env.ctx, it.ID, &model.Item{
		Name:         "Yellowfin Tuna",
		UnitPrice:    d("320"),
		CurrentStock: d("9999"),
		IsActive:     true,
	}, "test")
	require.NoError(t, err)
	assert.Equal(t, "Yellowfin Tuna", updated.Name)
	requireDec(t, "320", updated.UnitPrice)
	requireDec(t, "10", updated.CurrentStock)

	_, err = env.master.UpdateItem(env.ctx, uuid.New(), &model.Item{Name: "Ghost"}, "test")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateNamesAndNICsAreRejected(t *testing.T) {
	env := newTestEnv(t)
	env.item(t, "Tuna", "0")

	err := env.master.CreateItem(env.ctx, &model.Item{Name: "  Tuna "}, "test")
	require.ErrorIs(t, err, ErrValidation)

	nic := "901234567V"
	require.NoError(t, env.master.CreateCustomer(env.ctx, &model.Customer{Name: "Ravi", NIC: &nic}, "test"))

	dupNIC := "901234567V"
	err = env.master.CreateCustomer(env.ctx, &model.Customer{Name: "Other", NIC: &dupNIC}, "test")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "nic", verr.Field)

	blank := " "
	require.NoError(t, env.master.CreateCustomer(env.ctx, &model.Customer{Name: "No NIC 1", NIC: &blank}, "test"))
	require.NoError(t, env.master.CreateCustomer(env.ctx, &model.Customer{Name: "No NIC 2"}, "test"))

	err = env.master.CreateSupplier(env.ctx, &model.Supplier{Name: ""}, "test")
	require.ErrorIs(t, err, ErrValidation)
}

func TestCustomerOpeningBalanceAndDeactivate(t *testing.T) {
	env := newTestEnv(t)
	c := &model.Customer{Name: "Shop", OpeningBalance: d("1500")}
	require.NoError(t, env.master.CreateCustomer(env.ctx, c, "test"))
	requireDec(t, "1500", env.customerBalance(t, c.ID))

	require.NoError(t, env.master.DeactivateCustomer(env.ctx, c.ID))
	active, err := env.master.ListCustomers(env.ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)
	all, err := env.master.ListCustomers(env.ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.ErrorIs(t, env.master.DeactivateCustomer(env.ctx, uuid.New()), ErrNotFound)
}

func TestSupplierUpdateKeepsBalance(t *testing.T) {
	env := newTestEnv(t)
	s := &model.Supplier{Name: "Boat 7", OpeningBalance: d("200")}
	require.NoError(t, env.master.CreateSupplier(env.ctx, s, "test"))

	updated, err := env.master.UpdateSupplier(env.ctx, s.ID, &model.Supplier{
		Name:                 "Boat 7",
		DefaultCommissionPct: d("12.5"),
		CurrentBalance:       d("0"),
		IsActive:             true,
	}, "test")
	require.NoError(t, err)
	requireDec(t, "12.5", updated.DefaultCommissionPct)
	requireDec(t, "200", updated.CurrentBalance)
}

func TestCategories(t *testing.T) {
	env := newTestEnv(t)
	c := &model.Category{Name: "Reef"}
	require.NoError(t, env.master.CreateCategory(env.ctx, c, "test"))
	require.ErrorIs(t, env.master.CreateCategory(env.ctx, &model.Category{Name: "Reef"}, "test"), ErrValidation)

	require.NoError(t, env.master.UpdateCategory(env.ctx, c.ID, &model.Category{Name: "Reef fish", IsActive: true}, "test"))
	list, err := env.master.ListCategories(env.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Reef fish", list[0].Name)
}

func TestSettings(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.master.GetSetting(env.ctx, "company_name")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, env.master.SetSetting(env.ctx, "company_name", "Harbour Traders"))
	require.NoError(t, env.master.SetSetting(env.ctx, "company_name", "Harbour Fish Traders"))

	v, err := env.master.GetSetting(env.ctx, "company_name")
	require.NoError(t, err)
	assert.Equal(t, "Harbour Fish Traders", v)

	all, err := env.master.ListSettings(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"company_name": "Harbour Fish Traders"}, all)

	require.ErrorIs(t, env.master.SetSetting(env.ctx, " ", "x"), ErrValidation)
}

func TestPartyPhoneNormalised(t *testing.T) {
	env := newTestEnv(t)

	c := &model.Customer{Name: "Shop", Phone: "077 123 4567"}
	require.NoError(t, env.master.CreateCustomer(env.ctx, c, "test"))
	assert.Equal(t, "+94771234567", c.Phone)

	err := env.master.CreateCustomer(env.ctx, &model.Customer{Name: "Other", Phone: "12345"}, "test")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "phone", verr.Field)

	require.NoError(t, env.master.SetSetting(env.ctx, SettingPhoneRegion, "us"))
	s := &model.Supplier{Name: "Boat 9", Phone: "(650) 253-0000"}
	require.NoError(t, env.master.CreateSupplier(env.ctx, s, "test"))
	assert.Equal(t, "+16502530000", s.Phone)

	updated, err := env.master.UpdateSupplier(env.ctx, s.ID, &model.Supplier{Name: "Boat 9", Phone: "", IsActive: true}, "test")
	require.NoError(t, err)
	assert.Empty(t, updated.Phone)
}
