package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/ttacon/libphonenumber"
	"gorm.io/gorm"
)

// MasterService manages items, categories, parties and settings. Running stock and balances are
// seeded from the opening values on create and are never written here afterwards.
type MasterService interface {
	CreateCategory(ctx context.Context, req *model.Category, userID string) error
	UpdateCategory(ctx context.Context, id uuid.UUID, req *model.Category, userID string) error
	ListCategories(ctx context.Context) ([]model.Category, error)

	CreateItem(ctx context.Context, req *model.Item, userID string) error
	UpdateItem(ctx context.Context, id uuid.UUID, req *model.Item, userID string) (*model.Item, error)
	DeactivateItem(ctx context.Context, id uuid.UUID) error
	GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error)
	ListItems(ctx context.Context, activeOnly bool) ([]model.Item, error)

	CreateCustomer(ctx context.Context, req *model.Customer, userID string) error
	UpdateCustomer(ctx context.Context, id uuid.UUID, req *model.Customer, userID string) (*model.Customer, error)
	DeactivateCustomer(ctx context.Context, id uuid.UUID) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	ListCustomers(ctx context.Context, activeOnly bool) ([]model.Customer, error)

	CreateSupplier(ctx context.Context, req *model.Supplier, userID string) error
	UpdateSupplier(ctx context.Context, id uuid.UUID, req *model.Supplier, userID string) (*model.Supplier, error)
	DeactivateSupplier(ctx context.Context, id uuid.UUID) error
	GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	ListSuppliers(ctx context.Context, activeOnly bool) ([]model.Supplier, error)

	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	ListSettings(ctx context.Context) (map[string]string, error)
}

type masterService struct {
	categoryRepo repository.CategoryRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
	supplierRepo repository.SupplierRepository
	settingRepo  repository.SettingRepository
	notifier     Notifier
	log          logrus.FieldLogger
}

func NewMasterService(
	categoryRepo repository.CategoryRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
	supplierRepo repository.SupplierRepository,
	settingRepo repository.SettingRepository,
	n Notifier,
	log logrus.FieldLogger,
) MasterService {
	return &masterService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
		settingRepo:  settingRepo,
		notifier:     n,
		log:          log,
	}
}

func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "is required")
	}
	return name, nil
}

// normalizeNIC treats a blank NIC as absent so the unique index only sees real numbers.
func normalizeNIC(nic *string) *string {
	if nic == nil {
		return nil
	}
	v := strings.TrimSpace(*nic)
	if v == "" {
		return nil
	}
	return &v
}

// SettingPhoneRegion names the setting holding the ISO region used to read local phone numbers.
const SettingPhoneRegion = "phone_region"

const defaultPhoneRegion = "LK"

// normalizePhone stores valid numbers in E.164. Blank stays blank.
func (s *masterService) normalizePhone(ctx context.Context, phone string) (string, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return "", nil
	}
	region := defaultPhoneRegion
	if setting, err := s.settingRepo.Get(ctx, SettingPhoneRegion); err == nil && strings.TrimSpace(setting.Value) != "" {
		region = strings.ToUpper(strings.TrimSpace(setting.Value))
	}
	p, err := libphonenumber.Parse(phone, region)
	if err != nil || !libphonenumber.IsValidNumber(p) {
		return "", invalid("phone", "%q is not a valid phone number", phone)
	}
	return libphonenumber.Format(p, libphonenumber.E164), nil
}

func (s *masterService) checkName(ctx context.Context, check func(context.Context, string, uuid.UUID) (bool, error), name string, exceptID uuid.UUID) error {
	dup, err := check(ctx, name, exceptID)
	if err != nil {
		return err
	}
	if dup {
		return invalid("name", "%q already exists", name)
	}
	return nil
}

func (s *masterService) checkNIC(ctx context.Context, check func(context.Context, string, uuid.UUID) (bool, error), nic *string, exceptID uuid.UUID) error {
	if nic == nil {
		return nil
	}
	dup, err := check(ctx, *nic, exceptID)
	if err != nil {
		return err
	}
	if dup {
		return invalid("nic", "%q is already registered", *nic)
	}
	return nil
}

func (s *masterService) CreateCategory(ctx context.Context, req *model.Category, userID string) error {
	name, err := normalizeName(req.Name)
	if err != nil {
		return err
	}
	if err := s.checkName(ctx, s.categoryRepo.NameTaken, name, uuid.Nil); err != nil {
		return err
	}
	req.Name = name
	req.IsActive = true
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.categoryRepo.Create(ctx, req)
}

func (s *masterService) UpdateCategory(ctx context.Context, id uuid.UUID, req *model.Category, userID string) error {
	name, err := normalizeName(req.Name)
	if err != nil {
		return err
	}
	if err := s.checkName(ctx, s.categoryRepo.NameTaken, name, id); err != nil {
		return err
	}
	req.ID = id
	req.Name = name
	req.UpdatedBy = userID
	return notFound(s.categoryRepo.Update(ctx, req), "category", id)
}

func (s *masterService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindAll(ctx)
}

func (s *masterService) CreateItem(ctx context.Context, req *model.Item, userID string) error {
	name, err := normalizeName(req.Name)
	if err != nil {
		return err
	}
	if err := s.checkName(ctx, s.itemRepo.NameTaken, name, uuid.Nil); err != nil {
		return err
	}
	req.Name = name
	req.CurrentStock = req.OpeningStock
	req.IsActive = true
	req.CreatedBy = userID
	req.UpdatedBy = userID
	if err := s.itemRepo.Create(ctx, req); err != nil {
		return err
	}
	publish(s.notifier, "item", "create", req.ID.String())
	return nil
}

func (s *masterService) UpdateItem(ctx context.Context, id uuid.UUID, req *model.Item, userID string) (*model.Item, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, s.itemRepo.NameTaken, name, id); err != nil {
		return nil, err
	}
	req.ID = id
	req.Name = name
	req.UpdatedBy = userID
	if err := s.itemRepo.Update(ctx, req); err != nil {
		return nil, notFound(err, "item", id)
	}
	publish(s.notifier, "item", "update", id.String())
	return s.GetItem(ctx, id)
}

func (s *masterService) DeactivateItem(ctx context.Context, id uuid.UUID) error {
	return notFound(s.itemRepo.Deactivate(ctx, id), "item", id)
}

func (s *masterService) GetItem(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "item", id)
	}
	return item, nil
}

func (s *masterService) ListItems(ctx context.Context, activeOnly bool) ([]model.Item, error) {
	return s.itemRepo.FindAll(ctx, activeOnly)
}

func (s *masterService) CreateCustomer(ctx context.Context, req *model.Customer, userID string) error {
	name, err := normalizeName(req.Name)
	if err != nil {
		return err
	}
	req.NIC = normalizeNIC(req.NIC)
	if req.Phone, err = s.normalizePhone(ctx, req.Phone); err != nil {
		return err
	}
	if err := s.checkName(ctx, s.customerRepo.NameTaken, name, uuid.Nil); err != nil {
		return err
	}
	if err := s.checkNIC(ctx, s.customerRepo.NICTaken, req.NIC, uuid.Nil); err != nil {
		return err
	}
	req.Name = name
	req.CurrentBalance = req.OpeningBalance
	req.IsActive = true
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.customerRepo.Create(ctx, req)
}

func (s *masterService) UpdateCustomer(ctx context.Context, id uuid.UUID, req *model.Customer, userID string) (*model.Customer, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	req.NIC = normalizeNIC(req.NIC)
	if req.Phone, err = s.normalizePhone(ctx, req.Phone); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, s.customerRepo.NameTaken, name, id); err != nil {
		return nil, err
	}
	if err := s.checkNIC(ctx, s.customerRepo.NICTaken, req.NIC, id); err != nil {
		return nil, err
	}
	req.ID = id
	req.Name = name
	req.UpdatedBy = userID
	if err := s.customerRepo.Update(ctx, req); err != nil {
		return nil, notFound(err, "customer", id)
	}
	return s.GetCustomer(ctx, id)
}

func (s *masterService) DeactivateCustomer(ctx context.Context, id uuid.UUID) error {
	return notFound(s.customerRepo.Deactivate(ctx, id), "customer", id)
}

func (s *masterService) GetCustomer(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "customer", id)
	}
	return customer, nil
}

func (s *masterService) ListCustomers(ctx context.Context, activeOnly bool) ([]model.Customer, error) {
	return s.customerRepo.FindAll(ctx, activeOnly)
}

func (s *masterService) CreateSupplier(ctx context.Context, req *model.Supplier, userID string) error {
	name, err := normalizeName(req.Name)
	if err != nil {
		return err
	}
	req.NIC = normalizeNIC(req.NIC)
	if req.Phone, err = s.normalizePhone(ctx, req.Phone); err != nil {
		return err
	}
	if err := s.checkName(ctx, s.supplierRepo.NameTaken, name, uuid.Nil); err != nil {
		return err
	}
	if err := s.checkNIC(ctx, s.supplierRepo.NICTaken, req.NIC, uuid.Nil); err != nil {
		return err
	}
	req.Name = name
	req.CurrentBalance = req.OpeningBalance
	req.IsActive = true
	req.CreatedBy = userID
	req.UpdatedBy = userID
	return s.supplierRepo.Create(ctx, req)
}

func (s *masterService) UpdateSupplier(ctx context.Context, id uuid.UUID, req *model.Supplier, userID string) (*model.Supplier, error) {
	name, err := normalizeName(req.Name)
	if err != nil {
		return nil, err
	}
	req.NIC = normalizeNIC(req.NIC)
	if req.Phone, err = s.normalizePhone(ctx, req.Phone); err != nil {
		return nil, err
	}
	if err := s.checkName(ctx, s.supplierRepo.NameTaken, name, id); err != nil {
		return nil, err
	}
	if err := s.checkNIC(ctx, s.supplierRepo.NICTaken, req.NIC, id); err != nil {
		return nil, err
	}
	req.ID = id
	req.Name = name
	req.UpdatedBy = userID
	if err := s.supplierRepo.Update(ctx, req); err != nil {
		return nil, notFound(err, "supplier", id)
	}
	return s.GetSupplier(ctx, id)
}

func (s *masterService) DeactivateSupplier(ctx context.Context, id uuid.UUID) error {
	return notFound(s.supplierRepo.Deactivate(ctx, id), "supplier", id)
}

func (s *masterService) GetSupplier(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "supplier", id)
	}
	return supplier, nil
}

func (s *masterService) ListSuppliers(ctx context.Context, activeOnly bool) ([]model.Supplier, error) {
	return s.supplierRepo.FindAll(ctx, activeOnly)
}

func (s *masterService) GetSetting(ctx context.Context, key string) (string, error) {
	setting, err := s.settingRepo.Get(ctx, key)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("setting %q %w", key, ErrNotFound)
	}
	if err != nil {
		return "", err
	}
	return setting.Value, nil
}

func (s *masterService) SetSetting(ctx context.Context, key, value string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return invalid("key", "is required")
	}
	if err := s.settingRepo.Set(ctx, key, value); err != nil {
		return err
	}
	s.log.WithField("key", key).Info("setting updated")
	return nil
}

func (s *masterService) ListSettings(ctx context.Context) (map[string]string, error) {
	settings, err := s.settingRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}
