package repository

import (
	"fmt"

	"fish-ledger/internal/model"

	"gorm.io/gorm"
)

type RoleRepository interface {
	FindAll() ([]model.Role, error)
	FindByCode(code string) (*model.Role, error)
	AssignPrivileges(role *model.Role, privileges []model.Privilege) error
	SeedDefaults() error
}

type roleRepo struct {
	db *gorm.DB
}

func NewRoleRepo(db *gorm.DB) RoleRepository {
	return &roleRepo{db: db}
}

func (r *roleRepo) FindAll() ([]model.Role, error) {
	var roles []model.Role
	if err := r.db.Preload("Privileges").Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *roleRepo) FindByCode(code string) (*model.Role, error) {
	var role model.Role
	err := r.db.Preload("Privileges").Where("code = ?", code).First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *roleRepo) AssignPrivileges(role *model.Role, privileges []model.Privilege) error {
	return r.db.Model(role).Association("Privileges").Replace(privileges)
}

// SeedDefaults inserts the OWNER and CLERK roles when missing. Privileges are granted by the caller.
func (r *roleRepo) SeedDefaults() error {
	for _, role := range model.DefaultRoles {
		role := role
		if err := r.db.Where(model.Role{Code: role.Code}).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("role %s: %w", role.Code, err)
		}
	}
	return nil
}
