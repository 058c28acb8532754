package service

import (
	"errors"
	"fmt"

	"fish-ledger/internal/model"
	"fish-ledger/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// SeedAccess creates the default privileges and roles, grants them, and creates the owner
// account when no user with adminEmail exists. Safe to run on every start.
func SeedAccess(privilegeRepo repository.PrivilegeRepository, roleRepo repository.RoleRepository, userRepo repository.UserRepository, adminEmail, adminPassword string, log logrus.FieldLogger) error {
	if err := privilegeRepo.SeedDefaults(); err != nil {
		return fmt.Errorf("seed privileges: %w", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}

	allPrivileges, err := privilegeRepo.FindAll()
	if err != nil {
		return err
	}

	ownerRole, err := roleRepo.FindByCode(model.RoleOwner)
	if err != nil {
		return err
	}
	if len(ownerRole.Privileges) == 0 {
		if err := roleRepo.AssignPrivileges(ownerRole, allPrivileges); err != nil {
			return err
		}
		ownerRole.Privileges = allPrivileges
		log.Info("OWNER role assigned all privileges")
	}

	clerkRole, err := roleRepo.FindByCode(model.RoleClerk)
	if err != nil {
		return err
	}
	if len(clerkRole.Privileges) == 0 {
		var clerkPrivileges []model.Privilege
		for _, p := range allPrivileges {
			if !p.IsDestructive() {
				clerkPrivileges = append(clerkPrivileges, p)
			}
		}
		if err := roleRepo.AssignPrivileges(clerkRole, clerkPrivileges); err != nil {
			return err
		}
		log.Info("CLERK role assigned non-destructive privileges")
	}

	_, err = userRepo.FindByEmail(adminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &model.User{
		Email:      adminEmail,
		FullName:   "Owner",
		RoleID:     &ownerRole.ID,
		IsActive:   true,
		Privileges: ownerRole.Privileges,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"
	if err := admin.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}
	log.WithField("email", adminEmail).Info("owner account created")
	return nil
}
