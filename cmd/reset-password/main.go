package main

import (
	"fish-ledger/internal/repository"
	"fish-ledger/pkg/config"
	"fish-ledger/pkg/database"
	"fish-ledger/pkg/logger"
)

// Resets the owner account (ADMIN_EMAIL) to ADMIN_PASSWORD and drops its live session.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to connect database")
	}
	defer database.Close(db)

	userRepo := repository.NewUserRepo(db)
	user, err := userRepo.FindByEmail(cfg.AdminEmail)
	if err != nil {
		log.WithError(err).WithField("email", cfg.AdminEmail).Fatal("user not found")
	}

	if err := user.SetPassword(cfg.AdminPassword); err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}
	if err := userRepo.UpdatePassword(user.ID, user.Password); err != nil {
		log.WithError(err).Fatal("failed to update password")
	}
	if err := userRepo.StartSession(user.ID, "", user.UpdatedAt); err != nil {
		log.WithError(err).Warn("failed to clear session")
	}

	log.WithField("email", cfg.AdminEmail).Info("password reset, existing session signed out")
}
