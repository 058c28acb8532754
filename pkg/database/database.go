package database

import (
	"fmt"
	"strings"

	"fish-ledger/internal/model"
	"fish-ledger/pkg/config"

	"github.com/glebarez/sqlite"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store selected by cfg.DBDriver. The embedded SQLite file is the default;
// it is limited to one open connection because the ledger assumes a single writer.
func Connect(cfg *config.Config, log *logrus.Logger) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.SQLDebug {
		level = logger.Info
	}
	gormLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             cfg.SlowQuery,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(sqliteDSN(cfg.DBPath))
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseURL,
			PreferSimpleProtocol: true,
		})
	default:
		return nil, fmt.Errorf("database: unsupported driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("database: open %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.DBDriver == "postgres" {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
	} else {
		sqlDB.SetMaxOpenConns(1)
	}

	log.WithField("driver", cfg.DBDriver).Info("Database connection established")
	return db, nil
}

func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Migrate creates the fixed ledger schema and seeds the document number series.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Setting{},
		&model.Category{},
		&model.Item{},
		&model.Customer{},
		&model.Supplier{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.SupplierBill{},
		&model.NumberSequence{},
		&model.Payment{},
		&model.Privilege{},
		&model.Role{},
		&model.User{},
	); err != nil {
		return fmt.Errorf("database: migrate: %w", err)
	}

	for _, seq := range model.DefaultNumberSequences {
		seq := seq
		if err := db.Where(model.NumberSequence{Name: seq.Name}).FirstOrCreate(&seq).Error; err != nil {
			return fmt.Errorf("database: seed sequence %s: %w", seq.Name, err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
