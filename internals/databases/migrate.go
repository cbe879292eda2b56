// file: internals/databases/migrate.go
package database

import (
	"errors"
	"fmt"
	"log"

	migrate "github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"mattilda_backend/internals/configs"
	aiModel "mattilda_backend/internals/features/ai/collection/model"
	billingItemModel "mattilda_backend/internals/features/finance/billing_items/model"
	invoiceModel "mattilda_backend/internals/features/finance/invoices/model"
	paymentModel "mattilda_backend/internals/features/finance/payments/model"
	gradeModel "mattilda_backend/internals/features/school/grades/model"
	schoolModel "mattilda_backend/internals/features/school/schools/model"
	studentModel "mattilda_backend/internals/features/school/students/model"
	userModel "mattilda_backend/internals/features/users/auth/model"
)

// Migrate menjalankan migrasi SQL (golang-migrate) bila MIGRATIONS=1,
// selain itu fallback ke AutoMigrate (dev convenience).
func Migrate(db *gorm.DB, cfg *configs.AppConfig) error {
	if cfg.RunSQLMigrations {
		return runSQLMigrations(cfg)
	}
	return AutoMigrateAll(db)
}

func runSQLMigrations(cfg *configs.AppConfig) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
	)
	m, err := migrate.New("file://"+cfg.MigrationsDir, dsn)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	log.Println("✅ SQL migrations applied.")
	return nil
}

// AutoMigrateAll dipakai oleh fallback dev dan oleh test DB (sqlite in-memory).
func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.User{},
		&schoolModel.School{},
		&gradeModel.Grade{},
		&studentModel.Student{},
		&billingItemModel.BillingItem{},
		&invoiceModel.Invoice{},
		&paymentModel.Payment{},
		&aiModel.AIRequestLog{},
	)
}
