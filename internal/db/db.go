package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-de-belleza/internal/config"
	"github.com/BruksfildServices01/salon-de-belleza/internal/infra/repository"
	"github.com/BruksfildServices01/salon-de-belleza/internal/models"
)

func NewDB(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
		Logger:      gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Service{},
		&models.Appointment{},
		&models.BookingRecord{},
		&models.ContactMessage{},
		&models.StaffUser{},
		&models.AuditLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	if err := migrateLegacyBookingRecords(ctx, db, logger); err != nil {
		return nil, fmt.Errorf("legacy booking records: %w", err)
	}

	if err := seedAdmin(ctx, db, cfg, logger); err != nil {
		return nil, fmt.Errorf("seed admin: %w", err)
	}

	return db, nil
}

func seedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if cfg.AdminEmail == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	created, err := repository.NewStaffGormRepository(db).EnsureStaffUser(ctx, &models.StaffUser{
		Name:         "Administrador",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
	})
	if err != nil {
		return err
	}
	if created {
		logger.Info("admin user created", "email", cfg.AdminEmail)
	}
	return nil
}
