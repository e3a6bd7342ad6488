package db

import (
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the store and applies pool limits.
func Connect(cfg config.Config) (*gorm.DB, error) {
	gormLog := logger.Default.LogMode(logger.Warn)
	if cfg.GoEnv == "dev" {
		gormLog = logger.Default.LogMode(logger.Info)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:  gormLog,
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("db handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gormDB, nil
}

// constraints AutoMigrate cannot express
var schemaStatements = []string{
	// the single-active-cart invariant
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_carts_active_user ON carts (user_id) WHERE status = 'active'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email_lower ON users (lower(email))`,
	`DO $$ BEGIN
		ALTER TABLE cart_items ADD CONSTRAINT ck_cart_items_quantity CHECK (quantity > 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE products ADD CONSTRAINT ck_products_price CHECK (price >= 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE products ADD CONSTRAINT ck_products_stock CHECK (stock_quantity IS NULL OR stock_quantity >= 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
	`DO $$ BEGIN
		ALTER TABLE order_items ADD CONSTRAINT ck_order_items_quantity CHECK (quantity > 0);
	EXCEPTION WHEN duplicate_object THEN NULL; END $$`,
}

// Migrate creates tables, then the partial unique index and CHECK constraints.
func Migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
		&model.OutboxEvent{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	for _, stmt := range schemaStatements {
		if err := gormDB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
