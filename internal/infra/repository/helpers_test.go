package repository

import (
	"os"
	"testing"

	"storefront/internal/domain/model"
	infradb "storefront/internal/infra/db"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB connects to TEST_DATABASE_DSN and resets every table.
// Tests that need Postgres skip when it is unset.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, infradb.Migrate(db))

	require.NoError(t, db.Exec(`TRUNCATE outbox_events, audit_logs, order_items, orders,
		cart_items, carts, products, users RESTART IDENTITY CASCADE`).Error)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email string) model.User {
	t.Helper()
	u := model.User{Email: email, PasswordHash: "x", Role: model.RoleCustomer, IsActive: true}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock *int64) model.Product {
	t.Helper()
	p := model.Product{Name: name, Price: price, StockQuantity: stock, IsActive: true}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func int64p(v int64) *int64 { return &v }
