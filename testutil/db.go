// Package testutil holds helpers shared by package tests.
package testutil

import (
	"testing"

	"github.com/Kariqs/prostore-api/initializers"
	"github.com/Kariqs/prostore-api/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated in-memory SQLite database that lives for the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, initializers.SyncDatabase(db, zap.NewNop()))
	return db
}

// CreateProduct stores a product priced in whole cents.
func CreateProduct(t *testing.T, db *gorm.DB, name, price string, stock int) *models.Product {
	t.Helper()

	d := decimal.RequireFromString(price)
	require.True(t, d.Equal(d.Truncate(2)), "price %s has sub-cent digits", price)

	product := &models.Product{
		Name:        name,
		Slug:        slugify(name),
		Category:    "Shirts",
		Brand:       "Prostore",
		Description: name + " description",
		Price:       models.NewMoney(d),
		Stock:       stock,
		Images:      []models.ProductImage{{Url: "/images/" + slugify(name) + ".jpg"}},
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func slugify(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z':
			out = append(out, c+'a'-'A')
		case c == ' ':
			out = append(out, '-')
		default:
			out = append(out, c)
		}
	}
	return string(out)
}
