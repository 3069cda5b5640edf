package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/catering/gstbill/internal/domain/invoice"
	"github.com/catering/gstbill/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a migrated in-memory SQLite database
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

// newMockDB opens a gorm postgres dialect over sqlmock
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func testInvoice(t *testing.T, billNo, customer string, date time.Time, lines ...invoice.LineItemInput) *invoice.Invoice {
	t.Helper()

	if len(lines) == 0 {
		lines = []invoice.LineItemInput{
			{Description: "Veg Thali", Quantity: 2, Rate: decimal.NewFromInt(100)},
			{Description: "Lassi", Quantity: 1, Rate: decimal.NewFromInt(50)},
		}
	}
	items := make([]invoice.LineItem, len(lines))
	for i, in := range lines {
		item, err := invoice.NewLineItem(in)
		require.NoError(t, err)
		items[i] = item
	}

	inv, err := invoice.NewInvoice(billNo, date, invoice.Customer{
		Name:    customer,
		Address: "12 MG Road, Pune",
		GSTNo:   "27ABCDE1234F1Z5",
	}, items)
	require.NoError(t, err)
	return inv
}
