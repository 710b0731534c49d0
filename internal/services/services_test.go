package services

import (
	"context"
	"testing"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/config"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/database"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 4, 1, 10, 30, 0, 0, time.UTC)

func testLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}

func newTestRepository(t *testing.T) *repository.TransactionRepository {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewTransactionRepository(db)
}

// countingInvalidator registra cuántas veces se invalidó la caché
type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() {
	c.calls++
}

func strPtr(s string) *string { return &s }

func int64Ptr(v int64) *int64 { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func createRequest(name string, buyQty int64, buyPrice string, sellQty int64, sellPrice string) models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		StockName:         strPtr(name),
		BuyQuantity:       int64Ptr(buyQty),
		BuyPricePerStock:  decPtr(buyPrice),
		BuyDate:           strPtr("2024-01-15"),
		SellQuantity:      int64Ptr(sellQty),
		SellPricePerStock: decPtr(sellPrice),
	}
}
