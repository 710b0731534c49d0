package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/config"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/database"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T) *TransactionRepository {
	t.Helper()
	db, err := database.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactionRepository(db)
}

func newTransaction(name string, buyQty int64, buyPrice string, sellQty int64, sellPrice string) *models.StockTransaction {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tx := &models.StockTransaction{
		StockName:         name,
		BuyQuantity:       buyQty,
		BuyPricePerStock:  decimal.RequireFromString(buyPrice),
		BuyDate:           time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		SellQuantity:      sellQty,
		SellPricePerStock: decimal.RequireFromString(sellPrice),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	tx.CalculateTotals()
	return tx
}

func TestCreateAndGetByID(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	sellDate := time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC)
	tx := newTransaction("RELIANCE", 10, "2500.5", 5, "2650.75")
	tx.SellDate = &sellDate
	tx.CalculateTotals()

	require.NoError(t, repo.Create(ctx, tx))
	assert.NotZero(t, tx.ID)

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)

	assert.Equal(t, "RELIANCE", got.StockName)
	assert.Equal(t, int64(10), got.BuyQuantity)
	assert.True(t, decimal.RequireFromString("2500.5").Equal(got.BuyPricePerStock))
	assert.True(t, decimal.RequireFromString("25005").Equal(got.TotalCost))
	assert.True(t, decimal.RequireFromString("13253.75").Equal(got.TotalSellingCost))
	assert.Equal(t, int64(5), got.RemainingQuantity)
	assert.Equal(t, "2024-01-15", got.BuyDate.Format(models.DateLayout))
	require.NotNil(t, got.SellDate)
	assert.Equal(t, "2024-02-20", got.SellDate.Format(models.DateLayout))
	assert.True(t, tx.ProfitLossPercentage.Equal(got.ProfitLossPercentage))
	assert.True(t, tx.CreatedAt.Equal(got.CreatedAt))
}

func TestGetByID_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tx := newTransaction("TCS", 100, "10", 0, "0")
	require.NoError(t, repo.Create(ctx, tx))

	updated, err := repo.Update(ctx, tx.ID, func(current *models.StockTransaction) error {
		current.SellQuantity = 50
		current.SellPricePerStock = decimal.NewFromInt(12)
		current.CalculateTotals()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(20).Equal(updated.ProfitLossPercentage))

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(50), got.RemainingQuantity)
	assert.True(t, decimal.NewFromInt(600).Equal(got.TotalSellingCost))
	assert.True(t, decimal.NewFromInt(20).Equal(got.ProfitLossPercentage))
}

func TestUpdate_MutateErrorLeavesRowUntouched(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tx := newTransaction("TCS", 100, "10", 0, "0")
	require.NoError(t, repo.Create(ctx, tx))

	_, err := repo.Update(ctx, tx.ID, func(current *models.StockTransaction) error {
		current.StockName = "CHANGED"
		return fmt.Errorf("rejected")
	})
	require.EqualError(t, err, "rejected")

	got, err := repo.GetByID(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "TCS", got.StockName)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Update(context.Background(), 99, func(*models.StockTransaction) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	tx := newTransaction("HDFC", 15, "1650.25", 0, "0")
	require.NoError(t, repo.Create(ctx, tx))

	require.NoError(t, repo.Delete(ctx, tx.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tx.ID), ErrNotFound)

	_, err := repo.GetByID(ctx, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i, name := range []string{"Apple Inc.", "Microsoft", "Amazon", "Alphabet", "Tesla"} {
		require.NoError(t, repo.Create(ctx, newTransaction(name, int64(10*(i+1)), "100", 0, "0")))
	}

	tests := []struct {
		name      string
		query     models.ListQuery
		wantNames []string
		wantTotal int64
		wantPages int
	}{
		{
			name:      "first page ordered by id",
			query:     models.ListQuery{Page: 1, PerPage: 2},
			wantNames: []string{"Apple Inc.", "Microsoft"},
			wantTotal: 5,
			wantPages: 3,
		},
		{
			name:      "last partial page",
			query:     models.ListQuery{Page: 3, PerPage: 2},
			wantNames: []string{"Tesla"},
			wantTotal: 5,
			wantPages: 3,
		},
		{
			name:      "case insensitive search",
			query:     models.ListQuery{Page: 1, PerPage: 10, Search: "a", SortBy: "stock_name", SortOrder: "asc"},
			wantNames: []string{"Alphabet", "Amazon", "Apple Inc.", "Tesla"},
			wantTotal: 4,
			wantPages: 1,
		},
		{
			name:      "sort by buy quantity descending",
			query:     models.ListQuery{Page: 1, PerPage: 2, SortBy: "buy_quantity", SortOrder: "desc"},
			wantNames: []string{"Tesla", "Alphabet"},
			wantTotal: 5,
			wantPages: 3,
		},
		{
			name:      "all records",
			query:     models.ListQuery{Page: 1, PerPage: models.AllRecords, SortBy: "total_cost", SortOrder: "desc"},
			wantNames: []string{"Tesla", "Alphabet", "Amazon", "Microsoft", "Apple Inc."},
			wantTotal: 5,
			wantPages: 1,
		},
		{
			name:      "unknown sort column falls back to id",
			query:     models.ListQuery{Page: 1, PerPage: 10, SortBy: "id; DROP TABLE stock_transactions", SortOrder: "asc"},
			wantNames: []string{"Apple Inc.", "Microsoft", "Amazon", "Alphabet", "Tesla"},
			wantTotal: 5,
			wantPages: 1,
		},
		{
			name:      "no matches",
			query:     models.ListQuery{Page: 1, PerPage: 10, Search: "zzz"},
			wantNames: []string{},
			wantTotal: 0,
			wantPages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.List(ctx, tt.query)
			require.NoError(t, err)

			names := []string{}
			for _, tx := range page.Transactions {
				names = append(names, tx.StockName)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantTotal, page.Total)
			assert.Equal(t, tt.wantPages, page.Pages)
			assert.Equal(t, tt.query.Page, page.CurrentPage)
		})
	}
}

func TestInsertBatch_FailingRowRollsBackAlone(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	broken := newTransaction("BROKEN", 5, "10", 0, "0")
	broken.SellQuantity = 9 // viola el CHECK de la tabla

	items := []BatchItem{
		{Row: 2, Transaction: newTransaction("AAA", 10, "1", 0, "0")},
		{Row: 3, Transaction: broken},
		{Row: 4, Transaction: newTransaction("CCC", 10, "1", 0, "0")},
	}

	inserted, failures, err := repo.InsertBatch(ctx, items)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	require.Len(t, failures, 1)
	assert.Equal(t, 3, failures[0].Row)
	assert.Zero(t, broken.ID)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "AAA", all[0].StockName)
	assert.Equal(t, "CCC", all[1].StockName)
}

func TestInsertBatch_NothingInsertedRollsBack(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	broken := newTransaction("BROKEN", 5, "10", 0, "0")
	broken.SellQuantity = 9

	inserted, failures, err := repo.InsertBatch(ctx, []BatchItem{{Row: 2, Transaction: broken}})
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Len(t, failures, 1)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGetDashboardStats(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	// Vendida por completo con ganancia: costo 1000, venta 1100
	require.NoError(t, repo.Create(ctx, newTransaction("SOLD", 10, "100", 10, "110")))
	// Sin vender: su costo no debe afectar la ganancia neta
	require.NoError(t, repo.Create(ctx, newTransaction("HELD", 20, "50", 0, "0")))
	// Venta parcial con pérdida: costo proporcional 500, venta 400
	require.NoError(t, repo.Create(ctx, newTransaction("PARTIAL", 100, "10", 50, "8")))

	stats, err := repo.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalTransactions)
	assert.True(t, decimal.NewFromInt(3000).Equal(stats.TotalInvestment), "investment %s", stats.TotalInvestment)
	assert.True(t, decimal.NewFromInt(1500).Equal(stats.TotalReturns), "returns %s", stats.TotalReturns)
	assert.True(t, decimal.NewFromInt(0).Equal(stats.NetProfitLoss), "net %s", stats.NetProfitLoss)
	assert.Equal(t, int64(2), stats.ActiveStocks)
}

func TestGetDashboardStats_Empty(t *testing.T) {
	repo := newTestRepository(t)

	stats, err := repo.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalTransactions)
	assert.True(t, stats.TotalInvestment.IsZero())
	assert.True(t, stats.NetProfitLoss.IsZero())
}
