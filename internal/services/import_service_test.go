package services

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestImportService(t *testing.T) (*ImportService, *TransactionService, *countingInvalidator) {
	t.Helper()
	repo := newTestRepository(t)
	inv := &countingInvalidator{}
	return NewImportService(repo, inv, testLogger()), NewTransactionService(repo, nil, 10, testLogger()), inv
}

func TestImportService_ImportsValidRowsAndReportsErrors(t *testing.T) {
	importer, transactions, inv := newTestImportService(t)
	ctx := context.Background()

	csvData := "\ufeffstock_name,buy_quantity,buy_price_per_stock,buy_date,sell_quantity,sell_price_per_stock,sell_date\n" +
		"RELIANCE,10,2500.5,2024-01-15,5,2650.75,2024-02-20\n" +
		"TCS,abc,3200,2024-01-10,,,\n" +
		"HDFC,15.0,1650.25,01/20/2024,15,1725.5,03/15/2024\n"

	result, err := importer.Import(ctx, strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, "Successfully imported 2 transactions", result.Message)
	assert.Equal(t, 2, result.SuccessfulImports)
	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, []string{"Row 3: Invalid buy quantity"}, result.Errors)
	assert.Equal(t, "1 rows had errors and were skipped", result.Warning)
	assert.Equal(t, 1, inv.calls)

	all, err := transactions.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "RELIANCE", all[0].StockName)
	assert.True(t, decimal.RequireFromString("13253.75").Equal(all[0].TotalSellingCost))
	assert.Equal(t, "HDFC", all[1].StockName)
	assert.Equal(t, int64(15), all[1].BuyQuantity)
	assert.Equal(t, int64(0), all[1].RemainingQuantity)
	require.NotNil(t, all[1].SellDate)
	assert.Equal(t, "2024-03-15", all[1].SellDate.Format("2006-01-02"))
}

func TestImportService_RowErrors(t *testing.T) {
	const header = "stock_name,buy_quantity,buy_price_per_stock,buy_date,sell_quantity,sell_price_per_stock,sell_date\n"

	tests := []struct {
		name string
		row  string
		want string
	}{
		{"missing name", ",10,100,2024-01-01,,,", "Row 2: Missing stock name"},
		{"negative buy quantity", "A,-3,100,2024-01-01,,,", "Row 2: Invalid buy quantity"},
		{"fractional quantity", "A,1.5,100,2024-01-01,,,", "Row 2: Invalid buy quantity"},
		{"zero buy price", "A,10,0,2024-01-01,,,", "Row 2: Invalid buy price"},
		{"missing buy date", "A,10,100,,,,", "Row 2: Missing buy date"},
		{"bad buy date", "A,10,100,2024/01/01,,,", "Row 2: Invalid buy date format (use YYYY-MM-DD or MM/DD/YYYY)"},
		{"bad sell date", "A,10,100,2024-01-01,1,120,soon", "Row 2: Invalid sell date format (use YYYY-MM-DD or MM/DD/YYYY)"},
		{"negative sell quantity", "A,10,100,2024-01-01,-1,120,", "Row 2: Invalid sell quantity"},
		{"bad sell price", "A,10,100,2024-01-01,1,x,", "Row 2: Invalid sell price"},
		{"oversold", "A,10,100,2024-01-01,11,120,", "Row 2: Sell quantity cannot exceed buy quantity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			importer, _, inv := newTestImportService(t)

			result, err := importer.Import(context.Background(), strings.NewReader(header+tt.row+"\n"))
			require.NoError(t, err)

			assert.Equal(t, 0, result.SuccessfulImports)
			assert.Equal(t, 1, result.TotalRows)
			assert.Equal(t, []string{tt.want}, result.Errors)
			assert.Zero(t, inv.calls)
		})
	}
}

func TestImportService_RowNumbersFollowPhysicalLines(t *testing.T) {
	importer, _, _ := newTestImportService(t)

	csvData := "stock_name,buy_quantity,buy_price_per_stock,buy_date\n" +
		"RELIANCE,10,2500.5,2024-01-15\n" +
		"\n" +
		"\n" +
		"TCS,-3,3200,2024-01-10\n" +
		"\"HDFC\nBANK\",5,100,2024-01-10\n" +
		"INFY,x,100,2024-01-10\n"

	result, err := importer.Import(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessfulImports)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, []string{"Row 5: Invalid buy quantity", "Row 8: Invalid buy quantity"}, result.Errors)
}

func TestImportService_MissingColumns(t *testing.T) {
	importer, _, _ := newTestImportService(t)

	_, err := importer.Import(context.Background(), strings.NewReader("stock_name,buy_date\nA,2024-01-01\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCSV)
	assert.Equal(t, "Missing required columns: buy_quantity, buy_price_per_stock", err.Error())
}

func TestImportService_UnreadableFile(t *testing.T) {
	importer, _, _ := newTestImportService(t)

	_, err := importer.Import(context.Background(), strings.NewReader("stock_name,\"buy_quantity\nA,1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCSV)
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to read CSV file: "), err.Error())
}

func TestImportService_HeaderOnly(t *testing.T) {
	importer, _, _ := newTestImportService(t)

	result, err := importer.Import(context.Background(), strings.NewReader("stock_name,buy_quantity,buy_price_per_stock,buy_date\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, result.SuccessfulImports)
	assert.Equal(t, 0, result.TotalRows)
	assert.NotNil(t, result.Errors)
	assert.Empty(t, result.Warning)
}
