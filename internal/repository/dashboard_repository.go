package repository

import (
	"context"
	"fmt"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/shopspring/decimal"
)

// GetDashboardStats calcula los totales del dashboard.
// Las sumas y conteos se resuelven en SQL; la ganancia neta recorre sólo las filas con ventas
// y aplica la misma asignación proporcional de costo que el cálculo por transacción.
func (r *TransactionRepository) GetDashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var stats models.DashboardStats

	totalsQuery := `
		SELECT
			COUNT(*),
			COALESCE(SUM(total_cost), 0),
			COALESCE(SUM(total_selling_cost), 0),
			COUNT(CASE WHEN remaining_quantity > 0 THEN 1 END)
		FROM stock_transactions`

	err := r.db.QueryRowContext(ctx, totalsQuery).Scan(
		&stats.TotalTransactions,
		&stats.TotalInvestment,
		&stats.TotalReturns,
		&stats.ActiveStocks,
	)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("error calculando totales: %w", err)
	}

	soldQuery := `
		SELECT buy_quantity, total_cost, sell_quantity, total_selling_cost
		FROM stock_transactions
		WHERE sell_quantity > 0 AND total_selling_cost > 0`

	rows, err := r.db.QueryContext(ctx, soldQuery)
	if err != nil {
		return models.DashboardStats{}, fmt.Errorf("error consultando ventas: %w", err)
	}
	defer rows.Close()

	net := decimal.Zero
	for rows.Next() {
		var tx models.StockTransaction
		if err := rows.Scan(&tx.BuyQuantity, &tx.TotalCost, &tx.SellQuantity, &tx.TotalSellingCost); err != nil {
			return models.DashboardStats{}, fmt.Errorf("error escaneando ventas: %w", err)
		}
		net = net.Add(tx.RealizedProfit())
	}
	if err := rows.Err(); err != nil {
		return models.DashboardStats{}, err
	}

	stats.NetProfitLoss = net
	return stats, nil
}
