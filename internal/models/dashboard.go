package models

import "github.com/shopspring/decimal"

// DashboardStats resume todas las transacciones registradas
type DashboardStats struct {
	TotalTransactions int64
	TotalInvestment   decimal.Decimal
	TotalReturns      decimal.Decimal
	NetProfitLoss     decimal.Decimal
	ActiveStocks      int64
}

// DashboardResponse es la forma JSON de DashboardStats
type DashboardResponse struct {
	TotalTransactions int64   `json:"total_transactions"`
	TotalInvestment   float64 `json:"total_investment"`
	TotalReturns      float64 `json:"total_returns"`
	NetProfitLoss     float64 `json:"net_profit_loss"`
	ActiveStocks      int64   `json:"active_stocks"`
}

func (s DashboardStats) ToResponse() DashboardResponse {
	return DashboardResponse{
		TotalTransactions: s.TotalTransactions,
		TotalInvestment:   s.TotalInvestment.InexactFloat64(),
		TotalReturns:      s.TotalReturns.InexactFloat64(),
		NetProfitLoss:     s.NetProfitLoss.InexactFloat64(),
		ActiveStocks:      s.ActiveStocks,
	}
}
