package models

import "time"

// TransactionResponse es la representación JSON de una transacción con sus campos calculados
type TransactionResponse struct {
	ID                   int64   `json:"id"`
	StockName            string  `json:"stock_name"`
	BuyQuantity          int64   `json:"buy_quantity"`
	BuyPricePerStock     float64 `json:"buy_price_per_stock"`
	TotalCost            float64 `json:"total_cost"`
	BuyDate              string  `json:"buy_date"`
	SellQuantity         int64   `json:"sell_quantity"`
	SellPricePerStock    float64 `json:"sell_price_per_stock"`
	TotalSellingCost     float64 `json:"total_selling_cost"`
	SellDate             *string `json:"sell_date"`
	RemainingQuantity    int64   `json:"remaining_quantity"`
	ProfitLossPercentage float64 `json:"profit_loss_percentage"`
	CreatedAt            string  `json:"created_at"`
	UpdatedAt            string  `json:"updated_at"`
}

// ToResponse convierte la transacción al formato de la API
func (t *StockTransaction) ToResponse() TransactionResponse {
	resp := TransactionResponse{
		ID:                   t.ID,
		StockName:            t.StockName,
		BuyQuantity:          t.BuyQuantity,
		BuyPricePerStock:     t.BuyPricePerStock.InexactFloat64(),
		TotalCost:            t.TotalCost.InexactFloat64(),
		BuyDate:              t.BuyDate.Format(DateLayout),
		SellQuantity:         t.SellQuantity,
		SellPricePerStock:    t.SellPricePerStock.InexactFloat64(),
		TotalSellingCost:     t.TotalSellingCost.InexactFloat64(),
		RemainingQuantity:    t.RemainingQuantity,
		ProfitLossPercentage: t.ProfitLossPercentage.InexactFloat64(),
		CreatedAt:            t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:            t.UpdatedAt.UTC().Format(time.RFC3339),
	}

	if t.SellDate != nil {
		sellDate := t.SellDate.Format(DateLayout)
		resp.SellDate = &sellDate
	}

	return resp
}

// ToResponses convierte una lista de transacciones; nunca devuelve nil
func ToResponses(transactions []StockTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		out = append(out, transactions[i].ToResponse())
	}
	return out
}
