package models

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// CreateTransactionRequest es el cuerpo de POST /api/transactions
type CreateTransactionRequest struct {
	StockName         *string          `json:"stock_name" binding:"required"`
	BuyQuantity       *int64           `json:"buy_quantity" binding:"required"`
	BuyPricePerStock  *decimal.Decimal `json:"buy_price_per_stock" binding:"required"`
	BuyDate           *string          `json:"buy_date" binding:"required"`
	SellQuantity      *int64           `json:"sell_quantity"`
	SellPricePerStock *decimal.Decimal `json:"sell_price_per_stock"`
	SellDate          *string          `json:"sell_date"`
}

// UpdateTransactionRequest es el cuerpo de PUT /api/transactions/:id; sólo cambian los campos presentes
type UpdateTransactionRequest struct {
	StockName         *string          `json:"stock_name"`
	BuyQuantity       *int64           `json:"buy_quantity"`
	BuyPricePerStock  *decimal.Decimal `json:"buy_price_per_stock"`
	BuyDate           *string          `json:"buy_date"`
	SellQuantity      *int64           `json:"sell_quantity"`
	SellPricePerStock *decimal.Decimal `json:"sell_price_per_stock"`
	SellDate          OptionalString   `json:"sell_date"`
}

// OptionalString distingue un campo ausente (Set=false) de uno enviado como null o vacío
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	o.Value = &value
	return nil
}

// Empty es verdadero si el campo llegó como null o cadena vacía
func (o OptionalString) Empty() bool {
	return o.Value == nil || *o.Value == ""
}
