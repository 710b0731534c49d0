package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// DateLayout es el formato de fecha de la API (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Escala de los campos porcentuales almacenados
const percentageScale = 4

const maxStockNameLength = 100

var hundred = decimal.NewFromInt(100)

// StockTransaction es una compra de acciones, vendida total o parcialmente (o aún en cartera)
type StockTransaction struct {
	ID                int64
	StockName         string
	BuyQuantity       int64
	BuyPricePerStock  decimal.Decimal
	BuyDate           time.Time
	SellQuantity      int64
	SellPricePerStock decimal.Decimal
	SellDate          *time.Time

	// Campos derivados, recalculados por CalculateTotals
	TotalCost            decimal.Decimal
	TotalSellingCost     decimal.Decimal
	RemainingQuantity    int64
	ProfitLossPercentage decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CalculateTotals recalcula todos los campos derivados a partir de los datos de compra y venta.
// Debe ejecutarse antes de persistir o devolver cualquier transacción.
func (t *StockTransaction) CalculateTotals() {
	t.TotalCost = decimal.NewFromInt(t.BuyQuantity).Mul(t.BuyPricePerStock)

	if t.SellQuantity > 0 && t.SellPricePerStock.IsPositive() {
		t.TotalSellingCost = decimal.NewFromInt(t.SellQuantity).Mul(t.SellPricePerStock)
	} else {
		t.TotalSellingCost = decimal.Zero
	}

	t.RemainingQuantity = t.BuyQuantity - t.SellQuantity

	// El porcentaje se calcula sólo sobre la parte vendida de la posición
	if t.TotalSellingCost.IsPositive() && t.TotalCost.IsPositive() {
		proportional := t.ProportionalBuyCost()
		t.ProfitLossPercentage = t.TotalSellingCost.Sub(proportional).
			Div(proportional).
			Mul(hundred).
			Round(percentageScale)
	} else {
		t.ProfitLossPercentage = decimal.Zero
	}
}

// ProportionalBuyCost es el costo de compra asignado a las acciones vendidas
func (t *StockTransaction) ProportionalBuyCost() decimal.Decimal {
	if t.BuyQuantity <= 0 {
		return decimal.Zero
	}
	soldRatio := decimal.NewFromInt(t.SellQuantity).Div(decimal.NewFromInt(t.BuyQuantity))
	return t.TotalCost.Mul(soldRatio)
}

// RealizedProfit es la ganancia (o pérdida) de la parte vendida
func (t *StockTransaction) RealizedProfit() decimal.Decimal {
	if t.SellQuantity <= 0 || !t.TotalSellingCost.IsPositive() {
		return decimal.Zero
	}
	return t.TotalSellingCost.Sub(t.ProportionalBuyCost())
}

// HoldingDays son los días entre la compra y la venta (o hoy si no se vendió)
func (t *StockTransaction) HoldingDays(today time.Time) int {
	end := today
	if t.SellDate != nil {
		end = *t.SellDate
	}
	return int(DateOnly(end).Sub(DateOnly(t.BuyDate)).Hours() / 24)
}

// Validate verifica los datos de entrada antes de calcular o persistir
func (t *StockTransaction) Validate() error {
	name := strings.TrimSpace(t.StockName)
	switch {
	case name == "":
		return errors.New("stock_name is required")
	case utf8.RuneCountInString(name) > maxStockNameLength:
		return fmt.Errorf("stock_name must be at most %d characters", maxStockNameLength)
	case t.BuyQuantity <= 0:
		return errors.New("buy_quantity must be greater than 0")
	case t.BuyPricePerStock.IsNegative():
		return errors.New("buy_price_per_stock cannot be negative")
	case t.BuyDate.IsZero():
		return errors.New("buy_date is required")
	case t.SellQuantity < 0:
		return errors.New("sell_quantity cannot be negative")
	case t.SellPricePerStock.IsNegative():
		return errors.New("sell_price_per_stock cannot be negative")
	case t.SellQuantity > t.BuyQuantity:
		return errors.New("sell_quantity cannot exceed buy_quantity")
	case t.SellDate != nil && t.SellQuantity == 0:
		return errors.New("sell_date requires sell_quantity greater than 0")
	}
	return nil
}

// DateOnly trunca un instante a la medianoche UTC de su fecha
func DateOnly(value time.Time) time.Time {
	y, m, d := value.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate interpreta una fecha de la API en formato YYYY-MM-DD
func ParseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, err
	}
	return parsed, nil
}
