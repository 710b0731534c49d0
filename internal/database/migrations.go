package database

import (
	"context"
	"fmt"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS stock_transactions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	stock_name TEXT NOT NULL,
	buy_quantity INTEGER NOT NULL,
	buy_price_per_stock NUMERIC NOT NULL,
	total_cost NUMERIC NOT NULL,
	buy_date DATE NOT NULL,
	sell_quantity INTEGER NOT NULL DEFAULT 0,
	sell_price_per_stock NUMERIC NOT NULL DEFAULT 0,
	total_selling_cost NUMERIC NOT NULL DEFAULT 0,
	sell_date DATE,
	remaining_quantity INTEGER NOT NULL,
	profit_loss_percentage NUMERIC NOT NULL DEFAULT 0,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	CHECK (buy_quantity > 0),
	CHECK (sell_quantity >= 0 AND sell_quantity <= buy_quantity)
);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS stock_transactions (
	id SERIAL PRIMARY KEY,
	stock_name VARCHAR(100) NOT NULL,
	buy_quantity INTEGER NOT NULL,
	buy_price_per_stock NUMERIC(10,4) NOT NULL,
	total_cost NUMERIC(15,4) NOT NULL,
	buy_date DATE NOT NULL,
	sell_quantity INTEGER NOT NULL DEFAULT 0,
	sell_price_per_stock NUMERIC(10,4) NOT NULL DEFAULT 0,
	total_selling_cost NUMERIC(15,4) NOT NULL DEFAULT 0,
	sell_date DATE,
	remaining_quantity INTEGER NOT NULL,
	profit_loss_percentage NUMERIC(10,4) NOT NULL DEFAULT 0,
	created_at TIMESTAMP WITH TIME ZONE NOT NULL,
	updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
	CHECK (buy_quantity > 0),
	CHECK (sell_quantity >= 0 AND sell_quantity <= buy_quantity)
);`

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_stock_transactions_stock_name ON stock_transactions(stock_name);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_transactions_buy_date ON stock_transactions(buy_date);`,
	`CREATE INDEX IF NOT EXISTS idx_stock_transactions_created_at ON stock_transactions(created_at);`,
}

// RunMigrations crea la tabla de transacciones y sus índices si no existen
func (db *DB) RunMigrations(ctx context.Context) error {
	schema := sqliteSchema
	if db.Dialect.Driver == config.DriverPostgres {
		schema = postgresSchema
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("error creando tabla stock_transactions: %w", err)
	}

	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("error creando índice: %w", err)
		}
	}

	return nil
}
