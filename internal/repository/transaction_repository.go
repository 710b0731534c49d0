package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/database"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
)

// ErrNotFound se devuelve cuando la transacción no existe
var ErrNotFound = errors.New("transaction not found")

const selectColumns = `id, stock_name, buy_quantity, buy_price_per_stock, total_cost, buy_date,
	sell_quantity, sell_price_per_stock, total_selling_cost, sell_date,
	remaining_quantity, profit_loss_percentage, created_at, updated_at`

// Columnas por las que se permite ordenar el listado
var sortableColumns = map[string]bool{
	"id":                     true,
	"stock_name":             true,
	"buy_quantity":           true,
	"buy_price_per_stock":    true,
	"total_cost":             true,
	"buy_date":               true,
	"sell_quantity":          true,
	"sell_price_per_stock":   true,
	"total_selling_cost":     true,
	"sell_date":              true,
	"remaining_quantity":     true,
	"profit_loss_percentage": true,
	"created_at":             true,
	"updated_at":             true,
}

// querier lo cumplen tanto *sql.DB como *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type scanner interface {
	Scan(dest ...any) error
}

type TransactionRepository struct {
	db *database.DB
}

func NewTransactionRepository(db *database.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserta la transacción y asigna el ID generado por la base de datos
func (r *TransactionRepository) Create(ctx context.Context, tx *models.StockTransaction) error {
	return r.insert(ctx, r.db, tx)
}

func (r *TransactionRepository) insert(ctx context.Context, q querier, tx *models.StockTransaction) error {
	query := r.db.Dialect.Rebind(`
		INSERT INTO stock_transactions (stock_name, buy_quantity, buy_price_per_stock, total_cost, buy_date,
			sell_quantity, sell_price_per_stock, total_selling_cost, sell_date,
			remaining_quantity, profit_loss_percentage, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	return q.QueryRowContext(ctx, query,
		tx.StockName,
		tx.BuyQuantity,
		tx.BuyPricePerStock,
		tx.TotalCost,
		tx.BuyDate,
		tx.SellQuantity,
		tx.SellPricePerStock,
		tx.TotalSellingCost,
		nullTime(tx),
		tx.RemainingQuantity,
		tx.ProfitLossPercentage,
		tx.CreatedAt,
		tx.UpdatedAt,
	).Scan(&tx.ID)
}

// GetByID obtiene una transacción por su ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*models.StockTransaction, error) {
	return r.getByID(ctx, r.db, id)
}

func (r *TransactionRepository) getByID(ctx context.Context, q querier, id int64) (*models.StockTransaction, error) {
	query := r.db.Dialect.Rebind(`SELECT ` + selectColumns + ` FROM stock_transactions WHERE id = ?`)

	tx, err := scanTransaction(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// Update carga la transacción, aplica mutate y guarda el resultado dentro de una sola transacción SQL.
// Si mutate devuelve error no se modifica nada.
func (r *TransactionRepository) Update(ctx context.Context, id int64, mutate func(*models.StockTransaction) error) (*models.StockTransaction, error) {
	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer sqlTx.Rollback()

	tx, err := r.getByID(ctx, sqlTx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(tx); err != nil {
		return nil, err
	}

	query := r.db.Dialect.Rebind(`
		UPDATE stock_transactions
		SET stock_name = ?, buy_quantity = ?, buy_price_per_stock = ?, total_cost = ?, buy_date = ?,
			sell_quantity = ?, sell_price_per_stock = ?, total_selling_cost = ?, sell_date = ?,
			remaining_quantity = ?, profit_loss_percentage = ?, updated_at = ?
		WHERE id = ?`)

	_, err = sqlTx.ExecContext(ctx, query,
		tx.StockName,
		tx.BuyQuantity,
		tx.BuyPricePerStock,
		tx.TotalCost,
		tx.BuyDate,
		tx.SellQuantity,
		tx.SellPricePerStock,
		tx.TotalSellingCost,
		nullTime(tx),
		tx.RemainingQuantity,
		tx.ProfitLossPercentage,
		tx.UpdatedAt,
		tx.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("error actualizando transacción %d: %w", id, err)
	}

	if err := sqlTx.Commit(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Delete elimina una transacción
func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	query := r.db.Dialect.Rebind(`DELETE FROM stock_transactions WHERE id = ?`)

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll vacía la tabla (usado por el comando de seed)
func (r *TransactionRepository) DeleteAll(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stock_transactions`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// List devuelve una página de transacciones filtradas y ordenadas.
// El query debe llegar normalizado (Page >= 1, PerPage > 0 o models.AllRecords).
func (r *TransactionRepository) List(ctx context.Context, q models.ListQuery) (models.TransactionPage, error) {
	where := ""
	var args []any
	if q.Search != "" {
		where = " WHERE stock_name " + r.db.Dialect.Like() + " ?"
		args = append(args, "%"+q.Search+"%")
	}

	var total int64
	countQuery := r.db.Dialect.Rebind(`SELECT COUNT(*) FROM stock_transactions` + where)
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return models.TransactionPage{}, fmt.Errorf("error contando transacciones: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM stock_transactions` + where + orderBy(q)
	page := models.TransactionPage{Total: total, CurrentPage: q.Page}

	if q.PerPage == models.AllRecords {
		page.Pages = 1
	} else {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, q.PerPage, (q.Page-1)*q.PerPage)
		page.Pages = int(math.Ceil(float64(total) / float64(q.PerPage)))
	}

	transactions, err := r.query(ctx, r.db.Dialect.Rebind(query), args...)
	if err != nil {
		return models.TransactionPage{}, err
	}
	page.Transactions = transactions
	return page, nil
}

// All devuelve todas las transacciones ordenadas por ID
func (r *TransactionRepository) All(ctx context.Context) ([]models.StockTransaction, error) {
	return r.query(ctx, `SELECT `+selectColumns+` FROM stock_transactions ORDER BY id`)
}

func (r *TransactionRepository) query(ctx context.Context, query string, args ...any) ([]models.StockTransaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error en la consulta SQL: %w", err)
	}
	defer rows.Close()

	transactions := []models.StockTransaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("error escaneando resultados: %w", err)
		}
		transactions = append(transactions, *tx)
	}
	return transactions, rows.Err()
}

func orderBy(q models.ListQuery) string {
	column := q.SortBy
	if !sortableColumns[column] {
		column = "id"
	}
	direction := "ASC"
	if q.Descending() {
		direction = "DESC"
	}
	if column == "id" {
		return " ORDER BY id " + direction
	}
	return " ORDER BY " + column + " " + direction + ", id " + direction
}

func scanTransaction(row scanner) (*models.StockTransaction, error) {
	var tx models.StockTransaction
	var sellDate sql.NullTime

	err := row.Scan(
		&tx.ID,
		&tx.StockName,
		&tx.BuyQuantity,
		&tx.BuyPricePerStock,
		&tx.TotalCost,
		&tx.BuyDate,
		&tx.SellQuantity,
		&tx.SellPricePerStock,
		&tx.TotalSellingCost,
		&sellDate,
		&tx.RemainingQuantity,
		&tx.ProfitLossPercentage,
		&tx.CreatedAt,
		&tx.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tx.BuyDate = models.DateOnly(tx.BuyDate)
	if sellDate.Valid {
		d := models.DateOnly(sellDate.Time)
		tx.SellDate = &d
	}
	return &tx, nil
}

func nullTime(tx *models.StockTransaction) sql.NullTime {
	if tx.SellDate == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *tx.SellDate, Valid: true}
}
