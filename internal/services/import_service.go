package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrInvalidCSV indica que el archivo no se pudo procesar en absoluto
var ErrInvalidCSV = errors.New("invalid csv file")

// ImportError es un error de archivo que se devuelve al cliente tal cual
type ImportError struct {
	Msg string
}

func (e *ImportError) Error() string {
	return e.Msg
}

func (e *ImportError) Is(target error) bool {
	return target == ErrInvalidCSV
}

var requiredColumns = []string{"stock_name", "buy_quantity", "buy_price_per_stock", "buy_date"}

// Formatos de fecha aceptados en la importación
var importDateLayouts = []string{models.DateLayout, "01/02/2006"}

// BatchInserter inserta filas ya validadas en un único lote
type BatchInserter interface {
	InsertBatch(ctx context.Context, items []repository.BatchItem) (int, []repository.BatchFailure, error)
}

// ImportService carga transacciones desde un CSV, fila por fila, acumulando los errores
type ImportService struct {
	store       BatchInserter
	invalidator Invalidator
	log         zerolog.Logger
	now         func() time.Time
}

func NewImportService(store BatchInserter, invalidator Invalidator, log zerolog.Logger) *ImportService {
	return &ImportService{
		store:       store,
		invalidator: invalidator,
		log:         log.With().Str("component", "import_service").Logger(),
		now:         time.Now,
	}
}

type importRow struct {
	number int
	values map[string]string
}

// Import lee el CSV y guarda las filas válidas; las inválidas se informan en ImportResult.Errors
func (s *ImportService) Import(ctx context.Context, r io.Reader) (models.ImportResult, error) {
	rows, err := readRows(r)
	if err != nil {
		return models.ImportResult{}, err
	}

	rowErrors := []rowError{}
	items := make([]repository.BatchItem, 0, len(rows))
	now := s.now().UTC().Truncate(time.Second)

	for _, row := range rows {
		tx, err := parseRow(row.values)
		if err != nil {
			rowErrors = append(rowErrors, rowError{row: row.number, msg: err.Error()})
			continue
		}
		tx.CalculateTotals()
		tx.CreatedAt = now
		tx.UpdatedAt = now
		items = append(items, repository.BatchItem{Row: row.number, Transaction: tx})
	}

	inserted, failures, err := s.store.InsertBatch(ctx, items)
	if err != nil {
		s.log.Error().Err(err).Msg("Error al insertar el lote de importación")
		return models.ImportResult{}, err
	}
	for _, failure := range failures {
		rowErrors = append(rowErrors, rowError{row: failure.Row, msg: failure.Err.Error()})
	}

	sort.SliceStable(rowErrors, func(i, j int) bool { return rowErrors[i].row < rowErrors[j].row })

	result := models.ImportResult{
		Message:           fmt.Sprintf("Successfully imported %d transactions", inserted),
		SuccessfulImports: inserted,
		TotalRows:         len(rows),
		Errors:            make([]string, 0, len(rowErrors)),
	}
	for _, e := range rowErrors {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %s", e.row, e.msg))
	}
	if len(rowErrors) > 0 {
		result.Warning = fmt.Sprintf("%d rows had errors and were skipped", len(rowErrors))
	}

	if inserted > 0 && s.invalidator != nil {
		s.invalidator.Invalidate()
	}

	s.log.Info().
		Int("total_rows", result.TotalRows).
		Int("imported", inserted).
		Int("errors", len(rowErrors)).
		Msg("Importación CSV finalizada")
	return result, nil
}

type rowError struct {
	row int
	msg string
}

func readRows(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headerRecord, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ImportError{Msg: "Failed to read CSV file: file is empty"}
	}
	if err != nil {
		return nil, &ImportError{Msg: fmt.Sprintf("Failed to read CSV file: %v", err)}
	}

	header := make([]string, len(headerRecord))
	present := make(map[string]bool, len(header))
	for i, name := range headerRecord {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header[i] = strings.ToLower(strings.TrimSpace(name))
		present[header[i]] = true
	}

	var missing []string
	for _, column := range requiredColumns {
		if !present[column] {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return nil, &ImportError{Msg: "Missing required columns: " + strings.Join(missing, ", ")}
	}

	var rows []importRow
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ImportError{Msg: fmt.Sprintf("Failed to read CSV file: %v", err)}
		}
		if isBlank(record) {
			continue
		}

		// El número de fila es la línea física donde empieza el registro
		line, _ := reader.FieldPos(0)

		values := make(map[string]string, len(header))
		for col, name := range header {
			if col < len(record) {
				values[name] = strings.TrimSpace(record[col])
			}
		}
		rows = append(rows, importRow{number: line, values: values})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, value := range record {
		if strings.TrimSpace(value) != "" {
			return false
		}
	}
	return true
}

func parseRow(values map[string]string) (*models.StockTransaction, error) {
	tx := &models.StockTransaction{}

	tx.StockName = values["stock_name"]
	if tx.StockName == "" {
		return nil, errors.New("Missing stock name")
	}

	buyQuantity, err := parseWholeNumber(values["buy_quantity"])
	if err != nil || buyQuantity <= 0 {
		return nil, errors.New("Invalid buy quantity")
	}
	tx.BuyQuantity = buyQuantity

	buyPrice, err := decimal.NewFromString(values["buy_price_per_stock"])
	if err != nil || !buyPrice.IsPositive() {
		return nil, errors.New("Invalid buy price")
	}
	tx.BuyPricePerStock = buyPrice.Round(priceScale)

	if values["buy_date"] == "" {
		return nil, errors.New("Missing buy date")
	}
	buyDate, err := parseImportDate(values["buy_date"])
	if err != nil {
		return nil, errors.New("Invalid buy date format (use YYYY-MM-DD or MM/DD/YYYY)")
	}
	tx.BuyDate = buyDate

	if raw := values["sell_quantity"]; raw != "" {
		sellQuantity, err := parseWholeNumber(raw)
		if err != nil || sellQuantity < 0 {
			return nil, errors.New("Invalid sell quantity")
		}
		tx.SellQuantity = sellQuantity
	}

	if raw := values["sell_price_per_stock"]; raw != "" {
		sellPrice, err := decimal.NewFromString(raw)
		if err != nil || sellPrice.IsNegative() {
			return nil, errors.New("Invalid sell price")
		}
		tx.SellPricePerStock = sellPrice.Round(priceScale)
	}

	if raw := values["sell_date"]; raw != "" {
		sellDate, err := parseImportDate(raw)
		if err != nil {
			return nil, errors.New("Invalid sell date format (use YYYY-MM-DD or MM/DD/YYYY)")
		}
		tx.SellDate = &sellDate
	}

	if tx.SellQuantity > tx.BuyQuantity {
		return nil, errors.New("Sell quantity cannot exceed buy quantity")
	}
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}

// parseWholeNumber acepta enteros escritos como "10" o "10.0"
func parseWholeNumber(raw string) (int64, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	if !value.Equal(value.Truncate(0)) {
		return 0, fmt.Errorf("%q no es un número entero", raw)
	}
	return value.IntPart(), nil
}

func parseImportDate(raw string) (time.Time, error) {
	for _, layout := range importDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida %q", raw)
}
