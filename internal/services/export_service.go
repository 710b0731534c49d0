package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const ExcelSheetName = "Stock Transactions"

var exportHeader = []string{
	"ID",
	"Stock Name",
	"Buy Quantity",
	"Buy Price per Stock",
	"Total Cost",
	"Buy Date",
	"Sell Quantity",
	"Sell Price per Stock",
	"Total Selling Cost",
	"Sell Date",
	"Holding Days",
	"Remaining Quantity",
	"Profit/Loss %",
	"Created At",
	"Updated At",
}

// Columnas y filas de ejemplo de la plantilla de importación
var sampleCSV = [][]string{
	{"stock_name", "buy_quantity", "buy_price_per_stock", "buy_date", "sell_quantity", "sell_price_per_stock", "sell_date"},
	{"RELIANCE", "10", "2500.5", "2024-01-15", "5", "2650.75", "2024-02-20"},
	{"TCS", "25", "3200.0", "2024-01-10", "0", "0", ""},
	{"HDFC", "15", "1650.25", "2024-01-20", "15", "1725.5", "2024-03-15"},
}

// TransactionLister devuelve todas las transacciones ya recalculadas
type TransactionLister interface {
	All(ctx context.Context) ([]models.StockTransaction, error)
}

// ExportService genera los archivos CSV y Excel del listado completo
type ExportService struct {
	lister TransactionLister
	log    zerolog.Logger
	now    func() time.Time
}

func NewExportService(lister TransactionLister, log zerolog.Logger) *ExportService {
	return &ExportService{
		lister: lister,
		log:    log.With().Str("component", "export_service").Logger(),
		now:    time.Now,
	}
}

// WriteCSV escribe todas las transacciones en formato CSV
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	transactions, err := s.lister.All(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}

	today := s.now()
	for i := range transactions {
		if err := writer.Write(csvRecord(&transactions[i], today)); err != nil {
			return err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}

	s.log.Info().Int("rows", len(transactions)).Msg("Exportación CSV generada")
	return nil
}

// WriteExcel escribe todas las transacciones en una hoja de cálculo xlsx
func (s *ExportService) WriteExcel(ctx context.Context, w io.Writer) error {
	transactions, err := s.lister.All(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExcelSheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(exportHeader))
	for i, h := range exportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(ExcelSheetName, "A1", &header); err != nil {
		return err
	}

	today := s.now()
	for i := range transactions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := excelRecord(&transactions[i], today)
		if err := f.SetSheetRow(ExcelSheetName, cell, &row); err != nil {
			return fmt.Errorf("error escribiendo fila %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return err
	}

	s.log.Info().Int("rows", len(transactions)).Msg("Exportación Excel generada")
	return nil
}

// WriteSampleCSV escribe la plantilla para la importación masiva
func (s *ExportService) WriteSampleCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(sampleCSV); err != nil {
		return err
	}
	return writer.Error()
}

func csvRecord(t *models.StockTransaction, today time.Time) []string {
	sellDate := ""
	if t.SellDate != nil {
		sellDate = t.SellDate.Format(models.DateLayout)
	}

	return []string{
		strconv.FormatInt(t.ID, 10),
		t.StockName,
		strconv.FormatInt(t.BuyQuantity, 10),
		t.BuyPricePerStock.String(),
		t.TotalCost.String(),
		t.BuyDate.Format(models.DateLayout),
		strconv.FormatInt(t.SellQuantity, 10),
		t.SellPricePerStock.String(),
		t.TotalSellingCost.String(),
		sellDate,
		strconv.Itoa(t.HoldingDays(today)),
		strconv.FormatInt(t.RemainingQuantity, 10),
		t.ProfitLossPercentage.String(),
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func excelRecord(t *models.StockTransaction, today time.Time) []interface{} {
	sellDate := ""
	if t.SellDate != nil {
		sellDate = t.SellDate.Format(models.DateLayout)
	}

	return []interface{}{
		t.ID,
		t.StockName,
		t.BuyQuantity,
		t.BuyPricePerStock.InexactFloat64(),
		t.TotalCost.InexactFloat64(),
		t.BuyDate.Format(models.DateLayout),
		t.SellQuantity,
		t.SellPricePerStock.InexactFloat64(),
		t.TotalSellingCost.InexactFloat64(),
		sellDate,
		t.HoldingDays(today),
		t.RemainingQuantity,
		t.ProfitLossPercentage.InexactFloat64(),
		t.CreatedAt.UTC().Format(time.RFC3339),
		t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
