package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/repository"
	"github.com/rs/zerolog"
)

// Escala de los precios almacenados (NUMERIC(10,4))
const priceScale = 4

// TransactionStore define las operaciones que necesitamos del repositorio
type TransactionStore interface {
	Create(ctx context.Context, tx *models.StockTransaction) error
	GetByID(ctx context.Context, id int64) (*models.StockTransaction, error)
	Update(ctx context.Context, id int64, mutate func(*models.StockTransaction) error) (*models.StockTransaction, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) (int64, error)
	List(ctx context.Context, q models.ListQuery) (models.TransactionPage, error)
	All(ctx context.Context) ([]models.StockTransaction, error)
}

// Invalidator se notifica después de cada escritura confirmada
type Invalidator interface {
	Invalidate()
}

// TransactionService es el único camino de escritura: toda creación o modificación
// pasa por CalculateTotals antes de llegar al repositorio.
type TransactionService struct {
	store           TransactionStore
	invalidator     Invalidator
	defaultPageSize int
	log             zerolog.Logger
	now             func() time.Time
}

func NewTransactionService(store TransactionStore, invalidator Invalidator, defaultPageSize int, log zerolog.Logger) *TransactionService {
	if defaultPageSize <= 0 {
		defaultPageSize = 10
	}
	return &TransactionService{
		store:           store,
		invalidator:     invalidator,
		defaultPageSize: defaultPageSize,
		log:             log.With().Str("component", "transaction_service").Logger(),
		now:             time.Now,
	}
}

// Create valida la solicitud, calcula los campos derivados y guarda la transacción
func (s *TransactionService) Create(ctx context.Context, req models.CreateTransactionRequest) (*models.StockTransaction, error) {
	tx := &models.StockTransaction{}

	if req.StockName != nil {
		tx.StockName = strings.TrimSpace(*req.StockName)
	}
	if req.BuyQuantity != nil {
		tx.BuyQuantity = *req.BuyQuantity
	}
	if req.BuyPricePerStock != nil {
		tx.BuyPricePerStock = req.BuyPricePerStock.Round(priceScale)
	}
	if req.BuyDate != nil {
		buyDate, err := models.ParseDate(*req.BuyDate)
		if err != nil {
			return nil, validationError("Invalid buy_date format. Use YYYY-MM-DD")
		}
		tx.BuyDate = buyDate
	}
	if req.SellQuantity != nil {
		tx.SellQuantity = *req.SellQuantity
	}
	if req.SellPricePerStock != nil {
		tx.SellPricePerStock = req.SellPricePerStock.Round(priceScale)
	}
	if req.SellDate != nil && *req.SellDate != "" {
		sellDate, err := models.ParseDate(*req.SellDate)
		if err != nil {
			return nil, validationError("Invalid sell_date format. Use YYYY-MM-DD")
		}
		tx.SellDate = &sellDate
	}

	if err := tx.Validate(); err != nil {
		return nil, validationError(err.Error())
	}
	tx.CalculateTotals()

	now := s.timestamp()
	tx.CreatedAt = now
	tx.UpdatedAt = now

	if err := s.store.Create(ctx, tx); err != nil {
		s.log.Error().Err(err).Str("stock_name", tx.StockName).Msg("Error al crear la transacción")
		return nil, err
	}
	s.invalidate()

	s.log.Info().Int64("id", tx.ID).Str("stock_name", tx.StockName).Msg("Transacción creada")
	return tx, nil
}

// Get obtiene una transacción por su ID
func (s *TransactionService) Get(ctx context.Context, id int64) (*models.StockTransaction, error) {
	tx, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, mapStoreError(err)
	}
	// Los campos derivados nunca se devuelven sin recalcular
	tx.CalculateTotals()
	return tx, nil
}

// Update aplica los campos presentes en la solicitud y recalcula la transacción completa
func (s *TransactionService) Update(ctx context.Context, id int64, req models.UpdateTransactionRequest) (*models.StockTransaction, error) {
	tx, err := s.store.Update(ctx, id, func(tx *models.StockTransaction) error {
		if err := applyUpdate(tx, req); err != nil {
			return err
		}
		if err := tx.Validate(); err != nil {
			return validationError(err.Error())
		}
		tx.CalculateTotals()
		tx.UpdatedAt = s.timestamp()
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrValidation) && !errors.Is(err, repository.ErrNotFound) {
			s.log.Error().Err(err).Int64("id", id).Msg("Error al actualizar la transacción")
		}
		return nil, mapStoreError(err)
	}
	s.invalidate()

	s.log.Info().Int64("id", id).Msg("Transacción actualizada")
	return tx, nil
}

func applyUpdate(tx *models.StockTransaction, req models.UpdateTransactionRequest) error {
	if req.StockName != nil {
		tx.StockName = strings.TrimSpace(*req.StockName)
	}
	if req.BuyQuantity != nil {
		tx.BuyQuantity = *req.BuyQuantity
	}
	if req.BuyPricePerStock != nil {
		tx.BuyPricePerStock = req.BuyPricePerStock.Round(priceScale)
	}
	if req.BuyDate != nil {
		buyDate, err := models.ParseDate(*req.BuyDate)
		if err != nil {
			return validationError("Invalid buy_date format. Use YYYY-MM-DD")
		}
		tx.BuyDate = buyDate
	}
	if req.SellQuantity != nil {
		tx.SellQuantity = *req.SellQuantity
	}
	if req.SellPricePerStock != nil {
		tx.SellPricePerStock = req.SellPricePerStock.Round(priceScale)
	}
	if req.SellDate.Set {
		if req.SellDate.Empty() {
			tx.SellDate = nil
		} else {
			sellDate, err := models.ParseDate(*req.SellDate.Value)
			if err != nil {
				return validationError("Invalid sell_date format. Use YYYY-MM-DD")
			}
			tx.SellDate = &sellDate
		}
	}
	return nil
}

// Delete elimina una transacción
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return mapStoreError(err)
	}
	s.invalidate()

	s.log.Info().Int64("id", id).Msg("Transacción eliminada")
	return nil
}

// List normaliza los parámetros de paginación y devuelve la página solicitada
func (s *TransactionService) List(ctx context.Context, q models.ListQuery) (models.TransactionPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage == 0 || q.PerPage < models.AllRecords {
		q.PerPage = s.defaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	if q.SortBy == "" {
		q.SortBy = "created_at"
	}
	if q.SortOrder == "" {
		q.SortOrder = "desc"
	}

	page, err := s.store.List(ctx, q)
	if err != nil {
		return models.TransactionPage{}, err
	}
	for i := range page.Transactions {
		page.Transactions[i].CalculateTotals()
	}
	return page, nil
}

// All devuelve todas las transacciones con sus campos recalculados
func (s *TransactionService) All(ctx context.Context) ([]models.StockTransaction, error) {
	transactions, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	for i := range transactions {
		transactions[i].CalculateTotals()
	}
	return transactions, nil
}

// Reset elimina todas las transacciones (comando de seed)
func (s *TransactionService) Reset(ctx context.Context) (int64, error) {
	deleted, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.invalidate()
	return deleted, nil
}

func (s *TransactionService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Second)
}

func (s *TransactionService) invalidate() {
	if s.invalidator != nil {
		s.invalidator.Invalidate()
	}
}

func mapStoreError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

