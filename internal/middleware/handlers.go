package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// TransactionService son las operaciones de transacciones que usan los handlers
type TransactionService interface {
	Create(ctx context.Context, req models.CreateTransactionRequest) (*models.StockTransaction, error)
	Get(ctx context.Context, id int64) (*models.StockTransaction, error)
	Update(ctx context.Context, id int64, req models.UpdateTransactionRequest) (*models.StockTransaction, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, q models.ListQuery) (models.TransactionPage, error)
}

type StatsService interface {
	GetStats(ctx context.Context) (models.DashboardStats, error)
}

type Exporter interface {
	WriteCSV(ctx context.Context, w io.Writer) error
	WriteExcel(ctx context.Context, w io.Writer) error
	WriteSampleCSV(w io.Writer) error
}

type Importer interface {
	Import(ctx context.Context, r io.Reader) (models.ImportResult, error)
}

// Handlers agrupa las dependencias de todos los endpoints
type Handlers struct {
	transactions  TransactionService
	dashboard     StatsService
	exporter      Exporter
	importer      Importer
	maxUploadSize int64
	log           zerolog.Logger
}

func NewHandlers(transactions TransactionService, dashboard StatsService, exporter Exporter, importer Importer, maxUploadSize int64, log zerolog.Logger) *Handlers {
	RegisterValidation()
	return &Handlers{
		transactions:  transactions,
		dashboard:     dashboard,
		exporter:      exporter,
		importer:      importer,
		maxUploadSize: maxUploadSize,
		log:           log.With().Str("component", "handlers").Logger(),
	}
}

// respondError traduce los errores de servicio a su código HTTP
func (h *Handlers) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNotFound.Error()})
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidCSV):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).
			Str("request_id", c.GetString(RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("Error interno")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
