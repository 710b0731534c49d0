package middleware

import (
	"net/http"
	"strconv"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/AgusMolinaCode/StockTracker_Api/internal/services"
	"github.com/gin-gonic/gin"
)

// ListTransactions devuelve una página del listado con búsqueda y orden
func (h *Handlers) ListTransactions(c *gin.Context) {
	page, err := h.transactions.List(c.Request.Context(), listQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page.ToResponse())
}

// listQuery lee los parámetros del listado; los valores no numéricos usan los valores por defecto
func listQuery(c *gin.Context) models.ListQuery {
	page, _ := strconv.Atoi(c.Query("page"))
	perPage, _ := strconv.Atoi(c.Query("per_page"))

	return models.ListQuery{
		Page:      page,
		PerPage:   perPage,
		Search:    c.Query("search"),
		SortBy:    c.DefaultQuery("sort_by", "created_at"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
	}
}

// GetTransaction obtiene una transacción por su ID
func (h *Handlers) GetTransaction(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	tx, err := h.transactions.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx.ToResponse())
}

// CreateTransaction registra una nueva compra (y su venta, si la hubo)
func (h *Handlers) CreateTransaction(c *gin.Context) {
	var req models.CreateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactions.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tx.ToResponse())
}

// UpdateTransaction modifica sólo los campos enviados
func (h *Handlers) UpdateTransaction(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	var req models.UpdateTransactionRequest
	if !bindJSON(c, &req) {
		return
	}

	tx, err := h.transactions.Update(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx.ToResponse())
}

// DeleteTransaction elimina una transacción
func (h *Handlers) DeleteTransaction(c *gin.Context) {
	id, ok := transactionID(c)
	if !ok {
		return
	}

	if err := h.transactions.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}

// transactionID interpreta el parámetro :id; un ID no numérico no puede existir
func transactionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}
