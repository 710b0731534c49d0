package middleware

import (
	"net/http"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/models"
	"github.com/gin-gonic/gin"
)

type indexPage struct {
	Title        string
	Query        models.ListQuery
	Transactions []models.TransactionResponse
	Total        int64
	Pages        int
	CurrentPage  int
	PrevPage     int
	NextPage     int
}

// IndexPage muestra el listado de transacciones
func (h *Handlers) IndexPage(c *gin.Context) {
	q := listQuery(c)
	page, err := h.transactions.List(c.Request.Context(), q)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp := page.ToResponse()
	data := indexPage{
		Title:        "Stock Transactions",
		Query:        q,
		Transactions: resp.Transactions,
		Total:        resp.Total,
		Pages:        resp.Pages,
		CurrentPage:  resp.CurrentPage,
	}
	if resp.CurrentPage > 1 {
		data.PrevPage = resp.CurrentPage - 1
	}
	if resp.CurrentPage < resp.Pages {
		data.NextPage = resp.CurrentPage + 1
	}

	c.HTML(http.StatusOK, "index.html", data)
}

// DashboardPage muestra las estadísticas generales
func (h *Handlers) DashboardPage(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c.Request.Context())
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"Title": "Dashboard",
		"Stats": stats.ToResponse(),
	})
}

func (h *Handlers) renderError(c *gin.Context, err error) {
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Error al renderizar la página")
	c.String(http.StatusInternalServerError, "Internal server error")
}
