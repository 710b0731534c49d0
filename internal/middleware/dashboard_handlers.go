package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats devuelve los totales de todas las transacciones
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	stats, err := h.dashboard.GetStats(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats.ToResponse())
}
