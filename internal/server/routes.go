package routes

import (
	"embed"
	"html/template"

	"github.com/AgusMolinaCode/StockTracker_Api/internal/middleware"
	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templatesFS embed.FS

// RegisterRoutes registra las páginas y la API REST en el router
func RegisterRoutes(router *gin.Engine, h *middleware.Handlers) {
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/", h.IndexPage)
	router.GET("/dashboard", h.DashboardPage)

	api := router.Group("/api")
	{
		api.GET("/transactions", h.ListTransactions)
		api.POST("/transactions", h.CreateTransaction)
		api.GET("/transactions/:id", h.GetTransaction)
		api.PUT("/transactions/:id", h.UpdateTransaction)
		api.DELETE("/transactions/:id", h.DeleteTransaction)

		api.GET("/dashboard/stats", h.GetDashboardStats)

		api.GET("/export/csv", h.ExportCSV)
		api.GET("/export/excel", h.ExportExcel)
		api.GET("/sample-csv", h.SampleCSV)
		api.POST("/bulk-import", h.BulkImport)
	}
}
