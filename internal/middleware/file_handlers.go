package middleware

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	csvContentType   = "text/csv"
	excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportCSV descarga todas las transacciones en CSV
func (h *Handlers) ExportCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exporter.WriteCSV(c.Request.Context(), &buf); err != nil {
		h.respondError(c, err)
		return
	}
	sendAttachment(c, "stock_transactions.csv", csvContentType, buf.Bytes())
}

// ExportExcel descarga todas las transacciones en xlsx
func (h *Handlers) ExportExcel(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exporter.WriteExcel(c.Request.Context(), &buf); err != nil {
		h.respondError(c, err)
		return
	}
	sendAttachment(c, "stock_transactions.xlsx", excelContentType, buf.Bytes())
}

// SampleCSV descarga la plantilla de importación
func (h *Handlers) SampleCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.exporter.WriteSampleCSV(&buf); err != nil {
		h.respondError(c, err)
		return
	}
	sendAttachment(c, "sample_transactions.csv", csvContentType, buf.Bytes())
}

func sendAttachment(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, contentType, data)
}

// BulkImport carga transacciones desde el archivo CSV del campo "file"
func (h *Handlers) BulkImport(c *gin.Context) {
	if h.maxUploadSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File too large (max %d bytes)", h.maxUploadSize)})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	if header.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file selected"})
		return
	}
	if !strings.EqualFold(filepath.Ext(header.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be a CSV"})
		return
	}

	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Failed to read CSV file: %v", err)})
		return
	}
	defer file.Close()

	result, err := h.importer.Import(c.Request.Context(), file)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
