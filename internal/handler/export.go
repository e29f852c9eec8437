package handler

import (
	"encoding/csv"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"tillpos/internal/service"
)

type ExportHandler struct{ svc service.ExportService }

func NewExportHandler(svc service.ExportService) *ExportHandler {
	return &ExportHandler{svc: svc}
}

func (h *ExportHandler) Sales(c *gin.Context) {
	writeCSV(c, "sales.csv", h.svc.SalesRows(c.Request.Context()))
}

func (h *ExportHandler) Products(c *gin.Context) {
	writeCSV(c, "products.csv", h.svc.ProductRows(c.Request.Context()))
}

func writeCSV(c *gin.Context, filename string, rows [][]string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	if err := w.WriteAll(rows); err != nil {
		// Headers are already out; nothing left to do but log.
		log.Error().Err(err).Str("file", filename).Msg("csv export failed mid-stream")
	}
}
