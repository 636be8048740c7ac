package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facturo/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler handles accounting export endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Journal handles GET /api/v1/exports/journal
// @Summary Export the purchase journal as an Excel workbook
// @Description Renders every allocation created in [from, to) as one journal row
// @Tags exports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param from query string true "Period start (YYYY-MM-DD, inclusive)"
// @Param to query string true "Period end (YYYY-MM-DD, exclusive)"
// @Success 200 {file} binary "Journal workbook"
// @Failure 400 {object} ErrorResponseBody "Invalid period"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /exports/journal [get]
func (h *ExportHandler) Journal(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid 'from' date: must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid 'to' date: must be YYYY-MM-DD")
		return
	}
	if !to.After(from) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "'to' must be after 'from'")
		return
	}

	data, filename, err := h.exportService.JournalXLSX(c.Request.Context(), orgID, from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}
