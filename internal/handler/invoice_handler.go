package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"facturo/internal/domain"
	"facturo/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// Create handles POST /api/v1/invoices
// @Summary Register an uploaded file as an invoice
// @Description Creates an invoice record for the file and queues it for extraction
// @Tags invoices
// @Accept json
// @Produce json
// @Param request body CreateInvoiceRequest true "Invoice creation request"
// @Success 201 {object} Response{data=domain.Invoice} "Invoice queued"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 404 {object} ErrorResponseBody "File not found"
// @Security BearerAuth
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c *gin.Context) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var req struct {
		FileID uuid.UUID `json:"file_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.CreateFromFile(c.Request.Context(), service.CreateInvoiceInput{
		OrganizationID: orgID,
		FileID:         req.FileID,
		CreatedBy:      userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, inv)
}

// Get handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), orgID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// List handles GET /api/v1/invoices
// @Summary List invoices
// @Description List invoices for the organization, optionally only extracted ones
// @Tags invoices
// @Produce json
// @Param extracted query bool false "Only invoices with completed extraction"
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Invoice,meta=PagMeta} "List of invoices"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var (
		invoices []domain.Invoice
		total    int
		err      error
	)
	if c.Query("extracted") == "true" {
		invoices, total, err = h.invoiceService.ListExtracted(c.Request.Context(), orgID, offset, limit)
	} else {
		invoices, total, err = h.invoiceService.List(c.Request.Context(), orgID, offset, limit)
	}
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// EditExtractedData handles PUT /api/v1/invoices/:id/data
func (h *InvoiceHandler) EditExtractedData(c *gin.Context) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	var req struct {
		Data json.RawMessage `json:"data" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.EditExtractedData(c.Request.Context(), service.EditExtractedDataInput{
		OrganizationID: orgID,
		InvoiceID:      invoiceID,
		UserID:         userID,
		Data:           req.Data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// Retry handles POST /api/v1/invoices/:id/retry
func (h *InvoiceHandler) Retry(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	inv, err := h.invoiceService.RetryExtraction(c.Request.Context(), orgID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), orgID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "invoice deleted"})
}
