package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"facturo/internal/service"
)

// AllocationHandler handles allocation endpoints.
type AllocationHandler struct {
	allocationService service.AllocationService
}

// NewAllocationHandler creates a new AllocationHandler.
func NewAllocationHandler(allocationService service.AllocationService) *AllocationHandler {
	return &AllocationHandler{allocationService: allocationService}
}

// Create handles POST /api/v1/invoices/:id/allocations
// @Summary Create an allocation on an invoice
// @Description Creates an allocation and recomputes item coverage for the invoice
// @Tags allocations
// @Accept json
// @Produce json
// @Param id path string true "Invoice ID"
// @Param request body CreateAllocationRequest true "Allocation request"
// @Success 201 {object} Response{data=domain.Allocation} "Created allocation"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 422 {object} ErrorResponseBody "Invoice not extracted"
// @Security BearerAuth
// @Router /invoices/{id}/allocations [post]
func (h *AllocationHandler) Create(c *gin.Context) {
	orgID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	var input service.CreateAllocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.OrganizationID = orgID
	input.InvoiceID = invoiceID
	input.UserID = userID

	alloc, err := h.allocationService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, alloc)
}

// ListByInvoice handles GET /api/v1/invoices/:id/allocations
func (h *AllocationHandler) ListByInvoice(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	allocs, err := h.allocationService.ListByInvoice(c.Request.Context(), orgID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, allocs)
}

// Get handles GET /api/v1/allocations/:id
func (h *AllocationHandler) Get(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	allocationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid allocation id")
		return
	}

	alloc, err := h.allocationService.GetByID(c.Request.Context(), orgID, allocationID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, alloc)
}

// Update handles PUT /api/v1/allocations/:id
func (h *AllocationHandler) Update(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	allocationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid allocation id")
		return
	}

	var input service.UpdateAllocationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	alloc, err := h.allocationService.Update(c.Request.Context(), orgID, allocationID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, alloc)
}

// Delete handles DELETE /api/v1/allocations/:id
func (h *AllocationHandler) Delete(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	allocationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid allocation id")
		return
	}

	if err := h.allocationService.Delete(c.Request.Context(), orgID, allocationID); err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, gin.H{"message": "allocation deleted"})
}

// Reconcile handles POST /api/v1/invoices/:id/allocations/reconcile
// @Summary Recompute item coverage for an invoice's allocations
// @Tags allocations
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} Response{data=[]domain.Allocation} "Allocations with refreshed item indices"
// @Failure 404 {object} ErrorResponseBody "Invoice not found"
// @Failure 422 {object} ErrorResponseBody "Invoice not extracted"
// @Security BearerAuth
// @Router /invoices/{id}/allocations/reconcile [post]
func (h *AllocationHandler) Reconcile(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice id")
		return
	}

	allocs, err := h.allocationService.Reconcile(c.Request.Context(), orgID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, allocs)
}
