package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"facturo/internal/service"
)

// SupplierHandler handles supplier endpoints.
type SupplierHandler struct {
	supplierService service.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles GET /api/v1/suppliers
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Param offset query int false "Offset for pagination" default(0)
// @Param limit query int false "Limit for pagination (max 100)" default(20)
// @Success 200 {object} Response{data=[]domain.Supplier,meta=PagMeta} "List of suppliers"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
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

	suppliers, total, err := h.supplierService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondPaginated(c, suppliers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Get handles GET /api/v1/suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier id")
		return
	}

	supplier, err := h.supplierService.GetByID(c.Request.Context(), orgID, supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, supplier)
}

// Update handles PUT /api/v1/suppliers/:id
func (h *SupplierHandler) Update(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier id")
		return
	}

	var input service.UpdateSupplierInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	supplier, err := h.supplierService.Update(c.Request.Context(), orgID, supplierID, input)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, supplier)
}

// Validate handles POST /api/v1/suppliers/:id/validate
// @Summary Validate a pending supplier
// @Description Marks the supplier as validated, making it a fuzzy-match candidate
// @Tags suppliers
// @Produce json
// @Param id path string true "Supplier ID"
// @Success 200 {object} Response{data=domain.Supplier} "Validated supplier"
// @Failure 404 {object} ErrorResponseBody "Supplier not found"
// @Security BearerAuth
// @Router /suppliers/{id}/validate [post]
func (h *SupplierHandler) Validate(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier id")
		return
	}

	supplier, err := h.supplierService.Validate(c.Request.Context(), orgID, supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, supplier)
}

// Deactivate handles POST /api/v1/suppliers/:id/deactivate
func (h *SupplierHandler) Deactivate(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier id")
		return
	}

	supplier, err := h.supplierService.Deactivate(c.Request.Context(), orgID, supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, supplier)
}

// ListAliases handles GET /api/v1/suppliers/:id/aliases
func (h *SupplierHandler) ListAliases(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier id")
		return
	}

	aliases, err := h.supplierService.ListAliases(c.Request.Context(), orgID, supplierID)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, aliases)
}

// AddAlias handles POST /api/v1/suppliers/:id/aliases
func (h *SupplierHandler) AddAlias(c *gin.Context) {
	orgID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	supplierID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid supplier id")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	alias, err := h.supplierService.AddAlias(c.Request.Context(), orgID, supplierID, req.Name)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondCreated(c, alias)
}
