package handler

import (
	"github.com/catering/gstbill/internal/application/invoicing"
	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the learned item-description catalog
type CatalogHandler struct {
	BaseHandler
	catalogService *invoicing.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService *invoicing.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// List godoc
// @ID           listItemCatalog
// @Summary      List catalog entries
// @Description  Returns every canonical (lower-case) item description learned from committed invoices
// @Tags         item-catalog
// @Produce      json
// @Success      200 {object} APIResponse[invoicing.CatalogResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /item-catalog [get]
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.catalogService.List(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoicing.CatalogResponse{Items: items})
}

// Suggestions godoc
// @ID           suggestItemCatalog
// @Summary      Suggest item descriptions
// @Description  Returns catalog entries starting with the canonicalized prefix. Prefixes shorter than two characters yield an empty list.
// @Tags         item-catalog
// @Produce      json
// @Param        prefix query string false "Typed description prefix"
// @Success      200 {object} APIResponse[invoicing.CatalogResponse]
// @Failure      500 {object} ErrorResponse
// @Router       /item-catalog/suggestions [get]
func (h *CatalogHandler) Suggestions(c *gin.Context) {
	items, err := h.catalogService.Suggest(c.Request.Context(), c.Query("prefix"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, invoicing.CatalogResponse{Items: items})
}
