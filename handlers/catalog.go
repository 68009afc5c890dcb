// File: autolot/handlers/catalog.go
package handlers

import (
	"net/http"

	"autolot/services/catalog"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CatalogHandler exposes the reference-data catalog over HTTP.
type CatalogHandler struct {
	CatalogService catalog.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{CatalogService: svc}
}

// GetFilterCatalogHandler handles GET /api/catalog/filters. It returns the
// detail groups and features the storefront builds its filter panel from.
func (h *CatalogHandler) GetFilterCatalogHandler(c *gin.Context) {
	logger := getLogger(c)

	fc, err := h.CatalogService.FilterCatalog(c.Request.Context())
	if err != nil {
		logger.Error("Failed to load filter catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load filter catalog"})
		return
	}
	c.JSON(http.StatusOK, fc)
}
