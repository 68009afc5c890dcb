// File: autolot/handlers/listing.go
package handlers

import (
	"errors"
	"net/http"

	listingRepo "autolot/database/repository/listing"
	"autolot/models"
	"autolot/services/inventory"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// InventoryHandler exposes the inventory service over HTTP.
type InventoryHandler struct {
	InventoryService inventory.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(svc inventory.InventoryService) *InventoryHandler {
	return &InventoryHandler{InventoryService: svc}
}

// GetListingByIDHandler handles GET /api/listings/id/:id.
func (h *InventoryHandler) GetListingByIDHandler(c *gin.Context) {
	logger := getLogger(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	listing, err := h.InventoryService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, listingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		logger.Error("Failed to fetch listing", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listing"})
		return
	}
	c.JSON(http.StatusOK, listing)
}

// ReplaceListingHandler handles PUT /api/listings/id/:id. The payload is the
// stored listing form and the document is replaced as a whole.
func (h *InventoryHandler) ReplaceListingHandler(c *gin.Context) {
	logger := getLogger(c)

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing id"})
		return
	}

	var listing models.Listing
	if err := c.ShouldBindJSON(&listing); err != nil {
		logger.Error("Invalid replace request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	updated, err := h.InventoryService.Replace(c.Request.Context(), id, listing)
	if err != nil {
		if errors.Is(err, listingRepo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		logger.Error("Failed to replace listing", zap.String("id", id.Hex()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// GetListingsByPageHandler handles GET /api/listings/page/:name. It feeds the
// storefront carousels tied to a page tag.
func (h *InventoryHandler) GetListingsByPageHandler(c *gin.Context) {
	logger := getLogger(c)

	page := c.Param("name")
	limit := parseIntDefault(c.Query("limit"), 20)

	listings, err := h.InventoryService.ListByPage(c.Request.Context(), page, limit)
	if err != nil {
		logger.Error("Failed to fetch page listings", zap.String("page", page), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch listings"})
		return
	}
	if listings == nil {
		listings = []models.ResolvedListing{}
	}
	c.JSON(http.StatusOK, gin.H{"data": listings})
}
