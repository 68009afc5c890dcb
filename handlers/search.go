// File: autolot/handlers/search.go
package handlers

import (
	"fmt"
	"net/http"

	"autolot/models"
	"autolot/services/inventory"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SearchListingsHandler serves the storefront listing search. The browsing
// category comes from the Referer path; filters, sorting and pagination
// come from the query string.
func (h *InventoryHandler) SearchListingsHandler(c *gin.Context) {
	logger := getLogger(c)

	category := categoryFromReferer(c.GetHeader("Referer"))
	domain, ok := resolveCategory(category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown category %q", category)})
		return
	}

	req := inventory.SearchRequest{
		Domain:   domain,
		Search:   c.Query("search"),
		Details:  parseDetailFilters(c.Query("details")),
		Features: parseFeatureFilter(c.Query("features")),
		Sort:     parseSortSpec(c.Query("sortBy")),
		MinPrice: parseFloatDefault(c.Query("minPrice"), 0),
		MaxPrice: parseFloatDefault(c.Query("maxPrice"), 0),
		Page:     parseIntDefault(c.Query("page"), 1),
		Limit:    parseIntDefault(c.Query("limit"), 0),
	}

	res, err := h.InventoryService.Search(c.Request.Context(), req)
	if err != nil {
		logger.Error("Failed to search listings", zap.String("category", category), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	if res.Listings == nil {
		res.Listings = []models.ResolvedListing{}
	}
	totalPages := (res.Total + res.Limit - 1) / res.Limit

	c.JSON(http.StatusOK, gin.H{
		"data": res.Listings,
		"pagination": gin.H{
			"currentPage": res.Page,
			"totalPages":  totalPages,
			"limit":       res.Limit,
			"totalItems":  res.Total,
			"priceRange":  res.PriceRange,
		},
	})
}
