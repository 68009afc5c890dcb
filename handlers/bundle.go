// File: autolot/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Listing endpoints
	SearchListingsHandler    gin.HandlerFunc
	UploadListingHandler     gin.HandlerFunc
	GetListingByIDHandler    gin.HandlerFunc
	ReplaceListingHandler    gin.HandlerFunc
	GetListingsByPageHandler gin.HandlerFunc

	// Catalog endpoints
	GetFilterCatalogHandler gin.HandlerFunc
}
