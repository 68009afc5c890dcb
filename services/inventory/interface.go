package inventory

import (
	"context"
	"fmt"
	"mime/multipart"

	catalogRepo "autolot/database/repository/catalog"
	listingRepo "autolot/database/repository/listing"
	"autolot/models"
	"autolot/services/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SearchRequest carries a fully parsed listing search. Domain is empty when
// every category is in scope.
type SearchRequest struct {
	Domain   string
	Search   string
	Details  []listingRepo.DetailFilter
	Features []string
	Sort     []listingRepo.SortKey
	MinPrice float64
	MaxPrice float64
	Page     int64
	Limit    int64
}

// SearchResult is the service-level search outcome. Page and Limit are the
// effective values after clamping, for pagination math upstream.
type SearchResult struct {
	Listings   []models.ResolvedListing
	Total      int64
	PriceRange listingRepo.PriceRange
	Page       int64
	Limit      int64
}

// IngestInput is a decoded multipart listing submission.
type IngestInput struct {
	Title       string
	Price       string
	Mileage     string
	Extra       string
	Domain      string
	Details     []models.DetailAssociation
	Features    []primitive.ObjectID
	Videos      []string
	Pages       []string
	SellerNotes []models.SellerNote
	Images      []*multipart.FileHeader
}

type InventoryService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResult, error)
	Ingest(ctx context.Context, in IngestInput) (*models.Listing, error)
	Replace(ctx context.Context, id primitive.ObjectID, listing models.Listing) (*models.ResolvedListing, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.ResolvedListing, error)
	ListByPage(ctx context.Context, page string, limit int64) ([]models.ResolvedListing, error)
}

// DefaultInventoryService is the production implementation.
type DefaultInventoryService struct {
	Repo    listingRepo.ListingRepository
	Catalog catalogRepo.CatalogRepository
	Files   storage.FileStorage
}

// NewDefaultInventoryService wires the inventory service dependencies.
func NewDefaultInventoryService(
	repo listingRepo.ListingRepository,
	catalog catalogRepo.CatalogRepository,
	files storage.FileStorage,
) (*DefaultInventoryService, error) {
	if repo == nil || catalog == nil || files == nil {
		return nil, fmt.Errorf("inventory service initialization error: one or more dependencies are nil")
	}
	return &DefaultInventoryService{Repo: repo, Catalog: catalog, Files: files}, nil
}
