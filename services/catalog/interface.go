package catalog

import (
	"context"
	"fmt"

	catalogRepo "autolot/database/repository/catalog"
	"autolot/models"
)

// DetailGroup is one facet with all of its options, ready for the filter UI.
type DetailGroup struct {
	Detail  models.Detail   `json:"detail"`
	Options []models.Option `json:"options"`
}

// FilterCatalog is everything the filter UI needs: detail facets in display
// order, each with its options, plus the feature tags.
type FilterCatalog struct {
	Details  []DetailGroup    `json:"details"`
	Features []models.Feature `json:"features"`
}

type CatalogService interface {
	FilterCatalog(ctx context.Context) (*FilterCatalog, error)
}

// DefaultCatalogService is the production implementation.
type DefaultCatalogService struct {
	Repo  catalogRepo.CatalogRepository
	Cache CatalogCache // optional; nil disables caching
}

func NewDefaultCatalogService(repo catalogRepo.CatalogRepository, cache CatalogCache) (*DefaultCatalogService, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog service initialization error: repository is nil")
	}
	return &DefaultCatalogService{Repo: repo, Cache: cache}, nil
}
