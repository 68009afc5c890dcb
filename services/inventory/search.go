package inventory

import (
	"context"
	"fmt"

	listingRepo "autolot/database/repository/listing"
	"autolot/models"
	"autolot/utils"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Search clamps pagination, loads the detail display ordering and runs the
// filter pipeline. The page of listings, the total match count and the
// full-set price range all come back from one aggregation round trip.
func (s *DefaultInventoryService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	q := listingRepo.SearchQuery{
		Domain:   req.Domain,
		Search:   req.Search,
		Details:  req.Details,
		Features: req.Features,
		Sort:     req.Sort,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Skip:     (page - 1) * limit,
		Limit:    limit,
	}

	// A missing or unreadable ordering degrades to natural detail order.
	if ordering, err := s.Catalog.GetOrdering(ctx, models.OrderingDetails); err != nil {
		utils.GetLogger().Warn("failed to load detail ordering", zap.Error(err))
	} else if ordering != nil {
		q.DetailOrder = ordering.IDs
	}

	res, err := s.Repo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("listing search failed: %w", err)
	}

	return &SearchResult{
		Listings:   res.Listings,
		Total:      res.Total,
		PriceRange: res.PriceRange,
		Page:       page,
		Limit:      limit,
	}, nil
}
