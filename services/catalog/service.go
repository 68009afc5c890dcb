package catalog

import (
	"context"
	"fmt"
	"sort"

	"autolot/models"
	"autolot/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// FilterCatalog assembles the facet groups and feature list the filter UI
// renders, serving from cache on a hit.
func (s *DefaultCatalogService) FilterCatalog(ctx context.Context) (*FilterCatalog, error) {
	if s.Cache != nil {
		if fc, ok := s.Cache.Get(ctx); ok {
			return fc, nil
		}
	}

	details, err := s.Repo.GetDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load details: %w", err)
	}
	options, err := s.Repo.GetOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	features, err := s.Repo.GetFeatures(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load features: %w", err)
	}

	groups := groupOptions(details, options)

	// A missing or unreadable ordering degrades to natural facet order.
	if ordering, err := s.Repo.GetOrdering(ctx, models.OrderingDetails); err != nil {
		utils.GetLogger().Warn("failed to load detail ordering", zap.Error(err))
	} else if ordering != nil {
		groups = orderGroups(groups, ordering.IDs)
	}

	fc := &FilterCatalog{Details: groups, Features: features}

	if s.Cache != nil {
		if err := s.Cache.Set(ctx, *fc); err != nil {
			utils.GetLogger().Warn("failed to cache filter catalog", zap.Error(err))
		}
	}
	return fc, nil
}

// groupOptions attaches every option to its parent detail, keeping the
// details' natural order.
func groupOptions(details []models.Detail, options []models.Option) []DetailGroup {
	byDetail := make(map[primitive.ObjectID][]models.Option, len(details))
	for _, opt := range options {
		byDetail[opt.Detail] = append(byDetail[opt.Detail], opt)
	}

	groups := make([]DetailGroup, 0, len(details))
	for _, d := range details {
		groups = append(groups, DetailGroup{Detail: d, Options: byDetail[d.ID]})
	}
	return groups
}

// orderGroups sorts facet groups by the display ordering; groups missing
// from the ordering keep their natural position after the ordered ones.
func orderGroups(groups []DetailGroup, order []primitive.ObjectID) []DetailGroup {
	rank := make(map[primitive.ObjectID]int, len(order))
	for i, id := range order {
		rank[id] = i
	}
	pos := func(g DetailGroup) int {
		if r, ok := rank[g.Detail.ID]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return pos(groups[i]) < pos(groups[j])
	})
	return groups
}
