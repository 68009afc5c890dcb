package inventory

import (
	"context"
	"fmt"
	"strings"

	"autolot/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Replace swaps a listing wholesale after re-verifying its references.
// Listings are never patched field by field.
func (s *DefaultInventoryService) Replace(ctx context.Context, id primitive.ObjectID, listing models.Listing) (*models.ResolvedListing, error) {
	if strings.TrimSpace(listing.Title) == "" {
		return nil, fmt.Errorf("listing title is required")
	}
	if !models.KnownDomain(listing.Domain) {
		return nil, fmt.Errorf("unknown listing domain %q", listing.Domain)
	}
	if err := s.verifyReferences(ctx, listing.Details, listing.Features); err != nil {
		return nil, err
	}

	if err := s.Repo.Replace(ctx, id, &listing); err != nil {
		return nil, err
	}
	return s.Repo.GetByID(ctx, id)
}

// GetByID returns a single listing with references resolved.
func (s *DefaultInventoryService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.ResolvedListing, error) {
	return s.Repo.GetByID(ctx, id)
}

// ListByPage returns the listings pinned to a UI page, newest first.
func (s *DefaultInventoryService) ListByPage(ctx context.Context, page string, limit int64) ([]models.ResolvedListing, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return s.Repo.FindByPage(ctx, page, limit)
}
