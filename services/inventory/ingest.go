package inventory

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"autolot/models"
	"autolot/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Ingest validates a decoded submission, stores its images and persists the
// listing as one unit. Ingestion either fully succeeds or fully fails; a
// partial listing is never left behind.
func (s *DefaultInventoryService) Ingest(ctx context.Context, in IngestInput) (*models.Listing, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("listing title is required")
	}
	if !models.KnownDomain(in.Domain) {
		return nil, fmt.Errorf("unknown listing domain %q", in.Domain)
	}
	if err := s.verifyReferences(ctx, in.Details, in.Features); err != nil {
		return nil, err
	}

	images, err := s.saveImages(ctx, in.Images)
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{
		Title:       title,
		Price:       in.Price,
		Mileage:     in.Mileage,
		Extra:       in.Extra,
		Domain:      in.Domain,
		Details:     in.Details,
		Features:    in.Features,
		Images:      images,
		Videos:      in.Videos,
		Pages:       in.Pages,
		SellerNotes: in.SellerNotes,
	}
	if err := s.Repo.Create(ctx, listing); err != nil {
		s.removeImages(ctx, images)
		return nil, err
	}
	return listing, nil
}

// saveImages writes all attachments concurrently, one goroutine per file,
// and joins before returning. Any failure removes the files already written
// so no orphan media is left behind.
func (s *DefaultInventoryService) saveImages(ctx context.Context, files []*multipart.FileHeader) ([]models.ImageRef, error) {
	if len(files) == 0 {
		return nil, nil
	}

	refs := make([]models.ImageRef, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, fh := range files {
		i, fh := i, fh
		g.Go(func() error {
			ref, err := s.Files.Save(gctx, fh)
			if err != nil {
				return err
			}
			refs[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.removeImages(ctx, refs)
		return nil, fmt.Errorf("failed to store images: %w", err)
	}
	return refs, nil
}

func (s *DefaultInventoryService) removeImages(ctx context.Context, refs []models.ImageRef) {
	for _, ref := range refs {
		if ref.Filename == "" {
			continue
		}
		if err := s.Files.Remove(ctx, ref.Filename); err != nil {
			utils.GetLogger().Warn("failed to remove stored image",
				zap.String("filename", ref.Filename), zap.Error(err))
		}
	}
}

// verifyReferences checks that every referenced detail, option and feature
// resolves to an existing reference-data document before anything is
// persisted.
func (s *DefaultInventoryService) verifyReferences(ctx context.Context, details []models.DetailAssociation, features []primitive.ObjectID) error {
	var detailIDs, optionIDs []primitive.ObjectID
	for _, assoc := range details {
		detailIDs = append(detailIDs, assoc.Detail)
		if assoc.Option != nil {
			optionIDs = append(optionIDs, *assoc.Option)
		}
	}
	detailIDs = dedupe(detailIDs)
	optionIDs = dedupe(optionIDs)
	featureIDs := dedupe(features)

	check := func(kind string, ids []primitive.ObjectID, count func(context.Context, []primitive.ObjectID) (int64, error)) error {
		n, err := count(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to verify %s: %w", kind, err)
		}
		if n != int64(len(ids)) {
			return fmt.Errorf("listing references %d unknown %s", int64(len(ids))-n, kind)
		}
		return nil
	}

	if err := check("details", detailIDs, s.Catalog.CountDetailsByIDs); err != nil {
		return err
	}
	if err := check("options", optionIDs, s.Catalog.CountOptionsByIDs); err != nil {
		return err
	}
	return check("features", featureIDs, s.Catalog.CountFeaturesByIDs)
}

func dedupe(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	var out []primitive.ObjectID
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
