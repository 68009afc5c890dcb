package catalog

import (
	"context"
	"testing"

	"autolot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeRepo struct {
	details  []models.Detail
	options  []models.Option
	features []models.Feature
	ordering *models.Ordering
	calls    int
}

func (f *fakeRepo) GetDetails(ctx context.Context) ([]models.Detail, error) {
	f.calls++
	return f.details, nil
}

func (f *fakeRepo) GetOptions(ctx context.Context) ([]models.Option, error) {
	return f.options, nil
}

func (f *fakeRepo) GetFeatures(ctx context.Context) ([]models.Feature, error) {
	return f.features, nil
}

func (f *fakeRepo) GetOrdering(ctx context.Context, name string) (*models.Ordering, error) {
	return f.ordering, nil
}

func (f *fakeRepo) CountDetailsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) CountOptionsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (f *fakeRepo) CountFeaturesByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	return 0, nil
}

type fakeCache struct {
	stored *FilterCatalog
}

func (f *fakeCache) Get(ctx context.Context) (*FilterCatalog, bool) {
	if f.stored == nil {
		return nil, false
	}
	return f.stored, true
}

func (f *fakeCache) Set(ctx context.Context, fc FilterCatalog) error {
	f.stored = &fc
	return nil
}

func referenceData() (*fakeRepo, primitive.ObjectID, primitive.ObjectID) {
	color := primitive.NewObjectID()
	transmission := primitive.NewObjectID()
	return &fakeRepo{
		details: []models.Detail{
			{ID: color, Name: "Color"},
			{ID: transmission, Name: "Transmission"},
		},
		options: []models.Option{
			{ID: primitive.NewObjectID(), Detail: color, Value: "Red"},
			{ID: primitive.NewObjectID(), Detail: transmission, Value: "Manual"},
			{ID: primitive.NewObjectID(), Detail: color, Value: "Blue"},
		},
		features: []models.Feature{{ID: primitive.NewObjectID(), Name: "Sunroof"}},
	}, color, transmission
}

func TestFilterCatalogGroupsOptionsUnderDetails(t *testing.T) {
	repo, _, _ := referenceData()
	svc, err := NewDefaultCatalogService(repo, nil)
	require.NoError(t, err)

	fc, err := svc.FilterCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, fc.Details, 2)
	assert.Equal(t, "Color", fc.Details[0].Detail.Name)
	require.Len(t, fc.Details[0].Options, 2)
	assert.Equal(t, "Red", fc.Details[0].Options[0].Value)
	assert.Equal(t, "Blue", fc.Details[0].Options[1].Value)
	require.Len(t, fc.Details[1].Options, 1)
	assert.Equal(t, "Manual", fc.Details[1].Options[0].Value)

	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Sunroof", fc.Features[0].Name)
}

func TestFilterCatalogAppliesDisplayOrdering(t *testing.T) {
	repo, color, transmission := referenceData()
	repo.ordering = &models.Ordering{
		Name: models.OrderingDetails,
		IDs:  []primitive.ObjectID{transmission, color},
	}
	svc, err := NewDefaultCatalogService(repo, nil)
	require.NoError(t, err)

	fc, err := svc.FilterCatalog(context.Background())
	require.NoError(t, err)

	require.Len(t, fc.Details, 2)
	assert.Equal(t, "Transmission", fc.Details[0].Detail.Name)
	assert.Equal(t, "Color", fc.Details[1].Detail.Name)
}

func TestFilterCatalogServesFromCache(t *testing.T) {
	repo, _, _ := referenceData()
	cache := &fakeCache{stored: &FilterCatalog{
		Features: []models.Feature{{Name: "Cached"}},
	}}
	svc, err := NewDefaultCatalogService(repo, cache)
	require.NoError(t, err)

	fc, err := svc.FilterCatalog(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Cached", fc.Features[0].Name)
	assert.Zero(t, repo.calls, "a cache hit must not touch the repository")
}

func TestFilterCatalogRepopulatesCacheOnMiss(t *testing.T) {
	repo, _, _ := referenceData()
	cache := &fakeCache{}
	svc, err := NewDefaultCatalogService(repo, cache)
	require.NoError(t, err)

	fc, err := svc.FilterCatalog(context.Background())
	require.NoError(t, err)

	require.NotNil(t, cache.stored)
	assert.Equal(t, fc.Features, cache.stored.Features)
	assert.Equal(t, 1, repo.calls)

	// second call now hits the cache
	_, err = svc.FilterCatalog(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}

func TestOrderGroupsKeepsUnorderedAtEnd(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()
	groups := []DetailGroup{
		{Detail: models.Detail{ID: a, Name: "A"}},
		{Detail: models.Detail{ID: b, Name: "B"}},
		{Detail: models.Detail{ID: c, Name: "C"}},
	}

	ordered := orderGroups(groups, []primitive.ObjectID{c, a})

	assert.Equal(t, "C", ordered[0].Detail.Name)
	assert.Equal(t, "A", ordered[1].Detail.Name)
	assert.Equal(t, "B", ordered[2].Detail.Name)
}
