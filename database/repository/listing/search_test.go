package listingRepo

import (
	"testing"

	"autolot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// findStages returns the bodies of all stages with the given operator name.
func findStages(p mongo.Pipeline, name string) []bson.M {
	var out []bson.M
	for _, stage := range p {
		if stage[0].Key == name {
			if m, ok := stage[0].Value.(bson.M); ok {
				out = append(out, m)
			}
		}
	}
	return out
}

func TestSortStageMapsExternalFields(t *testing.T) {
	sortDoc := sortStage([]SortKey{
		{Field: "price"},
		{Field: "mileage", Desc: true},
	})

	require.Len(t, sortDoc, 3)
	assert.Equal(t, bson.E{Key: "priceValue", Value: 1}, sortDoc[0])
	assert.Equal(t, bson.E{Key: "mileageValue", Value: -1}, sortDoc[1])
	assert.Equal(t, bson.E{Key: "_id", Value: -1}, sortDoc[2])
}

func TestSortStageDropsUnrecognizedFields(t *testing.T) {
	sortDoc := sortStage([]SortKey{
		{Field: "color"},
		{Field: "price", Desc: true},
	})

	require.Len(t, sortDoc, 2)
	assert.Equal(t, bson.E{Key: "priceValue", Value: -1}, sortDoc[0])
	assert.Equal(t, bson.E{Key: "_id", Value: -1}, sortDoc[1])
}

func TestSortStageDefaultsToNewestFirst(t *testing.T) {
	for _, keys := range [][]SortKey{
		nil,
		{{Field: "horsepower"}, {Field: "owner", Desc: true}},
	} {
		sortDoc := sortStage(keys)
		require.Len(t, sortDoc, 2)
		assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, sortDoc[0])
		assert.Equal(t, bson.E{Key: "_id", Value: -1}, sortDoc[1])
	}
}

func TestSortStageKeepsFirstDirectionPerField(t *testing.T) {
	sortDoc := sortStage([]SortKey{
		{Field: "price"},
		{Field: "price", Desc: true},
		{Field: "date", Desc: true},
	})

	require.Len(t, sortDoc, 3)
	assert.Equal(t, bson.E{Key: "priceValue", Value: 1}, sortDoc[0])
	assert.Equal(t, bson.E{Key: "createdAt", Value: -1}, sortDoc[1])
}

func TestBuildSearchPipelineDomainAndSearch(t *testing.T) {
	p := buildSearchPipeline(SearchQuery{Domain: "car", Search: "corolla", Limit: 10})

	require.Equal(t, "$match", p[0][0].Key)
	match := p[0][0].Value.(bson.M)
	assert.Equal(t, "car", match["domain"])

	or, ok := match["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)
	title := or[0].(bson.M)["title"].(bson.M)
	assert.Equal(t, "corolla", title["$regex"])
	assert.Equal(t, "i", title["$options"])
}

func TestBuildSearchPipelineOmitsEmptyBaseMatch(t *testing.T) {
	p := buildSearchPipeline(SearchQuery{Limit: 10})

	// with no domain and no search term the pipeline starts at the lookups
	assert.Equal(t, "$lookup", p[0][0].Key)
}

func TestBuildSearchPipelineDetailFilters(t *testing.T) {
	p := buildSearchPipeline(SearchQuery{
		Limit: 10,
		Details: []DetailFilter{
			{Name: "Color", Values: []string{"Red", "Blue"}},
			{Name: "Transmission", Values: []string{"Manual"}},
		},
	})

	var and bson.A
	for _, match := range findStages(p, "$match") {
		if a, ok := match["$and"].(bson.A); ok {
			and = a
		}
	}
	require.Len(t, and, 2)

	first := and[0].(bson.M)["details"].(bson.M)["$elemMatch"].(bson.M)
	assert.Equal(t, "Color", first["detail.name"])
	assert.Equal(t, bson.M{"$in": []string{"Red", "Blue"}}, first["option.value"])

	second := and[1].(bson.M)["details"].(bson.M)["$elemMatch"].(bson.M)
	assert.Equal(t, "Transmission", second["detail.name"])
}

func TestBuildSearchPipelineFeatureFilter(t *testing.T) {
	p := buildSearchPipeline(SearchQuery{Limit: 10, Features: []string{"Sunroof", "AWD"}})

	var in interface{}
	for _, match := range findStages(p, "$match") {
		if f, ok := match["features.name"].(bson.M); ok {
			in = f["$in"]
		}
	}
	assert.Equal(t, []string{"Sunroof", "AWD"}, in)
}

func TestBuildSearchPipelinePriceBounds(t *testing.T) {
	priceMatch := func(p mongo.Pipeline) bson.M {
		for _, match := range findStages(p, "$match") {
			if pv, ok := match["priceValue"].(bson.M); ok {
				return pv
			}
		}
		return nil
	}

	bounded := priceMatch(buildSearchPipeline(SearchQuery{Limit: 10, MinPrice: 100, MaxPrice: 500}))
	require.NotNil(t, bounded)
	assert.Equal(t, float64(100), bounded["$gte"])
	assert.Equal(t, float64(500), bounded["$lte"])

	open := priceMatch(buildSearchPipeline(SearchQuery{Limit: 10, MinPrice: 100}))
	require.NotNil(t, open)
	assert.Equal(t, float64(100), open["$gte"])
	_, hasUpper := open["$lte"]
	assert.False(t, hasUpper, "zero max price must leave the range unbounded")
}

func TestBuildSearchPipelineFacetShape(t *testing.T) {
	p := buildSearchPipeline(SearchQuery{Limit: 5, Skip: 10})

	last := p[len(p)-1]
	require.Equal(t, "$facet", last[0].Key)
	facet := last[0].Value.(bson.M)

	data, ok := facet["data"].(bson.A)
	require.True(t, ok)
	require.Len(t, data, 4)
	assert.Equal(t, "$sort", data[0].(bson.D)[0].Key)
	assert.Equal(t, "$skip", data[1].(bson.D)[0].Key)
	assert.Equal(t, int64(10), data[1].(bson.D)[0].Value)
	assert.Equal(t, "$limit", data[2].(bson.D)[0].Key)
	assert.Equal(t, int64(5), data[2].(bson.D)[0].Value)
	assert.Equal(t, "$project", data[3].(bson.D)[0].Key)

	total, ok := facet["total"].(bson.A)
	require.True(t, ok)
	assert.Equal(t, "$count", total[0].(bson.D)[0].Key)

	priceRange, ok := facet["priceRange"].(bson.A)
	require.True(t, ok)
	group := priceRange[0].(bson.D)[0]
	require.Equal(t, "$group", group.Key)
	assert.Equal(t, bson.M{"$min": "$priceValue"}, group.Value.(bson.M)["min"])
	assert.Equal(t, bson.M{"$max": "$priceValue"}, group.Value.(bson.M)["max"])
}

func TestBuildSearchPipelineDefaultsLimit(t *testing.T) {
	p := buildSearchPipeline(SearchQuery{})

	facet := p[len(p)-1][0].Value.(bson.M)
	data := facet["data"].(bson.A)
	assert.Equal(t, int64(10), data[2].(bson.D)[0].Value)
}

func TestNumericFromTextConvertsWithZeroFallback(t *testing.T) {
	expr := numericFromText("$price")

	conv, ok := expr["$convert"].(bson.M)
	require.True(t, ok)
	assert.Equal(t, "double", conv["to"])
	assert.Equal(t, 0, conv["onError"])
	assert.Equal(t, 0, conv["onNull"])
}

func TestOrderResolvedDetailsAppliesCustomOrder(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	c := primitive.NewObjectID()

	details := []models.ResolvedDetail{
		{Detail: &models.Detail{ID: a, Name: "Color"}},
		{Detail: &models.Detail{ID: c, Name: "Seats"}},
		{Detail: &models.Detail{ID: b, Name: "Transmission"}},
	}

	ordered := orderResolvedDetails(details, []primitive.ObjectID{b, a})

	require.Len(t, ordered, 3)
	assert.Equal(t, "Transmission", ordered[0].Detail.Name)
	assert.Equal(t, "Color", ordered[1].Detail.Name)
	// ids missing from the ordering keep their natural position at the end
	assert.Equal(t, "Seats", ordered[2].Detail.Name)
}

func TestOrderResolvedDetailsToleratesNilAndEmptyOrder(t *testing.T) {
	a := primitive.NewObjectID()
	details := []models.ResolvedDetail{
		{Detail: nil},
		{Detail: &models.Detail{ID: a, Name: "Color"}},
	}

	// empty order leaves natural order untouched
	same := orderResolvedDetails(details, nil)
	assert.Nil(t, same[0].Detail)

	// nil details sort after ordered entries without panicking
	ordered := orderResolvedDetails(details, []primitive.ObjectID{a})
	require.NotNil(t, ordered[0].Detail)
	assert.Equal(t, "Color", ordered[0].Detail.Name)
	assert.Nil(t, ordered[1].Detail)
}
