package listingRepo

import (
	"context"
	"fmt"
	"sort"

	"autolot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// sortFieldMap maps external sort field names onto pipeline fields. Sortable
// numeric fields point at the derived values so ordering is numeric, not
// lexical.
var sortFieldMap = map[string]string{
	"price":     "priceValue",
	"mileage":   "mileageValue",
	"date":      "createdAt",
	"createdAt": "createdAt",
}

// Search runs the filter pipeline and returns the page, the total count and
// the full-set price range from a single aggregation round trip.
func (r *MongoListingRepo) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	pipeline := buildSearchPipeline(q)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("listing search aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		Data  []models.ResolvedListing `bson:"data"`
		Total []struct {
			Count int64 `bson:"count"`
		} `bson:"total"`
		PriceRange []PriceRange `bson:"priceRange"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode search result: %w", err)
	}

	res := &SearchResult{}
	if len(out) == 0 {
		return res, nil
	}
	res.Listings = out[0].Data
	if len(out[0].Total) > 0 {
		res.Total = out[0].Total[0].Count
	}
	if len(out[0].PriceRange) > 0 {
		res.PriceRange = out[0].PriceRange[0]
	}
	for i := range res.Listings {
		res.Listings[i].Details = orderResolvedDetails(res.Listings[i].Details, q.DetailOrder)
	}
	return res, nil
}

// buildSearchPipeline composes the full aggregation from a parsed query.
func buildSearchPipeline(q SearchQuery) mongo.Pipeline {
	var pipeline mongo.Pipeline

	// 1) $match: domain plus case-insensitive free-text search
	match := bson.M{}
	if q.Domain != "" {
		match["domain"] = q.Domain
	}
	if q.Search != "" {
		re := bson.M{"$regex": q.Search, "$options": "i"}
		match["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"extra": re},
		}
	}
	if len(match) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}

	// 2) resolve detail/option/feature references to full documents
	pipeline = append(pipeline, resolveReferenceStages()...)

	// 3) $match: one $elemMatch per detail filter, AND across filters,
	// OR within a filter's values
	if len(q.Details) > 0 {
		and := bson.A{}
		for _, f := range q.Details {
			and = append(and, bson.M{"details": bson.M{"$elemMatch": bson.M{
				"detail.name":  f.Name,
				"option.value": bson.M{"$in": f.Values},
			}}})
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"$and": and}}})
	}

	// 4) $match: at least one feature in the allowed set
	if len(q.Features) > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{
			"features.name": bson.M{"$in": q.Features},
		}}})
	}

	// 5) derive numeric fields from text, then apply the price range
	pipeline = append(pipeline, derivedFieldsStage())

	priceMatch := bson.M{"$gte": q.MinPrice}
	if q.MaxPrice > 0 {
		priceMatch["$lte"] = q.MaxPrice
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: bson.M{"priceValue": priceMatch}}})

	// 6) $facet: page of results, total count and full-set price range in
	// one pass over the same filtered set
	limit := q.Limit
	if limit <= 0 {
		limit = 10
	}
	pipeline = append(pipeline, bson.D{{Key: "$facet", Value: bson.M{
		"data": bson.A{
			bson.D{{Key: "$sort", Value: sortStage(q.Sort)}},
			bson.D{{Key: "$skip", Value: q.Skip}},
			bson.D{{Key: "$limit", Value: limit}},
			dropScratchStage(),
		},
		"total": bson.A{
			bson.D{{Key: "$count", Value: "count"}},
		},
		"priceRange": bson.A{
			bson.D{{Key: "$group", Value: bson.M{
				"_id": nil,
				"min": bson.M{"$min": "$priceValue"},
				"max": bson.M{"$max": "$priceValue"},
			}}},
		},
	}}})

	return pipeline
}

// resolveReferenceStages looks up the details, options and features
// collections and zips the stored association array into resolved
// {detail, option} pairs. A dangling or null option reference resolves to an
// absent field, which decodes to nil.
func resolveReferenceStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "details",
			"localField":   "details.detail",
			"foreignField": "_id",
			"as":           "detailRefs",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "options",
			"localField":   "details.option",
			"foreignField": "_id",
			"as":           "optionRefs",
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "features",
			"localField":   "features",
			"foreignField": "_id",
			"as":           "features",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"details": bson.M{"$map": bson.M{
				"input": "$details",
				"as":    "assoc",
				"in": bson.M{
					"detail": bson.M{"$arrayElemAt": bson.A{
						bson.M{"$filter": bson.M{
							"input": "$detailRefs",
							"as":    "d",
							"cond":  bson.M{"$eq": bson.A{"$$d._id", "$$assoc.detail"}},
						}},
						0,
					}},
					"option": bson.M{"$arrayElemAt": bson.A{
						bson.M{"$filter": bson.M{
							"input": "$optionRefs",
							"as":    "o",
							"cond":  bson.M{"$eq": bson.A{"$$o._id", "$$assoc.option"}},
						}},
						0,
					}},
				},
			}},
		}}},
	}
}

// derivedFieldsStage computes priceValue and mileageValue from their stored
// text forms so that range filters and sorts compare numbers.
func derivedFieldsStage() bson.D {
	return bson.D{{Key: "$addFields", Value: bson.M{
		"priceValue":   numericFromText("$price"),
		"mileageValue": numericFromText("$mileage"),
	}}}
}

// numericFromText builds an expression deriving a double from a text field,
// e.g. "$12,500" -> 12500. Values with no usable digits become 0.
func numericFromText(field string) bson.M {
	digits := bson.M{"$regexFindAll": bson.M{
		"input": bson.M{"$ifNull": bson.A{field, ""}},
		"regex": "[0-9.]+",
	}}
	joined := bson.M{"$reduce": bson.M{
		"input": bson.M{"$map": bson.M{
			"input": digits,
			"as":    "m",
			"in":    "$$m.match",
		}},
		"initialValue": "",
		"in":           bson.M{"$concat": bson.A{"$$value", "$$this"}},
	}}
	return bson.M{"$convert": bson.M{
		"input":   joined,
		"to":      "double",
		"onError": 0,
		"onNull":  0,
	}}
}

// sortStage maps the requested sort spec onto pipeline fields. Unrecognized
// fields are dropped; when nothing survives, newest listings come first. The
// trailing _id key keeps pagination deterministic for equal sort values.
func sortStage(keys []SortKey) bson.D {
	sortDoc := bson.D{}
	seen := map[string]bool{}
	for _, k := range keys {
		field, ok := sortFieldMap[k.Field]
		if !ok || seen[field] {
			continue
		}
		seen[field] = true
		dir := 1
		if k.Desc {
			dir = -1
		}
		sortDoc = append(sortDoc, bson.E{Key: field, Value: dir})
	}
	if len(sortDoc) == 0 {
		sortDoc = bson.D{{Key: "createdAt", Value: -1}}
	}
	sortDoc = append(sortDoc, bson.E{Key: "_id", Value: -1})
	return sortDoc
}

// dropScratchStage removes the lookup scratch arrays from returned documents.
func dropScratchStage() bson.D {
	return bson.D{{Key: "$project", Value: bson.M{"detailRefs": 0, "optionRefs": 0}}}
}

// orderResolvedDetails sorts a listing's resolved details by the supplied
// display order. Details absent from the order keep their natural position
// after the ordered ones; an empty order leaves natural order untouched.
func orderResolvedDetails(details []models.ResolvedDetail, order []primitive.ObjectID) []models.ResolvedDetail {
	if len(order) == 0 || len(details) == 0 {
		return details
	}
	rank := make(map[primitive.ObjectID]int, len(order))
	for i, id := range order {
		rank[id] = i
	}
	pos := func(d models.ResolvedDetail) int {
		if d.Detail == nil {
			return len(order)
		}
		if r, ok := rank[d.Detail.ID]; ok {
			return r
		}
		return len(order)
	}
	sort.SliceStable(details, func(i, j int) bool {
		return pos(details[i]) < pos(details[j])
	})
	return details
}
