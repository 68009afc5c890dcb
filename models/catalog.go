// File: models/catalog.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Detail is a facet name listings can be filtered by, e.g. "Color".
type Detail struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// Option is one possible value under a detail, e.g. "Red" under "Color".
type Option struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Detail primitive.ObjectID `bson:"detail" json:"detail"`
	Value  string             `bson:"value" json:"value"`
}

// Feature is a named capability tag, independent of detail facets.
type Feature struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`
	Icon string             `bson:"icon,omitempty" json:"icon,omitempty"`
}

// Ordering is an externally maintained display order for a named entity
// class. Consulted read-only.
type Ordering struct {
	ID   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name string               `bson:"name" json:"name"`
	IDs  []primitive.ObjectID `bson:"ids" json:"ids"`
}

// OrderingDetails is the ordering record that fixes how detail facets are
// displayed in the filter UI.
const OrderingDetails = "CarDetail"

// CategoryAll selects every domain.
const CategoryAll = "inventory"

// CategoryDomains maps referring-page slugs to the domain tag stored on
// listings.
var CategoryDomains = map[string]string{
	"cars":        "car",
	"trucks":      "truck",
	"suvs":        "suv",
	"motorcycles": "motorcycle",
}

// KnownDomain reports whether a domain tag is one of the stored categories.
func KnownDomain(domain string) bool {
	for _, d := range CategoryDomains {
		if d == domain {
			return true
		}
	}
	return false
}
