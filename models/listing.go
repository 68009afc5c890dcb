// File: models/listing.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing is the stored form of a single inventory vehicle.
type Listing struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Price       string               `bson:"price" json:"price"`     // stored as text, e.g. "$12,500"
	Mileage     string               `bson:"mileage" json:"mileage"` // stored as text, e.g. "72,000 km"
	Domain      string               `bson:"domain" json:"domain"`   // category tag: car, truck, suv, motorcycle
	Details     []DetailAssociation  `bson:"details" json:"details"`
	Features    []primitive.ObjectID `bson:"features" json:"features"`
	Images      []ImageRef           `bson:"images" json:"images"`
	Videos      []string             `bson:"videos,omitempty" json:"videos,omitempty"`
	Extra       string               `bson:"extra,omitempty" json:"extra,omitempty"`
	SellerNotes []SellerNote         `bson:"sellerNotes,omitempty" json:"sellerNotes,omitempty"`
	Pages       []string             `bson:"pages,omitempty" json:"pages,omitempty"` // UI pages this listing is pinned to
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// DetailAssociation pairs a detail facet with the chosen option.
// Option may be nil for details that carry no value.
type DetailAssociation struct {
	Detail primitive.ObjectID  `bson:"detail" json:"detail"`
	Option *primitive.ObjectID `bson:"option,omitempty" json:"option,omitempty"`
}

type ImageRef struct {
	Filename string `bson:"filename" json:"filename"`
	Path     string `bson:"path" json:"path"` // public path, e.g. "/uploads/1712345678-front.jpg"
}

type SellerNote struct {
	Note  string   `bson:"note" json:"note"`
	Texts []string `bson:"texts,omitempty" json:"texts,omitempty"`
}

// ResolvedListing is the read shape: reference IDs replaced by full
// reference documents. Produced only by aggregation lookups, never stored.
type ResolvedListing struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Price        string             `bson:"price" json:"price"`
	Mileage      string             `bson:"mileage" json:"mileage"`
	Domain       string             `bson:"domain" json:"domain"`
	Details      []ResolvedDetail   `bson:"details" json:"details"`
	Features     []Feature          `bson:"features" json:"features"`
	Images       []ImageRef         `bson:"images" json:"images"`
	Videos       []string           `bson:"videos,omitempty" json:"videos,omitempty"`
	Extra        string             `bson:"extra,omitempty" json:"extra,omitempty"`
	SellerNotes  []SellerNote       `bson:"sellerNotes,omitempty" json:"sellerNotes,omitempty"`
	Pages        []string           `bson:"pages,omitempty" json:"pages,omitempty"`
	PriceValue   float64            `bson:"priceValue,omitempty" json:"priceValue,omitempty"`     // derived from Price for sorting
	MileageValue float64            `bson:"mileageValue,omitempty" json:"mileageValue,omitempty"` // derived from Mileage
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ResolvedDetail carries the full detail and option documents. A dangling
// option reference resolves to nil rather than an error.
type ResolvedDetail struct {
	Detail *Detail `bson:"detail" json:"detail"`
	Option *Option `bson:"option,omitempty" json:"option,omitempty"`
}
