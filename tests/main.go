package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"autolot/database"
	"autolot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seeds a local autolot database with reference data and simulated listings
// so the API can be exercised by hand.
func main() {
	database.InitDB()
	db := database.MongoClient.Database("autolot")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Clear everything first.
	for _, name := range []string{"listings", "details", "options", "features", "orderings"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	// Detail facets with their option values. Map order is irrelevant; the
	// display order comes from the CarDetail ordering below.
	facetValues := map[string][]string{
		"Color":        {"Red", "Blue", "Black", "White", "Silver"},
		"Transmission": {"Manual", "Automatic"},
		"Fuel Type":    {"Petrol", "Diesel", "Hybrid", "Electric"},
		"Drivetrain":   {"FWD", "RWD", "AWD"},
		"Body Style":   {"Sedan", "Hatchback", "Coupe", "Wagon"},
	}
	displayOrder := []string{"Body Style", "Fuel Type", "Transmission", "Drivetrain", "Color"}

	detailIDs := make(map[string]primitive.ObjectID)
	optionIDs := make(map[string][]primitive.ObjectID)

	var detailDocs []interface{}
	var optionDocs []interface{}
	for name, values := range facetValues {
		detail := models.Detail{ID: primitive.NewObjectID(), Name: name}
		detailIDs[name] = detail.ID
		detailDocs = append(detailDocs, detail)
		for _, v := range values {
			opt := models.Option{ID: primitive.NewObjectID(), Detail: detail.ID, Value: v}
			optionIDs[name] = append(optionIDs[name], opt.ID)
			optionDocs = append(optionDocs, opt)
		}
	}
	if _, err := db.Collection("details").InsertMany(ctx, detailDocs); err != nil {
		log.Fatalf("Failed to seed details: %v", err)
	}
	if _, err := db.Collection("options").InsertMany(ctx, optionDocs); err != nil {
		log.Fatalf("Failed to seed options: %v", err)
	}

	featureNames := []string{"Sunroof", "Bluetooth", "Backup Camera", "Heated Seats", "Tow Package", "Navigation"}
	var featureDocs []interface{}
	var featureIDs []primitive.ObjectID
	for _, name := range featureNames {
		f := models.Feature{ID: primitive.NewObjectID(), Name: name, Icon: ""}
		featureIDs = append(featureIDs, f.ID)
		featureDocs = append(featureDocs, f)
	}
	if _, err := db.Collection("features").InsertMany(ctx, featureDocs); err != nil {
		log.Fatalf("Failed to seed features: %v", err)
	}

	orderedIDs := make([]primitive.ObjectID, 0, len(displayOrder))
	for _, name := range displayOrder {
		orderedIDs = append(orderedIDs, detailIDs[name])
	}
	ordering := models.Ordering{ID: primitive.NewObjectID(), Name: models.OrderingDetails, IDs: orderedIDs}
	if _, err := db.Collection("orderings").InsertOne(ctx, ordering); err != nil {
		log.Fatalf("Failed to seed ordering: %v", err)
	}

	// Simulated listings across every domain.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	titlesByDomain := map[string][]string{
		"car":        {"2016 Toyota Corolla", "2019 Honda Civic", "2015 Mazda 3", "2020 Hyundai Elantra"},
		"truck":      {"2018 Ford F-150", "2017 Chevrolet Silverado", "2021 Toyota Tacoma"},
		"suv":        {"2019 Honda CR-V", "2016 Subaru Outback", "2022 Kia Sportage"},
		"motorcycle": {"2020 Kawasaki Ninja 400", "2018 Harley-Davidson Iron 883"},
	}

	var listingDocs []interface{}
	listingsPerDomain := 8
	now := time.Now()
	count := 0
	for domain, titles := range titlesByDomain {
		for i := 0; i < listingsPerDomain; i++ {
			count++
			title := titles[rng.Intn(len(titles))]
			price := 4000 + rng.Intn(46000)
			mileage := 10000 + rng.Intn(180000)

			var details []models.DetailAssociation
			for name := range facetValues {
				opts := optionIDs[name]
				optID := opts[rng.Intn(len(opts))]
				details = append(details, models.DetailAssociation{Detail: detailIDs[name], Option: &optID})
			}

			features := make([]primitive.ObjectID, 0, 3)
			for _, fi := range rng.Perm(len(featureIDs))[:3] {
				features = append(features, featureIDs[fi])
			}

			var pages []string
			if count%5 == 0 {
				pages = []string{"home"}
			}

			listingDocs = append(listingDocs, models.Listing{
				ID:       primitive.NewObjectID(),
				Title:    title,
				Price:    fmt.Sprintf("$%d,%03d", price/1000, price%1000),
				Mileage:  fmt.Sprintf("%d,%03d km", mileage/1000, mileage%1000),
				Domain:   domain,
				Details:  details,
				Features: features,
				Images:   []models.ImageRef{},
				Extra:    "one owner, clean title",
				Pages:    pages,
				// Spread creation times so date sorting is visible.
				CreatedAt: now.Add(-time.Duration(count) * time.Hour),
				UpdatedAt: now.Add(-time.Duration(count) * time.Hour),
			})
		}
	}
	if _, err := db.Collection("listings").InsertMany(ctx, listingDocs); err != nil {
		log.Fatalf("Failed to seed listings: %v", err)
	}

	fmt.Printf("Seeded %d details, %d options, %d features, 1 ordering, %d listings\n",
		len(detailDocs), len(optionDocs), len(featureDocs), len(listingDocs))
}
