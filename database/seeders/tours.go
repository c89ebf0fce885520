package seeders

import (
	"log"

	"travel-agency/models/tour"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SeedDemoTours adds a sample tour when the catalogue is empty.
func SeedDemoTours(db *gorm.DB) (int, error) {
	var count int64
	if err := db.Model(&tour.TourPackage{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("✅ Tour catalogue already has %d tours. No seeding needed.", count)
		return 0, nil
	}

	demo := tour.TourPackage{
		TitleRu:       "Альпийский трек",
		TitleEn:       "Alps Trek",
		TitleFr:       "Randonnée dans les Alpes",
		DescriptionRu: "Семь дней пеших маршрутов по Швейцарским Альпам.",
		DescriptionEn: "Seven days of guided hiking across the Swiss Alps.",
		DescriptionFr: "Sept jours de randonnée guidée dans les Alpes suisses.",
		Price:         decimal.RequireFromString("1490.00"),
		DurationDays:  7,
		Destination:   "Zermatt, Switzerland",
		ItineraryJSON: datatypes.JSON(`[{"day":1,"title":"Arrival in Zermatt"},{"day":7,"title":"Departure"}]`),
		ImagesJSON:    datatypes.JSON(`[]`),
		IsActive:      true,
	}
	if err := db.Create(&demo).Error; err != nil {
		log.Printf("❌ Failed to seed demo tour: %v", err)
		return 0, err
	}
	log.Printf("🌱 Seeded demo tour #%d %q", demo.ID, demo.TitleEn)
	return 1, nil
}
