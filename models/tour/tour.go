package tour

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TourPackage is a bookable tour with content in every supported language.
type TourPackage struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	TitleRu       string          `gorm:"type:varchar(255);not null" json:"title_ru"`
	TitleEn       string          `gorm:"type:varchar(255);not null" json:"title_en"`
	TitleFr       string          `gorm:"type:varchar(255);not null" json:"title_fr"`
	DescriptionRu string          `gorm:"type:text;not null" json:"description_ru"`
	DescriptionEn string          `gorm:"type:text;not null" json:"description_en"`
	DescriptionFr string          `gorm:"type:text;not null" json:"description_fr"`
	Price         decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	DurationDays  int             `gorm:"not null" json:"duration_days"`
	Destination   string          `gorm:"type:varchar(255);not null" json:"destination"`
	ItineraryJSON datatypes.JSON  `gorm:"column:itinerary_json" json:"itinerary_json"`
	ImagesJSON    datatypes.JSON  `gorm:"column:images_json" json:"images_json"`
	CoverImage    *string         `gorm:"type:varchar(512)" json:"cover_image"`
	IsActive      bool            `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TourPackage) TableName() string {
	return "tour_packages"
}

// Title returns the title for lang, falling back to English.
func (t TourPackage) Title(lang string) string {
	switch lang {
	case "ru":
		if t.TitleRu != "" {
			return t.TitleRu
		}
	case "fr":
		if t.TitleFr != "" {
			return t.TitleFr
		}
	}
	return t.TitleEn
}

// Description returns the description for lang, falling back to English.
func (t TourPackage) Description(lang string) string {
	switch lang {
	case "ru":
		if t.DescriptionRu != "" {
			return t.DescriptionRu
		}
	case "fr":
		if t.DescriptionFr != "" {
			return t.DescriptionFr
		}
	}
	return t.DescriptionEn
}
