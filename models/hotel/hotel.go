package hotel

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Hotel struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string          `gorm:"type:varchar(255);not null" json:"name"`
	City          string          `gorm:"type:varchar(255);not null" json:"city"`
	Country       string          `gorm:"type:varchar(255);not null" json:"country"`
	StarRating    int             `gorm:"not null" json:"star_rating"`
	ImageURL      *string         `gorm:"column:image_url;type:varchar(512)" json:"image_url"`
	DescriptionRu *string         `gorm:"type:text" json:"description_ru"`
	DescriptionEn *string         `gorm:"type:text" json:"description_en"`
	DescriptionFr *string         `gorm:"type:text" json:"description_fr"`
	RoomTypesJSON datatypes.JSON  `gorm:"column:room_types_json" json:"room_types_json"`
	PriceFrom     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price_from"`
	IsActive      bool            `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Hotel) TableName() string {
	return "hotels"
}
