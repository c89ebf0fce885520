package travel_service

import (
	"time"

	"github.com/shopspring/decimal"
)

// TravelService is an extra offered by the agency (visa help, transfers, insurance).
// A null price means the price varies.
type TravelService struct {
	ID            uint                `gorm:"primaryKey;autoIncrement" json:"id"`
	NameRu        string              `gorm:"type:varchar(255);not null" json:"name_ru"`
	NameEn        string              `gorm:"type:varchar(255);not null" json:"name_en"`
	NameFr        string              `gorm:"type:varchar(255);not null" json:"name_fr"`
	DescriptionRu *string             `gorm:"type:text" json:"description_ru"`
	DescriptionEn *string             `gorm:"type:text" json:"description_en"`
	DescriptionFr *string             `gorm:"type:text" json:"description_fr"`
	Price         decimal.NullDecimal `gorm:"type:numeric(10,2)" json:"price"`
	Icon          *string             `gorm:"type:varchar(100)" json:"icon"`
	IsActive      bool                `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (TravelService) TableName() string {
	return "services"
}
