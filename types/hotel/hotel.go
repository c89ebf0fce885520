package hotel

import (
	"travel-agency/apperror"
	hotelModel "travel-agency/models/hotel"
	"travel-agency/types"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type HotelCreateRequest struct {
	Name          string          `json:"name" validate:"required,max=255"`
	City          string          `json:"city" validate:"required,max=255"`
	Country       string          `json:"country" validate:"required,max=255"`
	StarRating    int             `json:"star_rating" validate:"required,gte=1,lte=5"`
	ImageURL      *string         `json:"image_url" validate:"omitempty,max=512"`
	DescriptionRu *string         `json:"description_ru"`
	DescriptionEn *string         `json:"description_en"`
	DescriptionFr *string         `json:"description_fr"`
	RoomTypesJSON datatypes.JSON  `json:"room_types_json"`
	PriceFrom     decimal.Decimal `json:"price_from"`
	IsActive      *bool           `json:"is_active"`
}

func (r *HotelCreateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if !r.PriceFrom.IsPositive() {
		return apperror.InvalidField("price_from", "must be greater than 0")
	}
	if !types.IsJSONArray(r.RoomTypesJSON) {
		return apperror.InvalidField("room_types_json", "must be a list")
	}
	return nil
}

func (r HotelCreateRequest) ToModel() hotelModel.Hotel {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return hotelModel.Hotel{
		Name:          r.Name,
		City:          r.City,
		Country:       r.Country,
		StarRating:    r.StarRating,
		ImageURL:      r.ImageURL,
		DescriptionRu: r.DescriptionRu,
		DescriptionEn: r.DescriptionEn,
		DescriptionFr: r.DescriptionFr,
		RoomTypesJSON: r.RoomTypesJSON,
		PriceFrom:     r.PriceFrom,
		IsActive:      active,
	}
}

type HotelUpdateRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=255"`
	City          *string          `json:"city" validate:"omitempty,min=1,max=255"`
	Country       *string          `json:"country" validate:"omitempty,min=1,max=255"`
	StarRating    *int             `json:"star_rating" validate:"omitempty,gte=1,lte=5"`
	ImageURL      *string          `json:"image_url" validate:"omitempty,max=512"`
	DescriptionRu *string          `json:"description_ru"`
	DescriptionEn *string          `json:"description_en"`
	DescriptionFr *string          `json:"description_fr"`
	RoomTypesJSON *datatypes.JSON  `json:"room_types_json"`
	PriceFrom     *decimal.Decimal `json:"price_from"`
	IsActive      *bool            `json:"is_active"`
}

func (r *HotelUpdateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if r.PriceFrom != nil && !r.PriceFrom.IsPositive() {
		return apperror.InvalidField("price_from", "must be greater than 0")
	}
	if r.RoomTypesJSON != nil && !types.IsJSONArray(*r.RoomTypesJSON) {
		return apperror.InvalidField("room_types_json", "must be a list")
	}
	return nil
}

func (r HotelUpdateRequest) Apply(m *hotelModel.Hotel) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.City != nil {
		m.City = *r.City
	}
	if r.Country != nil {
		m.Country = *r.Country
	}
	if r.StarRating != nil {
		m.StarRating = *r.StarRating
	}
	if r.ImageURL != nil {
		m.ImageURL = r.ImageURL
	}
	if r.DescriptionRu != nil {
		m.DescriptionRu = r.DescriptionRu
	}
	if r.DescriptionEn != nil {
		m.DescriptionEn = r.DescriptionEn
	}
	if r.DescriptionFr != nil {
		m.DescriptionFr = r.DescriptionFr
	}
	if r.RoomTypesJSON != nil {
		m.RoomTypesJSON = *r.RoomTypesJSON
	}
	if r.PriceFrom != nil {
		m.PriceFrom = *r.PriceFrom
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}
