package tour

import (
	"travel-agency/apperror"
	tourModel "travel-agency/models/tour"
	"travel-agency/types"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type TourCreateRequest struct {
	TitleRu       string          `json:"title_ru" validate:"required,max=255"`
	TitleEn       string          `json:"title_en" validate:"required,max=255"`
	TitleFr       string          `json:"title_fr" validate:"required,max=255"`
	DescriptionRu string          `json:"description_ru" validate:"required"`
	DescriptionEn string          `json:"description_en" validate:"required"`
	DescriptionFr string          `json:"description_fr" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	DurationDays  int             `json:"duration_days" validate:"required,gt=0"`
	Destination   string          `json:"destination" validate:"required,max=255"`
	ItineraryJSON datatypes.JSON  `json:"itinerary_json"`
	ImagesJSON    datatypes.JSON  `json:"images_json"`
	CoverImage    *string         `json:"cover_image" validate:"omitempty,max=512"`
	IsActive      *bool           `json:"is_active"`
}

func (r *TourCreateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if !r.Price.IsPositive() {
		return apperror.InvalidField("price", "must be greater than 0")
	}
	if !types.IsJSONArray(r.ItineraryJSON) {
		return apperror.InvalidField("itinerary_json", "must be a list")
	}
	if !types.IsJSONArray(r.ImagesJSON) {
		return apperror.InvalidField("images_json", "must be a list")
	}
	return nil
}

func (r TourCreateRequest) ToModel() tourModel.TourPackage {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return tourModel.TourPackage{
		TitleRu:       r.TitleRu,
		TitleEn:       r.TitleEn,
		TitleFr:       r.TitleFr,
		DescriptionRu: r.DescriptionRu,
		DescriptionEn: r.DescriptionEn,
		DescriptionFr: r.DescriptionFr,
		Price:         r.Price,
		DurationDays:  r.DurationDays,
		Destination:   r.Destination,
		ItineraryJSON: r.ItineraryJSON,
		ImagesJSON:    r.ImagesJSON,
		CoverImage:    r.CoverImage,
		IsActive:      active,
	}
}

type TourUpdateRequest struct {
	TitleRu       *string          `json:"title_ru" validate:"omitempty,min=1,max=255"`
	TitleEn       *string          `json:"title_en" validate:"omitempty,min=1,max=255"`
	TitleFr       *string          `json:"title_fr" validate:"omitempty,min=1,max=255"`
	DescriptionRu *string          `json:"description_ru"`
	DescriptionEn *string          `json:"description_en"`
	DescriptionFr *string          `json:"description_fr"`
	Price         *decimal.Decimal `json:"price"`
	DurationDays  *int             `json:"duration_days" validate:"omitempty,gt=0"`
	Destination   *string          `json:"destination" validate:"omitempty,min=1,max=255"`
	ItineraryJSON *datatypes.JSON  `json:"itinerary_json"`
	ImagesJSON    *datatypes.JSON  `json:"images_json"`
	CoverImage    *string          `json:"cover_image" validate:"omitempty,max=512"`
	IsActive      *bool            `json:"is_active"`
}

func (r *TourUpdateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if r.Price != nil && !r.Price.IsPositive() {
		return apperror.InvalidField("price", "must be greater than 0")
	}
	if r.ItineraryJSON != nil && !types.IsJSONArray(*r.ItineraryJSON) {
		return apperror.InvalidField("itinerary_json", "must be a list")
	}
	if r.ImagesJSON != nil && !types.IsJSONArray(*r.ImagesJSON) {
		return apperror.InvalidField("images_json", "must be a list")
	}
	return nil
}

func (r TourUpdateRequest) Apply(m *tourModel.TourPackage) {
	if r.TitleRu != nil {
		m.TitleRu = *r.TitleRu
	}
	if r.TitleEn != nil {
		m.TitleEn = *r.TitleEn
	}
	if r.TitleFr != nil {
		m.TitleFr = *r.TitleFr
	}
	if r.DescriptionRu != nil {
		m.DescriptionRu = *r.DescriptionRu
	}
	if r.DescriptionEn != nil {
		m.DescriptionEn = *r.DescriptionEn
	}
	if r.DescriptionFr != nil {
		m.DescriptionFr = *r.DescriptionFr
	}
	if r.Price != nil {
		m.Price = *r.Price
	}
	if r.DurationDays != nil {
		m.DurationDays = *r.DurationDays
	}
	if r.Destination != nil {
		m.Destination = *r.Destination
	}
	if r.ItineraryJSON != nil {
		m.ItineraryJSON = *r.ItineraryJSON
	}
	if r.ImagesJSON != nil {
		m.ImagesJSON = *r.ImagesJSON
	}
	if r.CoverImage != nil {
		m.CoverImage = r.CoverImage
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}
