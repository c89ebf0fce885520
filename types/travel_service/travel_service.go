package travel_service

import (
	"travel-agency/apperror"
	serviceModel "travel-agency/models/travel_service"
	"travel-agency/types"

	"github.com/shopspring/decimal"
)

type ServiceCreateRequest struct {
	NameRu        string           `json:"name_ru" validate:"required,max=255"`
	NameEn        string           `json:"name_en" validate:"required,max=255"`
	NameFr        string           `json:"name_fr" validate:"required,max=255"`
	DescriptionRu *string          `json:"description_ru"`
	DescriptionEn *string          `json:"description_en"`
	DescriptionFr *string          `json:"description_fr"`
	Price         *decimal.Decimal `json:"price"`
	Icon          *string          `json:"icon" validate:"omitempty,max=100"`
	IsActive      *bool            `json:"is_active"`
}

func (r *ServiceCreateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if r.Price != nil && r.Price.IsNegative() {
		return apperror.InvalidField("price", "must not be negative")
	}
	return nil
}

func (r ServiceCreateRequest) ToModel() serviceModel.TravelService {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	m := serviceModel.TravelService{
		NameRu:        r.NameRu,
		NameEn:        r.NameEn,
		NameFr:        r.NameFr,
		DescriptionRu: r.DescriptionRu,
		DescriptionEn: r.DescriptionEn,
		DescriptionFr: r.DescriptionFr,
		Icon:          r.Icon,
		IsActive:      active,
	}
	if r.Price != nil {
		m.Price = decimal.NewNullDecimal(*r.Price)
	}
	return m
}

type ServiceUpdateRequest struct {
	NameRu        *string          `json:"name_ru" validate:"omitempty,min=1,max=255"`
	NameEn        *string          `json:"name_en" validate:"omitempty,min=1,max=255"`
	NameFr        *string          `json:"name_fr" validate:"omitempty,min=1,max=255"`
	DescriptionRu *string          `json:"description_ru"`
	DescriptionEn *string          `json:"description_en"`
	DescriptionFr *string          `json:"description_fr"`
	Price         *decimal.Decimal `json:"price"`
	Icon          *string          `json:"icon" validate:"omitempty,max=100"`
	IsActive      *bool            `json:"is_active"`
}

func (r *ServiceUpdateRequest) Validate() error {
	if err := types.ValidateStruct(r); err != nil {
		return err
	}
	if r.Price != nil && r.Price.IsNegative() {
		return apperror.InvalidField("price", "must not be negative")
	}
	return nil
}

func (r ServiceUpdateRequest) Apply(m *serviceModel.TravelService) {
	if r.NameRu != nil {
		m.NameRu = *r.NameRu
	}
	if r.NameEn != nil {
		m.NameEn = *r.NameEn
	}
	if r.NameFr != nil {
		m.NameFr = *r.NameFr
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
	if r.Price != nil {
		m.Price = decimal.NewNullDecimal(*r.Price)
	}
	if r.Icon != nil {
		m.Icon = r.Icon
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}
