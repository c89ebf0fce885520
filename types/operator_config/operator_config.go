package operator_config

import (
	"strings"

	operatorModel "travel-agency/models/operator_config"
	"travel-agency/types"
)

type OperatorConfigCreateRequest struct {
	LanguageCode  string `json:"language_code" validate:"required,min=2,max=5"`
	OperatorName  string `json:"operator_name" validate:"required,min=1,max=255"`
	OperatorEmail string `json:"operator_email" validate:"required,email,max=255"`
	IsActive      *bool  `json:"is_active"`
}

func (r *OperatorConfigCreateRequest) Validate() error {
	r.LanguageCode = strings.ToLower(strings.TrimSpace(r.LanguageCode))
	r.OperatorName = strings.TrimSpace(r.OperatorName)
	r.OperatorEmail = strings.TrimSpace(r.OperatorEmail)
	return types.ValidateStruct(r)
}

func (r OperatorConfigCreateRequest) ToModel() operatorModel.OperatorConfig {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return operatorModel.OperatorConfig{
		LanguageCode:  r.LanguageCode,
		OperatorName:  r.OperatorName,
		OperatorEmail: r.OperatorEmail,
		IsActive:      active,
	}
}

// OperatorConfigUpdateRequest carries the mutable fields only. The language code cannot change.
type OperatorConfigUpdateRequest struct {
	OperatorName  *string `json:"operator_name" validate:"omitempty,min=1,max=255"`
	OperatorEmail *string `json:"operator_email" validate:"omitempty,email,max=255"`
	IsActive      *bool   `json:"is_active"`
}

func (r *OperatorConfigUpdateRequest) Validate() error {
	if r.OperatorName != nil {
		name := strings.TrimSpace(*r.OperatorName)
		r.OperatorName = &name
	}
	if r.OperatorEmail != nil {
		email := strings.TrimSpace(*r.OperatorEmail)
		r.OperatorEmail = &email
	}
	return types.ValidateStruct(r)
}

func (r OperatorConfigUpdateRequest) Apply(m *operatorModel.OperatorConfig) {
	if r.OperatorName != nil {
		m.OperatorName = strings.TrimSpace(*r.OperatorName)
	}
	if r.OperatorEmail != nil {
		m.OperatorEmail = strings.TrimSpace(*r.OperatorEmail)
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
}
