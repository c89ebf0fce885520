package types

import "travel-agency/apperror"

type ApiResponse struct {
	Message string                `json:"message"`
	Status  int                   `json:"status"`
	Token   string                `json:"token,omitempty"`
	Data    interface{}           `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}
