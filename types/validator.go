package types

import (
	"reflect"
	"strings"

	"travel-agency/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateStruct runs the validate tags of s and converts failures into a Validation error.
func ValidateStruct(s interface{}) error {
	return apperror.FromValidator(validate.Struct(s))
}

// IsJSONArray reports whether raw is absent, null or a JSON array.
func IsJSONArray(raw []byte) bool {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return true
	}
	return strings.HasPrefix(trimmed, "[")
}
