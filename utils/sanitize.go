package utils

import (
	"github.com/microcosm-cc/bluemonday"
)

var (
	richTextPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

// SanitizeHTML keeps user-generated formatting and drops scripts, handlers and unsafe URLs.
func SanitizeHTML(s string) string {
	return richTextPolicy.Sanitize(s)
}

// StripHTML removes every tag.
func StripHTML(s string) string {
	return plainTextPolicy.Sanitize(s)
}

func StripHTMLPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := StripHTML(*s)
	return &v
}
