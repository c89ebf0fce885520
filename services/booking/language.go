package booking

import (
	"strings"

	"travel-agency/config"
)

// ResolveLanguage picks the booking language: the explicit hint when supported,
// otherwise the primary subtag of the first Accept-Language entry when supported,
// otherwise the default. Quality values are ignored; only the first entry counts.
func ResolveLanguage(explicit, acceptLanguage string, langs config.LanguageConfig) string {
	if code := strings.ToLower(strings.TrimSpace(explicit)); langs.IsSupported(code) {
		return code
	}

	first, _, _ := strings.Cut(acceptLanguage, ",")
	first, _, _ = strings.Cut(first, ";")
	primary, _, _ := strings.Cut(first, "-")
	if code := strings.ToLower(strings.TrimSpace(primary)); langs.IsSupported(code) {
		return code
	}

	return langs.Default
}
