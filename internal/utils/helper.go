package utils

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
)

var nonDigitRegex = regexp.MustCompile(`[^0-9+]`)

func StrPtr(s string) *string {
	return &s
}

func PtrString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NilIfEmpty maps blank strings to nil for nullable columns.
func NilIfEmpty(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

// NormalizePhone strips formatting so message channels get a dialable number.
// A leading 0 is replaced with the default country code.
func NormalizePhone(phone, defaultCountryCode string) string {
	p := nonDigitRegex.ReplaceAllString(strings.TrimSpace(phone), "")
	switch {
	case p == "":
		return ""
	case strings.HasPrefix(p, "+"):
		return p
	case strings.HasPrefix(p, "0"):
		return "+" + defaultCountryCode + strings.TrimPrefix(p, "0")
	default:
		return "+" + p
	}
}

func WriteJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
