package event

import (
	"strings"
)

// fallbackKeywords is the static safety net used when the status column's
// configured options cannot be fetched. Matching is case-insensitive
// substring, so "Confirmed - paid" and "Potential Lead" both qualify.
var fallbackKeywords = []string{
	"confirmed",
	"live",
	"followup",
	"follow-up",
	"follow up",
	"complete",
	"potential",
	"provisional",
}

// IsEligibleStatus reports whether a status marks a row as a bookable
// event. When allowedOptions is non-empty the status must contain one of
// them; otherwise the static keyword set applies. Empty status is never
// eligible.
func IsEligibleStatus(status string, allowedOptions []string) bool {
	s := strings.ToLower(strings.TrimSpace(status))
	if s == "" {
		return false
	}

	if len(allowedOptions) > 0 {
		for _, option := range allowedOptions {
			if strings.Contains(s, strings.ToLower(option)) {
				return true
			}
		}
		return false
	}

	for _, keyword := range fallbackKeywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

// FilterStatusOptions reduces the status column's configured choices to
// those representing bookable states, i.e. the ones containing a fallback
// keyword. Options like "Cancelled" or "Draft" are dropped so they never
// widen eligibility.
func FilterStatusOptions(options []string) []string {
	filtered := make([]string, 0, len(options))
	for _, option := range options {
		lower := strings.ToLower(option)
		for _, keyword := range fallbackKeywords {
			if strings.Contains(lower, keyword) {
				filtered = append(filtered, option)
				break
			}
		}
	}
	return filtered
}
