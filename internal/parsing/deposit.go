package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultDepositMonths is assumed when the deposit text carries no number.
const DefaultDepositMonths = 4.0

var (
	// multiplierRegexp captures the leading number of "<n>x" style ratios,
	// including the first leg of ranges like "3x-4x"
	multiplierRegexp = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*x`)
	// numberRegexp captures any bare number as a fallback
	numberRegexp = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseDepositMonths converts a free-text deposit-ratio string such as "3x",
// "3x-4x" or " 2.5X " into a months-equivalent. Malformed or empty input
// degrades to DefaultDepositMonths; it never fails.
func ParseDepositMonths(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return DefaultDepositMonths
	}

	if m := multiplierRegexp.FindStringSubmatch(text); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			return v
		}
	}

	if m := numberRegexp.FindString(text); m != "" {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			return v
		}
	}

	return DefaultDepositMonths
}
