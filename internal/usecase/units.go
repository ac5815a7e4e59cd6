package usecase

import (
	"fmt"
	"math"
	"time"
)

const metersPerMile = 1609.34

// MilesToMeters converts a search radius in miles to whole meters, the unit
// the deal feed expects.
func MilesToMeters(miles float64) int {
	return int(math.Round(miles * metersPerMile))
}

// FreshnessCutoff returns the YYYY-MM-DD date daysBack days before now,
// used as the minimum-freshness bound on deal-feed queries.
func FreshnessCutoff(now time.Time, daysBack int) string {
	return now.AddDate(0, 0, -daysBack).Format("2006-01-02")
}

// FormatDistance renders a distance in meters as a human-friendly string:
// feet when very close, one decimal of miles under ten, whole miles beyond.
func FormatDistance(distanceM float64) string {
	if math.IsNaN(distanceM) || distanceM < 0 {
		return ""
	}

	miles := distanceM / metersPerMile
	if miles < 0.1 {
		feet := distanceM * 3.28084
		return fmt.Sprintf("%.0f ft", feet)
	}
	if miles < 10 {
		return fmt.Sprintf("%.1f mi", miles)
	}
	return fmt.Sprintf("%.0f mi", math.Round(miles))
}
