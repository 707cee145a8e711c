package analytics

import "strings"

// Display colors for Codeforces ranks, keyed by lowercase rank label.
var rankColors = map[string]string{
	"newbie":                    "#8a8a8a",
	"pupil":                     "#2ecc71",
	"specialist":                "#03a89e",
	"expert":                    "#1f77b4",
	"candidate master":          "#9b59b6",
	"master":                    "#e67e22",
	"international master":      "#e67e22",
	"grandmaster":               "#e74c3c",
	"international grandmaster": "#c0392b",
	"legendary grandmaster":     "#900c3f",
}

// RankColor maps a rank label to its display color, case-insensitively.
// Absent ranks get a neutral gray, unknown ranks a slightly lighter one.
func RankColor(rank string) string {
	if rank == "" {
		return "#888888"
	}
	if color, ok := rankColors[strings.ToLower(rank)]; ok {
		return color
	}
	return "#999999"
}

// RatingBand is one shaded rating range behind the rating-history chart.
type RatingBand struct {
	Low   int    `json:"low"`
	High  int    `json:"high"`
	Color string `json:"color"`
}

// RatingBands returns the fixed rank-colored bands for the rating chart.
func RatingBands() []RatingBand {
	return []RatingBand{
		{0, 1199, "#888888"},
		{1200, 1399, "#2ecc71"},
		{1400, 1599, "#03a89e"},
		{1600, 1899, "#1f77b4"},
		{1900, 2099, "#9b59b6"},
		{2100, 2299, "#e67e22"},
		{2300, 3500, "#e74c3c"},
	}
}
