package analytics

import (
	"time"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
)

// DefaultHeatmapDays is the trailing window shown on the activity heatmap.
const DefaultHeatmapDays = 120

// HeatmapCell is one day on the activity heatmap. Weekday is 0=Monday..6=Sunday
// and Week is the column index counted from the window start.
type HeatmapCell struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Count   int    `json:"count"`
	Weekday int    `json:"weekday"`
	Week    int    `json:"week"`
}

// ActivityHeatmap buckets submission counts per calendar day over the
// trailing window ending at today. Every day in the window is emitted, zero
// counts included, so the grid renders without gaps. All submissions count,
// not just accepted ones.
func ActivityHeatmap(subs []codeforces.Submission, days int, today time.Time) []HeatmapCell {
	if days <= 0 {
		days = DefaultHeatmapDays
	}

	end := dayOf(today)
	start := end.AddDate(0, 0, -days)

	counts := make(map[time.Time]int)
	for _, s := range subs {
		if s.CreatedAt.IsZero() {
			continue
		}
		d := dayOf(s.CreatedAt)
		if d.Before(start) || d.After(end) {
			continue
		}
		counts[d]++
	}

	cells := make([]HeatmapCell, 0, days+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		offset := int(d.Sub(start).Hours() / 24)
		cells = append(cells, HeatmapCell{
			Date:    d.Format("2006-01-02"),
			Count:   counts[d],
			Weekday: mondayIndexed(d.Weekday()),
			Week:    offset / 7,
		})
	}

	return cells
}

// mondayIndexed converts Go's Sunday-first weekday to Monday-first.
func mondayIndexed(w time.Weekday) int {
	return (int(w) + 6) % 7
}
