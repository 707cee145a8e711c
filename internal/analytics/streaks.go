package analytics

import (
	"sort"
	"time"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
)

// Streaks summarizes consecutive solving days for a user.
type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// ComputeStreaks counts consecutive calendar days with at least one accepted
// submission. Days are distinct dates, not submission counts. The reference
// date for the current streak is caller-supplied so results stay
// deterministic; submissions without a timestamp are ignored.
func ComputeStreaks(subs []codeforces.Submission, today time.Time) Streaks {
	dateSet := make(map[time.Time]struct{})
	for _, s := range subs {
		if !s.Solved() || s.CreatedAt.IsZero() {
			continue
		}
		dateSet[dayOf(s.CreatedAt)] = struct{}{}
	}

	if len(dateSet) == 0 {
		return Streaks{}
	}

	dates := make([]time.Time, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	// Longest: scan the sorted distinct dates, extending a run while each
	// date is exactly one day after the previous.
	longest, run := 1, 1
	for i := 1; i < len(dates); i++ {
		if dates[i-1].AddDate(0, 0, 1).Equal(dates[i]) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}

	// Current: walk backward from today while each day has a solve.
	current := 0
	for d := dayOf(today); ; d = d.AddDate(0, 0, -1) {
		if _, ok := dateSet[d]; !ok {
			break
		}
		current++
	}

	return Streaks{Current: current, Longest: longest}
}

// dayOf projects a timestamp to its calendar date. The date is keyed in UTC
// so map lookups never depend on zone offsets; callers must feed timestamps
// in a single consistent zone.
func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
