package analytics

import (
	"sort"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
)

const (
	// DefaultMinAttempts filters out tags with too few submissions to rank.
	DefaultMinAttempts = 3

	// DefaultWeakTagCount is how many weak tags are reported.
	DefaultWeakTagCount = 6
)

// WeakTag is a topic tag with a low historical success rate.
type WeakTag struct {
	Tag           string  `json:"tag"`
	TotalAttempts int     `json:"totalAttempts"`
	SolvedCount   int     `json:"solvedCount"`
	SuccessRate   float64 `json:"successRate"`
}

// WeakTags ranks the topN tags with the lowest success rate among tags with
// at least minAttempts submissions, ascending by success rate. Ties break
// lexicographically by tag so the order is deterministic. A submission
// without a verdict still counts as an unsolved attempt for its tags.
func WeakTags(subs []codeforces.Submission, minAttempts, topN int) []WeakTag {
	if minAttempts <= 0 {
		minAttempts = DefaultMinAttempts
	}
	if topN <= 0 {
		topN = DefaultWeakTagCount
	}

	type tagCount struct {
		total  int
		solved int
	}
	counts := make(map[string]*tagCount)
	for _, s := range subs {
		for _, tag := range s.Tags {
			c, ok := counts[tag]
			if !ok {
				c = &tagCount{}
				counts[tag] = c
			}
			c.total++
			if s.Solved() {
				c.solved++
			}
		}
	}

	ranked := make([]WeakTag, 0, len(counts))
	for tag, c := range counts {
		if c.total < minAttempts {
			continue
		}
		ranked = append(ranked, WeakTag{
			Tag:           tag,
			TotalAttempts: c.total,
			SolvedCount:   c.solved,
			SuccessRate:   float64(c.solved) / float64(c.total),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].SuccessRate == ranked[j].SuccessRate {
			return ranked[i].Tag < ranked[j].Tag
		}
		return ranked[i].SuccessRate < ranked[j].SuccessRate
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}

	return ranked
}
