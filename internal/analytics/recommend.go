package analytics

import (
	"math/rand"
	"sort"
	"strconv"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
)

const (
	// DefaultRecommendationCount is how many problems are recommended.
	DefaultRecommendationCount = 6

	// DefaultProblemRating substitutes for problems without a rating when
	// sorting by rating proximity.
	DefaultProblemRating = 1500

	// DefaultSampleSeed keeps the no-reference-rating sample reproducible.
	DefaultSampleSeed = 42
)

// Recommendation is a practice problem suggested for a weak tag.
type Recommendation struct {
	Name   string `json:"name"`
	Rating string `json:"rating"`
	Link   string `json:"link"`
}

// RecommendForTag picks up to n problems carrying the given tag.
//
// With a reference rating, candidates are ordered by absolute distance from
// it (unrated problems count as DefaultProblemRating). Without one, a seeded
// random sample without replacement is drawn so results stay reproducible.
// An empty or tag-less catalog yields an empty slice, never an error.
func RecommendForTag(problems []codeforces.Problem, tag string, n int, userRating *int, seed int64) []Recommendation {
	if n <= 0 {
		n = DefaultRecommendationCount
	}

	candidates := make([]codeforces.Problem, 0)
	for _, p := range problems {
		if p.Tags.Contains(tag) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return []Recommendation{}
	}

	if userRating != nil {
		ref := *userRating
		sort.SliceStable(candidates, func(i, j int) bool {
			return ratingDistance(candidates[i], ref) < ratingDistance(candidates[j], ref)
		})
	} else {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(candidates), func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}

	if len(candidates) > n {
		candidates = candidates[:n]
	}

	recs := make([]Recommendation, 0, len(candidates))
	for _, p := range candidates {
		recs = append(recs, Recommendation{
			Name:   nameOrFallback(p),
			Rating: ratingLabel(p),
			Link:   p.Link(),
		})
	}

	return recs
}

func ratingDistance(p codeforces.Problem, ref int) int {
	rating := DefaultProblemRating
	if p.Rating != nil {
		rating = *p.Rating
	}
	diff := rating - ref
	if diff < 0 {
		diff = -diff
	}
	return diff
}

func nameOrFallback(p codeforces.Problem) string {
	if p.Name == "" {
		return "Unnamed"
	}
	return p.Name
}

func ratingLabel(p codeforces.Problem) string {
	if p.Rating == nil {
		return "N/A"
	}
	return strconv.Itoa(*p.Rating)
}
