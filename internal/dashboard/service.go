package dashboard

import (
	"context"
	"time"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/analytics"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/logger"
)

// Fetcher is the slice of the Codeforces client the service uses.
type Fetcher interface {
	UserInfo(ctx context.Context, handle string) (*codeforces.UserProfile, error)
	UserSubmissions(ctx context.Context, handle string, count int) ([]codeforces.Submission, error)
	RatingHistory(ctx context.Context, handle string) ([]codeforces.RatingPoint, error)
}

// Catalog supplies the session's problemset snapshot.
type Catalog interface {
	Get(ctx context.Context) ([]codeforces.Problem, error)
}

// Config tunes the dashboard computation.
type Config struct {
	SubmissionCount int // submissions fetched per user
	HeatmapDays     int // trailing activity window
	MinTagAttempts  int
	WeakTagCount    int
	SampleSeed      int64
}

// DefaultConfig mirrors the dashboard's original tuning.
func DefaultConfig() Config {
	return Config{
		SubmissionCount: 800,
		HeatmapDays:     analytics.DefaultHeatmapDays,
		MinTagAttempts:  analytics.DefaultMinAttempts,
		WeakTagCount:    analytics.DefaultWeakTagCount,
		SampleSeed:      analytics.DefaultSampleSeed,
	}
}

// Service runs the fetch-then-compute cycle behind every dashboard view.
//
// It is also the error downgrade boundary: fetch failures are logged here and
// turned into empty sections, so analytics and handlers only ever see
// "no data", never an upstream error.
type Service struct {
	fetcher Fetcher
	catalog Catalog
	config  Config
	logger  *logger.Logger
}

// NewService creates a dashboard service.
func NewService(fetcher Fetcher, catalog Catalog, cfg Config, log *logger.Logger) *Service {
	if cfg.SubmissionCount <= 0 {
		cfg.SubmissionCount = DefaultConfig().SubmissionCount
	}
	return &Service{
		fetcher: fetcher,
		catalog: catalog,
		config:  cfg,
		logger:  log,
	}
}

// View is everything one dashboard render needs. A nil Profile means the
// user could not be fetched; the other sections degrade to empty slices.
type View struct {
	Handle        string                   `json:"handle"`
	Profile       *codeforces.UserProfile  `json:"profile,omitempty"`
	RankColor     string                   `json:"rankColor"`
	Streaks       analytics.Streaks        `json:"streaks"`
	WeakTags      []analytics.WeakTag      `json:"weakTags"`
	RatingHistory []codeforces.RatingPoint `json:"ratingHistory"`
	RatingBands   []analytics.RatingBand   `json:"ratingBands"`
	Heatmap       []analytics.HeatmapCell  `json:"heatmap"`
}

// Build fetches everything for a handle and reduces it into a View.
// today anchors the streak and heatmap computations.
func (s *Service) Build(ctx context.Context, handle string, today time.Time) *View {
	view := &View{
		Handle:        handle,
		WeakTags:      []analytics.WeakTag{},
		RatingHistory: []codeforces.RatingPoint{},
		Heatmap:       []analytics.HeatmapCell{},
		RatingBands:   analytics.RatingBands(),
	}

	profile, err := s.fetcher.UserInfo(ctx, handle)
	if err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("Could not fetch user profile")
	} else {
		view.Profile = profile
	}
	view.RankColor = analytics.RankColor(rankOf(profile))

	subs, err := s.fetcher.UserSubmissions(ctx, handle, s.config.SubmissionCount)
	if err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("Could not fetch submissions")
		subs = nil
	}

	view.Streaks = analytics.ComputeStreaks(subs, today)
	view.WeakTags = analytics.WeakTags(subs, s.config.MinTagAttempts, s.config.WeakTagCount)
	view.Heatmap = analytics.ActivityHeatmap(subs, s.config.HeatmapDays, today)

	history, err := s.fetcher.RatingHistory(ctx, handle)
	if err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("Could not fetch rating history")
	} else {
		view.RatingHistory = history
	}

	return view
}

// Recommend re-runs the recommendation cycle for a clicked weak tag, using
// the cached catalog and the user's current rating as the proximity anchor.
func (s *Service) Recommend(ctx context.Context, handle, tag string, n int) []analytics.Recommendation {
	problems, err := s.catalog.Get(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("Could not load problem catalog")
		return []analytics.Recommendation{}
	}

	var userRating *int
	if profile, err := s.fetcher.UserInfo(ctx, handle); err != nil {
		s.logger.WithError(err).WithField("handle", handle).Warn("Could not fetch user for recommendation anchor")
	} else {
		userRating = profile.Rating
	}

	return analytics.RecommendForTag(problems, tag, n, userRating, s.config.SampleSeed)
}

func rankOf(p *codeforces.UserProfile) string {
	if p == nil {
		return ""
	}
	return p.Rank
}
