package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/catalog"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/dashboard"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/config"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/logger"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/redis"
)

type stubFetcher struct {
	profile  *codeforces.UserProfile
	err      error
	problems []codeforces.Problem
}

func (s *stubFetcher) UserInfo(ctx context.Context, handle string) (*codeforces.UserProfile, error) {
	return s.profile, s.err
}

func (s *stubFetcher) UserSubmissions(ctx context.Context, handle string, count int) ([]codeforces.Submission, error) {
	return nil, nil
}

func (s *stubFetcher) RatingHistory(ctx context.Context, handle string) ([]codeforces.RatingPoint, error) {
	return nil, nil
}

func (s *stubFetcher) Problemset(ctx context.Context) ([]codeforces.Problem, error) {
	return s.problems, nil
}

func newHandler(t *testing.T, fetcher *stubFetcher) *DashboardHandler {
	t.Helper()

	rdb, err := redis.New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)

	store := catalog.NewStore(fetcher, redis.NewCache(rdb, "test"), time.Hour, logger.Nop())
	service := dashboard.NewService(fetcher, store, dashboard.DefaultConfig(), logger.Nop())
	return NewDashboardHandler(service, store, logger.Nop())
}

func intPtr(v int) *int { return &v }

func TestGetDashboard(t *testing.T) {
	handler := newHandler(t, &stubFetcher{
		profile: &codeforces.UserProfile{Handle: "somebody", Rank: "expert", Rating: intPtr(1700)},
	})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/user/somebody/dashboard", nil),
		map[string]string{"handle": "somebody"})
	rec := httptest.NewRecorder()

	handler.GetDashboard(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var view dashboard.View
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	require.NotNil(t, view.Profile)
	assert.Equal(t, "somebody", view.Profile.Handle)
	assert.Equal(t, "#1f77b4", view.RankColor)
}

func TestGetDashboardUnknownUser(t *testing.T) {
	handler := newHandler(t, &stubFetcher{err: codeforces.ErrNotFound})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/user/ghost/dashboard", nil),
		map[string]string{"handle": "ghost"})
	rec := httptest.NewRecorder()

	handler.GetDashboard(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "Could not fetch user")
}

func TestGetRecommendations(t *testing.T) {
	handler := newHandler(t, &stubFetcher{
		profile: &codeforces.UserProfile{Handle: "somebody", Rating: intPtr(1500)},
		problems: []codeforces.Problem{
			{ContestID: 1, Index: "A", Name: "Near", Rating: intPtr(1500), Tags: codeforces.TagList{"dp"}},
			{ContestID: 2, Index: "B", Name: "Far", Rating: intPtr(2400), Tags: codeforces.TagList{"dp"}},
		},
	})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/user/somebody/recommendations?tag=dp", nil),
		map[string]string{"handle": "somebody"})
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "dp", resp.Tag)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "Near", resp.Recommendations[0].Name)
}

func TestGetRecommendationsMissingTag(t *testing.T) {
	handler := newHandler(t, &stubFetcher{})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/user/somebody/recommendations", nil),
		map[string]string{"handle": "somebody"})
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecommendationsBadCount(t *testing.T) {
	handler := newHandler(t, &stubFetcher{})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/user/somebody/recommendations?tag=dp&count=zero", nil),
		map[string]string{"handle": "somebody"})
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRecommendationsEmptyResult(t *testing.T) {
	handler := newHandler(t, &stubFetcher{
		profile:  &codeforces.UserProfile{Handle: "somebody"},
		problems: []codeforces.Problem{},
	})

	req := mux.SetURLVars(httptest.NewRequest("GET", "/api/user/somebody/recommendations?tag=dp", nil),
		map[string]string{"handle": "somebody"})
	rec := httptest.NewRecorder()

	handler.GetRecommendations(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "an empty catalog is not an error")

	var resp RecommendationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Recommendations)
	assert.Equal(t, "No problems found for this tag.", resp.Message)
}

func TestProblemsetStatusAndRefresh(t *testing.T) {
	handler := newHandler(t, &stubFetcher{
		problems: []codeforces.Problem{{Name: "A"}, {Name: "B"}},
	})

	// Before any fetch the catalog reports not loaded.
	rec := httptest.NewRecorder()
	handler.GetProblemsetStatus(rec, httptest.NewRequest("GET", "/api/problemset/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var status ProblemsetStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.False(t, status.Loaded)

	// Refresh loads it.
	rec = httptest.NewRecorder()
	handler.RefreshProblemset(rec, httptest.NewRequest("POST", "/api/problemset/refresh", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.GetProblemsetStatus(rec, httptest.NewRequest("GET", "/api/problemset/status", nil))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Loaded)
	assert.Equal(t, 2, status.Problems)
}
