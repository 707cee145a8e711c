package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/analytics"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/catalog"
	"github.com/imunderthetree/Codeforces-Dashboard/internal/dashboard"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/logger"
)

// DashboardHandler handles dashboard API endpoints.
type DashboardHandler struct {
	service *dashboard.Service
	store   *catalog.Store
	logger  *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *dashboard.Service, store *catalog.Store, log *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		store:   store,
		logger:  log,
	}
}

// GetDashboard returns the full dashboard view for a handle.
// GET /api/user/{handle}/dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle := mux.Vars(r)["handle"]

	if handle == "" {
		respondError(w, http.StatusBadRequest, "Handle is required")
		return
	}

	view := h.service.Build(ctx, handle, time.Now())

	// Upstream failures degrade to empty sections; only a missing profile
	// makes the whole page unrenderable.
	if view.Profile == nil {
		respondError(w, http.StatusNotFound, "Could not fetch user. Check handle or network.")
		return
	}

	respondJSON(w, http.StatusOK, view)
}

// RecommendationsResponse wraps the recommendation list for one tag.
type RecommendationsResponse struct {
	Tag             string                     `json:"tag"`
	Recommendations []analytics.Recommendation `json:"recommendations"`
	Message         string                     `json:"message,omitempty"`
}

// GetRecommendations returns practice problems for a weak tag.
// GET /api/user/{handle}/recommendations?tag=dp&count=6
func (h *DashboardHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	handle := mux.Vars(r)["handle"]

	tag := r.URL.Query().Get("tag")
	if tag == "" {
		respondError(w, http.StatusBadRequest, "Query parameter 'tag' is required")
		return
	}

	count := analytics.DefaultRecommendationCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondError(w, http.StatusBadRequest, "Query parameter 'count' must be a positive integer")
			return
		}
		count = parsed
	}

	recs := h.service.Recommend(ctx, handle, tag, count)

	resp := RecommendationsResponse{
		Tag:             tag,
		Recommendations: recs,
	}
	if len(recs) == 0 {
		resp.Message = "No problems found for this tag."
	}

	respondJSON(w, http.StatusOK, resp)
}

// ProblemsetStatusResponse describes the catalog snapshot.
type ProblemsetStatusResponse struct {
	Loaded     bool   `json:"loaded"`
	Problems   int    `json:"problems"`
	AgeSeconds int64  `json:"ageSeconds"`
	Message    string `json:"message,omitempty"`
}

// GetProblemsetStatus returns catalog snapshot metadata.
// GET /api/problemset/status
func (h *DashboardHandler) GetProblemsetStatus(w http.ResponseWriter, r *http.Request) {
	size, age, ok := h.store.Size()

	resp := ProblemsetStatusResponse{
		Loaded:     ok,
		Problems:   size,
		AgeSeconds: int64(age.Seconds()),
	}
	if !ok {
		resp.Message = "Problem catalog not loaded yet."
	}

	respondJSON(w, http.StatusOK, resp)
}

// RefreshProblemset forces a catalog re-fetch.
// POST /api/problemset/refresh
func (h *DashboardHandler) RefreshProblemset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	size, err := h.store.Refresh(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to refresh problem catalog")
		respondError(w, http.StatusBadGateway, "Could not refresh problem catalog")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "success",
		"problems": size,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
