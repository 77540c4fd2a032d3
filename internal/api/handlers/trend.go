package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/sugup/internal/analysis"
	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

// TrendHandler handles trend snapshot and favorites API endpoints
type TrendHandler struct {
	snapshotRepo contracts.SnapshotRepository
	analyzer     *analysis.Analyzer
	ranker       *analysis.FavoritesRanker
	lookbackDays int
	minScore     int
	logger       *logger.Logger
}

// NewTrendHandler creates a new trend handler. lookbackDays and minScore are
// the favorites defaults; the query string can tighten but not disable them.
func NewTrendHandler(snapshotRepo contracts.SnapshotRepository, analyzer *analysis.Analyzer, ranker *analysis.FavoritesRanker, lookbackDays, minScore int, log *logger.Logger) *TrendHandler {
	return &TrendHandler{
		snapshotRepo: snapshotRepo,
		analyzer:     analyzer,
		ranker:       ranker,
		lookbackDays: lookbackDays,
		minScore:     minScore,
		logger:       log,
	}
}

// GetTrend returns the trend snapshot for a stock. The stored snapshot is
// served when present; live=1 forces a fresh computation from flow data.
// GET /api/stocks/{code}/trend?live=1
func (h *TrendHandler) GetTrend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := mux.Vars(r)["code"]

	if code == "" {
		respondError(w, http.StatusBadRequest, "stock code is required")
		return
	}

	if r.URL.Query().Get("live") != "1" {
		snap, err := h.snapshotRepo.GetLatest(ctx, code)
		if err != nil {
			h.logger.WithError(err).WithField("code", code).Error("Failed to get snapshot")
			respondError(w, http.StatusInternalServerError, "Failed to retrieve trend snapshot")
			return
		}
		if snap != nil {
			respondJSON(w, http.StatusOK, snap)
			return
		}
		// Fall through to a live computation when nothing is stored yet.
	}

	snap, err := h.analyzer.Analyze(ctx, code)
	if err != nil {
		if errors.Is(err, analysis.ErrNoData) {
			respondError(w, http.StatusNotFound, "no flow data for stock")
			return
		}
		h.logger.WithError(err).WithField("code", code).Error("Failed to analyze trend")
		respondError(w, http.StatusInternalServerError, "Failed to analyze trend")
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// ListByDate returns all snapshots for one analysis date
// GET /api/trends/{date}
func (h *TrendHandler) ListByDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date := mux.Vars(r)["date"]

	snaps, err := h.snapshotRepo.ListByDate(ctx, date)
	if err != nil {
		h.logger.WithError(err).WithField("date", date).Error("Failed to list snapshots")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve snapshots")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"date":      date,
		"count":     len(snaps),
		"snapshots": snaps,
	})
}

// GetFavorites returns securities under simultaneous foreign and
// institutional accumulation
// GET /api/favorites?lookback=5&min_score=60
func (h *TrendHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	lookback := h.lookbackDays
	if s := r.URL.Query().Get("lookback"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			lookback = v
		}
	}

	minScore := h.minScore
	if s := r.URL.Query().Get("min_score"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= h.minScore {
			minScore = v
		}
	}

	favorites, err := h.ranker.Rank(ctx, lookback, minScore)
	if err != nil {
		h.logger.WithError(err).Error("Failed to rank favorites")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve favorites")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"lookback_days": lookback,
		"min_score":     minScore,
		"count":         len(favorites),
		"favorites":     favorites,
	})
}

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
