package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/sugup/internal/contracts"
	"github.com/wonny/sugup/pkg/logger"
)

// StockHandler handles universe and flow API endpoints
// ⭐ SSOT: 종목/수급 데이터 API 핸들러는 이 구조체에서만
type StockHandler struct {
	securityRepo contracts.SecurityRepository
	flowRepo     contracts.FlowRepository
	logger       *logger.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(securityRepo contracts.SecurityRepository, flowRepo contracts.FlowRepository, log *logger.Logger) *StockHandler {
	return &StockHandler{
		securityRepo: securityRepo,
		flowRepo:     flowRepo,
		logger:       log,
	}
}

// ListSecurities returns the tracked universe
// GET /api/stocks
func (h *StockHandler) ListSecurities(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	securities, err := h.securityRepo.ListTracked(ctx)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list securities")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve securities")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":      len(securities),
		"securities": securities,
	})
}

// GetFlow returns recent daily flow records for a stock
// GET /api/stocks/{code}/flow?days=20
func (h *StockHandler) GetFlow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	code := mux.Vars(r)["code"]

	if code == "" {
		respondError(w, http.StatusBadRequest, "stock code is required")
		return
	}

	days := 20
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		if d, err := strconv.Atoi(daysStr); err == nil && d > 0 {
			days = d
		}
	}

	records, err := h.flowRepo.GetRecent(ctx, code, days)
	if err != nil {
		h.logger.WithError(err).WithField("code", code).Error("Failed to get flow records")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve flow records")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"code":    code,
		"count":   len(records),
		"records": records,
	})
}
