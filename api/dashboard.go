package api

import (
	"net/http"
	"time"

	"log/slog"

	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/pkg/repository"
)

type DashboardHandler struct {
	compoundRepo repository.CompoundRepo
	doseRepo     repository.DoseRepo
}

func NewDashboardHandler(cr repository.CompoundRepo, dr repository.DoseRepo) *DashboardHandler {
	return &DashboardHandler{compoundRepo: cr, doseRepo: dr}
}

// Summary serves the dashboard stat cards: active compound count, lifetime
// dose count, doses in the trailing week and how many distinct compounds
// have ever been dosed.
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := r.Context()

	totalCompounds, err := h.compoundRepo.CountCompounds(ctx, userID, models.CompoundFilter{})
	if err != nil {
		logger.Error("count compounds", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	totalDoses, err := h.doseRepo.CountDoses(ctx, userID, models.DoseFilter{})
	if err != nil {
		logger.Error("count doses", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	weekAgo := time.Now().UTC().Add(-7 * 24 * time.Hour)
	dosesLast7Days, err := h.doseRepo.CountDosesSince(ctx, userID, weekAgo)
	if err != nil {
		logger.Error("count recent doses", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	distinct, err := h.doseRepo.CountDistinctCompoundsDosed(ctx, userID)
	if err != nil {
		logger.Error("count distinct compounds", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch summary")
		return
	}

	resp := map[string]any{
		"totalCompounds":         totalCompounds,
		"totalDoses":             totalDoses,
		"dosesLast7Days":         dosesLast7Days,
		"distinctCompoundsDosed": distinct,
	}

	writeJSON(w, resp, http.StatusOK)
}
