package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/internal/validation"
	"github.com/ironledger/ironledger/pkg/repository"
)

type DosesHandler struct {
	doseRepo     repository.DoseRepo
	compoundRepo repository.CompoundRepo
}

func NewDosesHandler(dr repository.DoseRepo, cr repository.CompoundRepo) *DosesHandler {
	return &DosesHandler{doseRepo: dr, compoundRepo: cr}
}

type createDoseRequest struct {
	CompoundID string  `json:"compoundId"`
	DateTime   string  `json:"dateTime"`
	DoseMg     float64 `json:"doseMg"`
	Route      string  `json:"route"`
	Site       string  `json:"site"`
	Mood       *int    `json:"mood"`
	Energy     *int    `json:"energy"`
	Libido     *int    `json:"libido"`
	Notes      string  `json:"notes"`
}

type updateDoseRequest struct {
	CompoundID *string  `json:"compoundId"`
	DateTime   *string  `json:"dateTime"`
	DoseMg     *float64 `json:"doseMg"`
	Route      *string  `json:"route"`
	Site       *string  `json:"site"`
	Mood       *int     `json:"mood"`
	Energy     *int     `json:"energy"`
	Libido     *int     `json:"libido"`
	Notes      *string  `json:"notes"`
}

func (h *DosesHandler) ListDoses(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	q := r.URL.Query()
	f := models.DoseFilter{Limit: 50, CompoundID: q.Get("compoundId")}
	if l := q.Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 500 {
			f.Limit = v
		}
	}
	if o := q.Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			f.Offset = v
		}
	}

	ctx := r.Context()

	doses, err := h.doseRepo.ListDoses(ctx, userID, f)
	if err != nil {
		logger.Error("list doses", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch doses")
		return
	}

	// total satisfies the same filter, independent of pagination
	total, err := h.doseRepo.CountDoses(ctx, userID, f)
	if err != nil {
		logger.Error("count doses", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch doses")
		return
	}

	if doses == nil {
		doses = []models.DoseLog{}
	}

	resp := map[string]any{
		"doses":  doses,
		"total":  total,
		"limit":  f.Limit,
		"offset": f.Offset,
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *DosesHandler) CreateDose(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ctx := r.Context()

	fieldErrs, err := validation.Validate(ctx, validation.DoseCreate, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(fieldErrs) > 0 {
		respondValidation(w, fieldErrs)
		return
	}

	var req createDoseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		respondValidation(w, []validation.FieldError{{Field: "dateTime", Message: "must be an RFC 3339 timestamp"}})
		return
	}

	// the referenced compound must belong to the caller; a foreign id is
	// reported the same as a missing one
	compound, err := h.compoundRepo.GetCompound(ctx, userID, req.CompoundID)
	if err != nil {
		logger.Error("get compound", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to create dose")
		return
	}
	if compound == nil {
		respondValidation(w, []validation.FieldError{{Field: "compoundId", Message: "compound not found"}})
		return
	}

	dose := models.DoseLog{
		UserID:     userID,
		CompoundID: req.CompoundID,
		DateTime:   dateTime.UTC(),
		DoseMg:     req.DoseMg,
		Route:      req.Route,
		Site:       req.Site,
		Mood:       req.Mood,
		Energy:     req.Energy,
		Libido:     req.Libido,
		Notes:      req.Notes,
	}

	if _, err := h.doseRepo.CreateDose(ctx, &dose); err != nil {
		logger.Error("create dose", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to create dose")
		return
	}

	dose.Compound = compound
	writeJSON(w, dose, http.StatusCreated)
}

func (h *DosesHandler) GetDose(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	dose, err := h.doseRepo.GetDose(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		logger.Error("get dose", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch dose")
		return
	}
	if dose == nil {
		respondError(w, http.StatusNotFound, "Dose not found")
		return
	}

	writeJSON(w, dose, http.StatusOK)
}

func (h *DosesHandler) UpdateDose(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	ctx := r.Context()

	fieldErrs, err := validation.Validate(ctx, validation.DoseUpdate, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(fieldErrs) > 0 {
		respondValidation(w, fieldErrs)
		return
	}

	var req updateDoseRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	dose, err := h.doseRepo.GetDose(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		logger.Error("get dose", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to update dose")
		return
	}
	if dose == nil {
		respondError(w, http.StatusNotFound, "Dose not found")
		return
	}

	if req.DateTime != nil {
		dateTime, err := time.Parse(time.RFC3339, *req.DateTime)
		if err != nil {
			respondValidation(w, []validation.FieldError{{Field: "dateTime", Message: "must be an RFC 3339 timestamp"}})
			return
		}
		dose.DateTime = dateTime.UTC()
	}
	if req.CompoundID != nil && *req.CompoundID != dose.CompoundID {
		compound, err := h.compoundRepo.GetCompound(ctx, userID, *req.CompoundID)
		if err != nil {
			logger.Error("get compound", slog.Any("err", err))
			respondError(w, http.StatusInternalServerError, "Failed to update dose")
			return
		}
		if compound == nil {
			respondValidation(w, []validation.FieldError{{Field: "compoundId", Message: "compound not found"}})
			return
		}
		dose.CompoundID = *req.CompoundID
		dose.Compound = compound
	}
	if req.DoseMg != nil {
		dose.DoseMg = *req.DoseMg
	}
	if req.Route != nil {
		dose.Route = *req.Route
	}
	if req.Site != nil {
		dose.Site = *req.Site
	}
	if req.Mood != nil {
		dose.Mood = req.Mood
	}
	if req.Energy != nil {
		dose.Energy = req.Energy
	}
	if req.Libido != nil {
		dose.Libido = req.Libido
	}
	if req.Notes != nil {
		dose.Notes = *req.Notes
	}

	if err := h.doseRepo.UpdateDose(ctx, dose); err != nil {
		logger.Error("update dose", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to update dose")
		return
	}

	writeJSON(w, dose, http.StatusOK)
}

func (h *DosesHandler) DeleteDose(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := r.Context()

	dose, err := h.doseRepo.GetDose(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		logger.Error("get dose", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to delete dose")
		return
	}
	if dose == nil {
		respondError(w, http.StatusNotFound, "Dose not found")
		return
	}

	if err := h.doseRepo.DeleteDose(ctx, userID, dose.ID); err != nil {
		logger.Error("delete dose", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to delete dose")
		return
	}

	writeJSON(w, map[string]any{"success": true}, http.StatusOK)
}
