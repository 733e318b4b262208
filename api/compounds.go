package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"log/slog"

	"github.com/gorilla/mux"
	"github.com/ironledger/ironledger/internal/models"
	"github.com/ironledger/ironledger/internal/validation"
	"github.com/ironledger/ironledger/pkg/repository"
)

type CompoundsHandler struct {
	compoundRepo repository.CompoundRepo
}

func NewCompoundsHandler(cr repository.CompoundRepo) *CompoundsHandler {
	return &CompoundsHandler{compoundRepo: cr}
}

type createCompoundRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Notes    string `json:"notes"`
}

type updateCompoundRequest struct {
	Name       *string `json:"name"`
	Category   *string `json:"category"`
	Notes      *string `json:"notes"`
	IsArchived *bool   `json:"isArchived"`
}

func (h *CompoundsHandler) ListCompounds(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	f := models.CompoundFilter{
		IncludeArchived: r.URL.Query().Get("includeArchived") == "true",
	}

	compounds, err := h.compoundRepo.ListCompounds(r.Context(), userID, f)
	if err != nil {
		logger.Error("list compounds", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch compounds")
		return
	}

	if compounds == nil {
		compounds = []models.Compound{}
	}

	writeJSON(w, map[string]any{"compounds": compounds}, http.StatusOK)
}

func (h *CompoundsHandler) CreateCompound(w http.ResponseWriter, r *http.Request) {
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

	fieldErrs, err := validation.Validate(ctx, validation.CompoundCreate, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(fieldErrs) > 0 {
		respondValidation(w, fieldErrs)
		return
	}

	var req createCompoundRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	compound := models.Compound{
		UserID:   userID,
		Name:     req.Name,
		Category: req.Category,
		Notes:    req.Notes,
	}

	if _, err := h.compoundRepo.CreateCompound(ctx, &compound); err != nil {
		logger.Error("create compound", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to create compound")
		return
	}

	writeJSON(w, compound, http.StatusCreated)
}

func (h *CompoundsHandler) GetCompound(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	compound, err := h.compoundRepo.GetCompound(r.Context(), userID, mux.Vars(r)["id"])
	if err != nil {
		logger.Error("get compound", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to fetch compound")
		return
	}
	if compound == nil {
		respondError(w, http.StatusNotFound, "Compound not found")
		return
	}

	writeJSON(w, compound, http.StatusOK)
}

func (h *CompoundsHandler) UpdateCompound(w http.ResponseWriter, r *http.Request) {
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

	fieldErrs, err := validation.Validate(ctx, validation.CompoundUpdate, body)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}
	if len(fieldErrs) > 0 {
		respondValidation(w, fieldErrs)
		return
	}

	var req updateCompoundRequest
	if err := json.Unmarshal(body, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	// ownership check first; the write never runs against a row the
	// caller does not own
	compound, err := h.compoundRepo.GetCompound(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		logger.Error("get compound", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to update compound")
		return
	}
	if compound == nil {
		respondError(w, http.StatusNotFound, "Compound not found")
		return
	}

	if req.Name != nil {
		compound.Name = *req.Name
	}
	if req.Category != nil {
		compound.Category = *req.Category
	}
	if req.Notes != nil {
		compound.Notes = *req.Notes
	}
	if req.IsArchived != nil {
		compound.IsArchived = *req.IsArchived
	}

	if err := h.compoundRepo.UpdateCompound(ctx, compound); err != nil {
		logger.Error("update compound", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to update compound")
		return
	}

	writeJSON(w, compound, http.StatusOK)
}

func (h *CompoundsHandler) DeleteCompound(w http.ResponseWriter, r *http.Request) {
	userID, ok := CurrentUserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx := r.Context()

	compound, err := h.compoundRepo.GetCompound(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		logger.Error("get compound", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to delete compound")
		return
	}
	if compound == nil {
		respondError(w, http.StatusNotFound, "Compound not found")
		return
	}

	if err := h.compoundRepo.DeleteCompound(ctx, userID, compound.ID); err != nil {
		if errors.Is(err, repository.ErrCompoundInUse) {
			respondError(w, http.StatusConflict, "Compound has dose logs")
			return
		}
		logger.Error("delete compound", slog.Any("err", err))
		respondError(w, http.StatusInternalServerError, "Failed to delete compound")
		return
	}

	writeJSON(w, map[string]any{"success": true}, http.StatusOK)
}
