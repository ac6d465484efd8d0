package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crediwise/crediwise/internal/models"
	"github.com/crediwise/crediwise/internal/repository"
	"github.com/gorilla/mux"
)

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// ListInstruments returns the user's active instruments
func (h *Handler) ListInstruments(w http.ResponseWriter, r *http.Request) {
	instruments, err := h.svc.ListInstruments(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if instruments == nil {
		instruments = []models.PaymentInstrument{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"instruments": instruments, "count": len(instruments)})
}

// CreateInstrument registers a new payment instrument
func (h *Handler) CreateInstrument(w http.ResponseWriter, r *http.Request) {
	var inst models.PaymentInstrument
	if err := json.NewDecoder(r.Body).Decode(&inst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateInstrument(r.Context(), &inst); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"instrument": inst})
}

// GetInstrument returns one instrument
func (h *Handler) GetInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid instrument id")
		return
	}
	inst, err := h.svc.GetInstrument(r.Context(), id)
	if err != nil {
		if repository.ErrInstrumentNotFound(err) {
			respondError(w, http.StatusNotFound, "instrument not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"instrument": inst})
}

// UpdateInstrument edits an instrument and its reward configuration
func (h *Handler) UpdateInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid instrument id")
		return
	}
	var inst models.PaymentInstrument
	if err := json.NewDecoder(r.Body).Decode(&inst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	inst.ID = id
	if err := h.svc.UpdateInstrument(r.Context(), &inst); err != nil {
		if repository.ErrInstrumentNotFound(err) {
			respondError(w, http.StatusNotFound, "instrument not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"instrument": inst})
}

// DeleteInstrument deactivates an instrument
func (h *Handler) DeleteInstrument(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid instrument id")
		return
	}
	if err := h.svc.RemoveInstrument(r.Context(), id); err != nil {
		if repository.ErrInstrumentNotFound(err) {
			respondError(w, http.StatusNotFound, "instrument not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Instrument removed."})
}
