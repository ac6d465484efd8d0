package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/crediwise/crediwise/internal/models"
)

type recommendRequest struct {
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	MerchantName string  `json:"merchant_name"`
}

// Recommend ranks the user's instruments for a transaction
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Amount == 0 || req.Category == "" {
		respondError(w, http.StatusBadRequest, "amount and category are required")
		return
	}

	rec, err := h.svc.Recommend(r.Context(), req.Amount, models.Category(req.Category), req.MerchantName)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// RecommendationHistory lists recent recommendation logs
func (h *Handler) RecommendationHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.svc.RecommendationHistory(r.Context(), limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if logs == nil {
		logs = []models.RecommendationLog{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"logs": logs})
}
