package handler

import (
	"net/http"
	"strconv"
)

// Overview returns spend and reward totals for the period
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.svc.Overview(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, overview)
}

// MonthlyTrend returns the per-month spend/reward trend
func (h *Handler) MonthlyTrend(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	trend, err := h.svc.MonthlyTrend(r.Context(), months)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"trend": trend})
}

// CategoryBreakdown returns per-category totals for the period
func (h *Handler) CategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	breakdown, err := h.svc.CategoryBreakdown(r.Context(), period)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"breakdown": breakdown, "period": period})
}

// InstrumentPerformance returns realized rewards per instrument
func (h *Handler) InstrumentPerformance(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	performance, err := h.svc.InstrumentPerformance(r.Context(), period)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"performance": performance, "period": period})
}

// HighSpendAlerts flags categories trending above their recent average
func (h *Handler) HighSpendAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.svc.HighSpendAlerts(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}
