package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/crediwise/crediwise/internal/models"
	"github.com/crediwise/crediwise/internal/repository"
)

func expenseFilterFromQuery(r *http.Request) models.ExpenseFilter {
	q := r.URL.Query()
	filter := models.ExpenseFilter{
		Category: models.Category(q.Get("category")),
	}
	if v := q.Get("instrument_id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.InstrumentID = &id
		}
	}
	if v := q.Get("start_date"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			filter.StartDate = &d
		}
	}
	if v := q.Get("end_date"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err == nil {
			filter.EndDate = &d
		}
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	return filter
}

// ListExpenses returns a filtered, paginated expense listing
func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	filter := expenseFilterFromQuery(r)
	expenses, total, err := h.svc.ListExpenses(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if expenses == nil {
		expenses = []models.Expense{}
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pages := (total + limit - 1) / limit
	respondJSON(w, http.StatusOK, map[string]any{
		"expenses": expenses,
		"total":    total,
		"page":     page,
		"pages":    pages,
	})
}

// CreateExpense records a new expense
func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var exp models.Expense
	if err := json.NewDecoder(r.Body).Decode(&exp); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.svc.CreateExpense(r.Context(), &exp); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"expense": exp})
}

// GetExpense returns one expense
func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	exp, err := h.svc.GetExpense(r.Context(), id)
	if err != nil {
		if repository.ErrExpenseNotFound(err) {
			respondError(w, http.StatusNotFound, "expense not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"expense": exp})
}

// UpdateExpense edits an expense
func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	var exp models.Expense
	if err := json.NewDecoder(r.Body).Decode(&exp); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	exp.ID = id
	if err := h.svc.UpdateExpense(r.Context(), &exp); err != nil {
		if repository.ErrExpenseNotFound(err) {
			respondError(w, http.StatusNotFound, "expense not found")
			return
		}
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"expense": exp})
}

// DeleteExpense removes an expense
func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid expense id")
		return
	}
	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		if repository.ErrExpenseNotFound(err) {
			respondError(w, http.StatusNotFound, "expense not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted."})
}

// MonthlySummary returns per-month aggregates
func (h *Handler) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	months, _ := strconv.Atoi(r.URL.Query().Get("months"))
	summary, err := h.svc.MonthlySummaries(r.Context(), months)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

// CategorySummary returns per-category aggregates
func (h *Handler) CategorySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.CategorySummaries(r.Context(), expenseFilterFromQuery(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"summary": summary})
}

// TopMerchants returns merchants ranked by total spend
func (h *Handler) TopMerchants(w http.ResponseWriter, r *http.Request) {
	merchants, err := h.svc.TopMerchants(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"merchants": merchants})
}

// ExportStatement streams the user's expenses as an XML statement
func (h *Handler) ExportStatement(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.ExportStatement(r.Context(), expenseFilterFromQuery(r))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Content-Disposition", `attachment; filename="statement.xml"`)
	w.Write(out)
}
