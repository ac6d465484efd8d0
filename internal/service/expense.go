package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crediwise/crediwise/internal/models"
	"github.com/crediwise/crediwise/internal/utils/export"
)

// CreateExpense records a spend. A missing or "auto" category is resolved
// by the keyword categorizer, and the chosen instrument's running monthly
// spend is incremented.
func (s *Service) CreateExpense(ctx context.Context, exp *models.Expense) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if exp.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}
	if exp.Category == "" || exp.Category == "auto" {
		exp.Category = models.DetectCategory(exp.MerchantName, exp.Description)
	}
	if !models.IsValidCategory(string(exp.Category)) {
		return fmt.Errorf("invalid category %q", exp.Category)
	}
	if exp.Date.IsZero() {
		exp.Date = time.Now()
	}

	exp.UserID = userID
	if err := s.repo.CreateExpense(exp); err != nil {
		return err
	}

	if exp.PaymentInstrumentID != nil {
		if err := s.repo.IncrementMonthSpend(*exp.PaymentInstrumentID, exp.Amount); err != nil {
			return err
		}
	}

	s.log.Infof("Expense of %.2f recorded for user %d in %s", exp.Amount, userID, exp.Category)
	return nil
}

// ListExpenses lists the authenticated user's expenses with the filter
// applied. Returns the page plus the total match count.
func (s *Service) ListExpenses(ctx context.Context, filter models.ExpenseFilter) ([]models.Expense, int, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, 0, err
	}
	if filter.Category != "" && !models.IsValidCategory(string(filter.Category)) {
		return nil, 0, fmt.Errorf("invalid category %q", filter.Category)
	}
	return s.repo.FindExpenses(userID, filter)
}

// GetExpense returns one expense of the authenticated user.
func (s *Service) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindExpenseByID(id, userID)
}

// UpdateExpense saves changes to an existing expense.
func (s *Service) UpdateExpense(ctx context.Context, exp *models.Expense) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	if exp.Amount <= 0 {
		return fmt.Errorf("expense amount must be positive")
	}
	if !models.IsValidCategory(string(exp.Category)) {
		return fmt.Errorf("invalid category %q", exp.Category)
	}
	exp.UserID = userID
	return s.repo.UpdateExpense(exp)
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteExpense(id, userID)
}

// MonthlySummaries aggregates the user's expenses per month.
func (s *Service) MonthlySummaries(ctx context.Context, months int) ([]models.MonthlySummary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if months <= 0 {
		months = 6
	}
	return s.repo.MonthlySummaries(userID, months)
}

// CategorySummaries aggregates the user's expenses per category.
func (s *Service) CategorySummaries(ctx context.Context, filter models.ExpenseFilter) ([]models.CategorySummary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.CategorySummaries(userID, filter)
}

// TopMerchants lists the user's merchants by total spend.
func (s *Service) TopMerchants(ctx context.Context) ([]models.MerchantSummary, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.TopMerchants(userID, 10)
}

// ExportStatement renders the user's expenses as an XML statement.
func (s *Service) ExportStatement(ctx context.Context, filter models.ExpenseFilter) ([]byte, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	filter.Limit = 1000
	expenses, _, err := s.repo.FindExpenses(user.ID, filter)
	if err != nil {
		return nil, err
	}
	return export.Statement(user, expenses)
}
