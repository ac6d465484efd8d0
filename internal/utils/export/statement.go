// Package export renders expense statements as XML documents.
package export

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/crediwise/crediwise/internal/models"
)

// Statement builds an XML expense statement for the user. Expenses are
// emitted in the order given (newest first from the repository).
func Statement(user *models.User, expenses []models.Expense) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("ExpenseStatement")
	root.CreateAttr("generatedAt", time.Now().Format(time.RFC3339))

	holder := root.CreateElement("AccountHolder")
	holder.CreateElement("Name").SetText(user.Name)
	holder.CreateElement("Email").SetText(user.Email)

	var totalAmount, totalRewards float64
	list := root.CreateElement("Expenses")
	for _, exp := range expenses {
		e := list.CreateElement("Expense")
		e.CreateAttr("id", fmt.Sprintf("%d", exp.ID))
		e.CreateElement("Date").SetText(exp.Date.Format("2006-01-02"))
		e.CreateElement("Amount").SetText(fmt.Sprintf("%.2f", exp.Amount))
		e.CreateElement("Category").SetText(string(exp.Category))
		if exp.MerchantName != "" {
			e.CreateElement("Merchant").SetText(exp.MerchantName)
		}
		if exp.Description != "" {
			e.CreateElement("Description").SetText(exp.Description)
		}
		e.CreateElement("RewardEarned").SetText(fmt.Sprintf("%.2f", exp.RewardEarned))
		totalAmount += exp.Amount
		totalRewards += exp.RewardEarned
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("Count").SetText(fmt.Sprintf("%d", len(expenses)))
	totals.CreateElement("TotalAmount").SetText(fmt.Sprintf("%.2f", totalAmount))
	totals.CreateElement("TotalRewards").SetText(fmt.Sprintf("%.2f", totalRewards))

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize statement: %w", err)
	}
	return out, nil
}
