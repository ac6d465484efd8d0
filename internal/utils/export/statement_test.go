package export

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/crediwise/crediwise/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestStatement(t *testing.T) {
	user := &models.User{Name: "Asha Rao", Email: "asha@example.com"}
	expenses := []models.Expense{
		{ID: 1, Amount: 850, Category: models.CategoryDining, MerchantName: "Zomato", Date: time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), RewardEarned: 42.5},
		{ID: 2, Amount: 1200, Category: models.CategoryTravel, Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
	}

	out, err := Statement(user, expenses)
	assert.NoError(t, err)

	doc := etree.NewDocument()
	assert.NoError(t, doc.ReadFromBytes(out))

	assert.Equal(t, "Asha Rao", doc.FindElement("//AccountHolder/Name").Text())
	assert.Len(t, doc.FindElements("//Expenses/Expense"), 2)
	assert.Equal(t, "Zomato", doc.FindElement("//Expense[@id='1']/Merchant").Text())
	assert.Nil(t, doc.FindElement("//Expense[@id='2']/Merchant"))
	assert.Equal(t, "2050.00", doc.FindElement("//Totals/TotalAmount").Text())
	assert.Equal(t, "42.50", doc.FindElement("//Totals/TotalRewards").Text())
}

func TestStatementEmpty(t *testing.T) {
	out, err := Statement(&models.User{Name: "Empty"}, nil)
	assert.NoError(t, err)

	doc := etree.NewDocument()
	assert.NoError(t, doc.ReadFromBytes(out))
	assert.Equal(t, "0", doc.FindElement("//Totals/Count").Text())
}
