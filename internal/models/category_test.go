package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCategory(t *testing.T) {
	for _, c := range AllCategories() {
		assert.True(t, IsValidCategory(string(c)))
	}
	assert.False(t, IsValidCategory("crypto"))
	assert.False(t, IsValidCategory(""))
	assert.False(t, IsValidCategory("Dining"), "categories are lowercase")
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		name         string
		merchantName string
		description  string
		want         Category
	}{
		{"merchant keyword", "Zomato", "", CategoryDining},
		{"description keyword", "", "monthly electricity bill", CategoryUtilities},
		{"case insensitive", "BIGBASKET", "", CategoryGroceries},
		{"first declared category wins", "uber eats bangalore", "", CategoryDining}, // "eat" matches dining before travel sees "uber"
		{"travel keyword", "IRCTC ticket", "", CategoryTravel},
		{"no match falls back", "Unknown Store", "misc", CategoryGeneral},
		{"empty input", "", "", CategoryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCategory(tt.merchantName, tt.description))
		})
	}
}

func TestDetectCategoryOrderIsStable(t *testing.T) {
	// "hotel" (dining) and "flight" (travel) both match; dining is declared
	// first, so it must win every time.
	for i := 0; i < 10; i++ {
		assert.Equal(t, CategoryDining, DetectCategory("hotel flight booking", ""))
	}
}
