package models

import "strings"

// Category is a spending category from the closed set.
type Category string

const (
	CategoryDining        Category = "dining"
	CategoryTravel        Category = "travel"
	CategoryGroceries     Category = "groceries"
	CategoryFuel          Category = "fuel"
	CategoryShopping      Category = "shopping"
	CategoryUtilities     Category = "utilities"
	CategoryEntertainment Category = "entertainment"
	CategoryHealthcare    Category = "healthcare"
	CategoryEducation     Category = "education"
	CategoryGeneral       Category = "general" // catch-all fallback
)

// AllCategories returns the closed category set in its canonical order.
func AllCategories() []Category {
	return []Category{
		CategoryDining,
		CategoryTravel,
		CategoryGroceries,
		CategoryFuel,
		CategoryShopping,
		CategoryUtilities,
		CategoryEntertainment,
		CategoryHealthcare,
		CategoryEducation,
		CategoryGeneral,
	}
}

// IsValidCategory reports whether s is a member of the closed category set.
func IsValidCategory(s string) bool {
	for _, c := range AllCategories() {
		if string(c) == s {
			return true
		}
	}
	return false
}

// categoryKeywords maps each category to lowercase merchant/description
// substrings. The slice order is the match order: categories are checked
// in this declared sequence, not in map iteration order.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryDining, []string{"zomato", "swiggy", "restaurant", "cafe", "food", "pizza", "burger", "biryani", "hotel", "eat"}},
	{CategoryTravel, []string{"uber", "ola", "rapido", "irctc", "indigo", "air india", "train", "flight", "bus", "metro", "redbus"}},
	{CategoryGroceries, []string{"bigbasket", "blinkit", "zepto", "dmart", "reliance", "grocery", "supermarket", "vegetables"}},
	{CategoryFuel, []string{"petrol", "diesel", "bpcl", "hpcl", "iocl", "fuel", "cng"}},
	{CategoryShopping, []string{"amazon", "flipkart", "myntra", "meesho", "nykaa", "ajio", "shopping", "mall", "retail"}},
	{CategoryUtilities, []string{"airtel", "jio", "bsnl", "electricity", "water", "gas", "bill", "recharge"}},
	{CategoryEntertainment, []string{"netflix", "prime", "hotstar", "spotify", "bookmyshow", "pvr", "inox", "movie", "concert"}},
	{CategoryHealthcare, []string{"apollo", "medplus", "pharmeasy", "hospital", "clinic", "pharmacy", "medicine", "doctor"}},
	{CategoryEducation, []string{"coursera", "udemy", "byju", "unacademy", "school", "college", "tuition", "fee", "book"}},
}

// DetectCategory guesses the spending category from merchant name and
// description text. First matching keyword wins; unmatched text falls
// back to the general category.
func DetectCategory(merchantName, description string) Category {
	text := strings.ToLower(merchantName + " " + description)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(text, kw) {
				return entry.category
			}
		}
	}
	return CategoryGeneral
}
