// Package ingredient holds helpers for working with ingredient data that
// don't belong to persistence or costing.
package ingredient

import "strings"

// Categorize guesses the category for a free-typed ingredient name.
// Case-insensitive: exact match first, then substring match with
// longer/more-specific keywords first. Falls back to "Other". The category
// names match the rows seeded by the initial migration.
func Categorize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return "Other"
	}

	if cat, ok := exactMatch[n]; ok {
		return cat
	}

	for _, entry := range substringMatches {
		if strings.Contains(n, entry.keyword) {
			return entry.category
		}
	}

	return "Other"
}

var exactMatch = map[string]string{
	// Produce
	"apple":       "Produce",
	"apples":      "Produce",
	"banana":      "Produce",
	"bananas":     "Produce",
	"lemon":       "Produce",
	"lemons":      "Produce",
	"lime":        "Produce",
	"tomato":      "Produce",
	"tomatoes":    "Produce",
	"potato":      "Produce",
	"potatoes":    "Produce",
	"onion":       "Produce",
	"onions":      "Produce",
	"garlic":      "Produce",
	"lettuce":     "Produce",
	"spinach":     "Produce",
	"broccoli":    "Produce",
	"carrot":      "Produce",
	"carrots":     "Produce",
	"celery":      "Produce",
	"cucumber":    "Produce",
	"mushrooms":   "Produce",
	"grapes":      "Produce",
	"cilantro":    "Produce",
	"parsley":     "Produce",
	"zucchini":    "Produce",
	"green beans": "Produce",

	// Dairy
	"milk":         "Dairy",
	"eggs":         "Dairy",
	"butter":       "Dairy",
	"cheese":       "Dairy",
	"yogurt":       "Dairy",
	"cream cheese": "Dairy",
	"sour cream":   "Dairy",
	"heavy cream":  "Dairy",

	// Meat & Seafood
	"chicken":     "Meat & Seafood",
	"beef":        "Meat & Seafood",
	"pork":        "Meat & Seafood",
	"turkey":      "Meat & Seafood",
	"bacon":       "Meat & Seafood",
	"sausage":     "Meat & Seafood",
	"ham":         "Meat & Seafood",
	"salmon":      "Meat & Seafood",
	"shrimp":      "Meat & Seafood",
	"tuna":        "Meat & Seafood",
	"ground beef": "Meat & Seafood",
	"lamb":        "Meat & Seafood",

	// Bakery
	"bread":     "Bakery",
	"bagels":    "Bakery",
	"tortillas": "Bakery",
	"rolls":     "Bakery",
	"baguette":  "Bakery",

	// Pantry
	"flour":       "Pantry",
	"sugar":       "Pantry",
	"rice":        "Pantry",
	"pasta":       "Pantry",
	"oats":        "Pantry",
	"olive oil":   "Pantry",
	"honey":       "Pantry",
	"peanut butter": "Pantry",
	"baking soda": "Pantry",
	"baking powder": "Pantry",
	"yeast":       "Pantry",
	"vinegar":     "Pantry",
	"soy sauce":   "Pantry",
	"ketchup":     "Pantry",
	"mustard":     "Pantry",
	"mayonnaise":  "Pantry",

	// Spices
	"salt":     "Spices",
	"pepper":   "Spices",
	"cumin":    "Spices",
	"paprika":  "Spices",
	"oregano":  "Spices",
	"cinnamon": "Spices",
	"nutmeg":   "Spices",
	"turmeric": "Spices",
	"saffron":  "Spices",
	"vanilla":  "Spices",

	// Beverages
	"coffee": "Beverages",
	"tea":    "Beverages",
	"juice":  "Beverages",
	"soda":   "Beverages",
}

var substringMatches = []struct {
	keyword  string
	category string
}{
	{"frozen", "Frozen"},
	{"ice cream", "Frozen"},

	{"chicken", "Meat & Seafood"},
	{"beef", "Meat & Seafood"},
	{"pork", "Meat & Seafood"},
	{"fish", "Meat & Seafood"},
	{"steak", "Meat & Seafood"},

	{"cheese", "Dairy"},
	{"cream", "Dairy"},
	{"yogurt", "Dairy"},
	{"milk", "Dairy"},

	{"berries", "Produce"},
	{"lettuce", "Produce"},
	{"bell pepper", "Produce"},
	{"salad", "Produce"},

	{"bread", "Bakery"},
	{"bun", "Bakery"},

	{"sauce", "Pantry"},
	{"oil", "Pantry"},
	{"flour", "Pantry"},
	{"stock", "Pantry"},
	{"broth", "Pantry"},
	{"beans", "Pantry"},
	{"canned", "Pantry"},

	{"ground ", "Spices"},
	{"dried ", "Spices"},
	{"powder", "Spices"},

	{"juice", "Beverages"},
	{"water", "Beverages"},
	{"wine", "Beverages"},
	{"beer", "Beverages"},
}
