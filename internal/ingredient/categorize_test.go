package ingredient

import "testing"

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Flour", "Pantry"},
		{"butter", "Dairy"},
		{"Ground Beef", "Meat & Seafood"},
		{"bell pepper", "Produce"},
		{"frozen peas", "Frozen"},
		{"chicken stock", "Meat & Seafood"}, // "chicken" beats "stock": substring order
		{"vegetable stock", "Pantry"},
		{"Saffron", "Spices"},
		{"sparkling water", "Beverages"},
		{"", "Other"},
		{"widget", "Other"},
		{"  MILK  ", "Dairy"},
	}
	for _, tt := range tests {
		if got := Categorize(tt.name); got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
