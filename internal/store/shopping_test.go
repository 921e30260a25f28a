package store

import (
	"testing"
	"time"
)

func TestShoppingItemLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ss := NewShoppingStore(db)
	is := NewIngredientStore(db)
	g := unitIDByAbbrev(t, db, "g")

	flour, _ := is.Create("Flour", nil)

	item, err := ss.Create(&flour.ID, "Flour", 400, &g, 200)
	if err != nil {
		t.Fatalf("create shopping item: %v", err)
	}
	if item.EstimatedCents != 200 || item.Checked {
		t.Errorf("item = %+v, want unchecked estimate of 200", item)
	}

	checked, err := ss.Check(item.ID, 189)
	if err != nil {
		t.Fatalf("check item: %v", err)
	}
	if !checked.Checked || checked.PaidCents == nil || *checked.PaidCents != 189 {
		t.Errorf("checked = %+v, want paid 189", checked)
	}
	if checked.CheckedAt == nil {
		t.Error("checked_at should be set")
	}

	unchecked, err := ss.Uncheck(item.ID)
	if err != nil {
		t.Fatalf("uncheck item: %v", err)
	}
	if unchecked.Checked || unchecked.PaidCents != nil || unchecked.CheckedAt != nil {
		t.Errorf("unchecked = %+v, want cleared", unchecked)
	}
}

func TestShoppingSpending(t *testing.T) {
	db := setupTestDB(t)
	ss := NewShoppingStore(db)

	a, _ := ss.Create(nil, "Milk", 1, nil, 300)
	b, _ := ss.Create(nil, "Eggs", 12, nil, 400)
	ss.Create(nil, "Bread", 1, nil, 250) // never bought

	ss.Check(a.ID, 289)
	ss.Check(b.ID, 410)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	spent, err := ss.SpentBetween(from, to)
	if err != nil {
		t.Fatalf("spent between: %v", err)
	}
	if spent != 699 {
		t.Errorf("spent = %d, want 699", spent)
	}

	if err := ss.ClearChecked(); err != nil {
		t.Fatalf("clear checked: %v", err)
	}
	items, _ := ss.List()
	if len(items) != 1 || items[0].Name != "Bread" {
		t.Errorf("items after clear = %v, want only Bread", items)
	}
}
