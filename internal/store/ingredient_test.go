package store

import (
	"database/sql"
	"testing"
)

// unitIDByAbbrev looks up a seeded unit id for fixtures.
func unitIDByAbbrev(t *testing.T, db *sql.DB, abbrev string) int64 {
	t.Helper()
	var id int64
	if err := db.QueryRow(`SELECT id FROM units WHERE abbrev = ?`, abbrev).Scan(&id); err != nil {
		t.Fatalf("unit %q: %v", abbrev, err)
	}
	return id
}

func TestCategorySeedData(t *testing.T) {
	is := NewIngredientStore(setupTestDB(t))

	categories, err := is.ListCategories()
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	expected := []string{"Produce", "Dairy", "Meat & Seafood", "Bakery", "Pantry", "Frozen", "Beverages", "Spices", "Other"}
	if len(categories) != len(expected) {
		t.Fatalf("got %d seed categories, want %d", len(categories), len(expected))
	}
	for i, name := range expected {
		if categories[i].Name != name {
			t.Errorf("category[%d].Name = %q, want %q", i, categories[i].Name, name)
		}
	}
}

func TestIngredientCRUD(t *testing.T) {
	db := setupTestDB(t)
	is := NewIngredientStore(db)

	dairy, err := is.GetCategoryByName("Dairy")
	if err != nil || dairy == nil {
		t.Fatalf("get Dairy category: %v", err)
	}

	ing, err := is.Create("Butter", &dairy.ID)
	if err != nil {
		t.Fatalf("create ingredient: %v", err)
	}
	if ing.Name != "Butter" || ing.CategoryID == nil || *ing.CategoryID != dairy.ID {
		t.Errorf("ingredient = %+v, want Butter in Dairy", ing)
	}

	updated, err := is.Update(ing.ID, "Salted Butter", nil)
	if err != nil {
		t.Fatalf("update ingredient: %v", err)
	}
	if updated.Name != "Salted Butter" || updated.CategoryID != nil {
		t.Errorf("updated = %+v, want renamed with no category", updated)
	}

	if err := is.Delete(ing.ID); err != nil {
		t.Fatalf("delete ingredient: %v", err)
	}
	got, _ := is.GetByID(ing.ID)
	if got != nil {
		t.Error("ingredient should be gone after delete")
	}
}

func TestPurchaseOptions(t *testing.T) {
	db := setupTestDB(t)
	is := NewIngredientStore(db)
	g := unitIDByAbbrev(t, db, "g")

	ing, _ := is.Create("Flour", nil)
	market, err := is.CreateMarket("Corner Shop")
	if err != nil {
		t.Fatalf("create market: %v", err)
	}

	opt, err := is.CreateOption(ing.ID, &market.ID, 250, 500, g)
	if err != nil {
		t.Fatalf("create option: %v", err)
	}
	if opt.PriceCents != 250 || opt.Quantity.Amount != 500 || opt.Quantity.UnitID != g {
		t.Errorf("option = %+v, want 500 g for 250 cents", opt)
	}
	if opt.MarketID == nil || *opt.MarketID != market.ID {
		t.Errorf("option market = %v, want %d", opt.MarketID, market.ID)
	}

	if _, err := is.CreateOption(ing.ID, nil, -1, 500, g); err == nil {
		t.Error("negative price should be rejected by the schema")
	}
	if _, err := is.CreateOption(ing.ID, nil, 100, 0, g); err == nil {
		t.Error("zero package quantity should be rejected by the schema")
	}

	opts, err := is.ListOptions(ing.ID)
	if err != nil {
		t.Fatalf("list options: %v", err)
	}
	if len(opts) != 1 {
		t.Fatalf("got %d options, want 1", len(opts))
	}

	// Deleting the ingredient cascades to its options.
	if err := is.Delete(ing.ID); err != nil {
		t.Fatalf("delete ingredient: %v", err)
	}
	opts, _ = is.ListOptions(ing.ID)
	if len(opts) != 0 {
		t.Errorf("options should cascade away, got %v", opts)
	}
}

func TestBridges(t *testing.T) {
	db := setupTestDB(t)
	is := NewIngredientStore(db)
	cup := unitIDByAbbrev(t, db, "cup")
	g := unitIDByAbbrev(t, db, "g")

	ing, _ := is.Create("Butter", nil)

	b, err := is.CreateBridge(ing.ID, 1, cup, 227, g)
	if err != nil {
		t.Fatalf("create bridge: %v", err)
	}
	if b.FromAmount != 1 || b.FromUnitID != cup || b.ToAmount != 227 || b.ToUnitID != g {
		t.Errorf("bridge = %+v, want 1 cup = 227 g", b)
	}

	if _, err := is.CreateBridge(ing.ID, 0, cup, 227, g); err == nil {
		t.Error("zero bridge amount should be rejected by the schema")
	}

	// Order by id so the converter's first-match rule is stable.
	b2, _ := is.CreateBridge(ing.ID, 1, cup, 230, g)
	bridges, err := is.ListBridges(ing.ID)
	if err != nil {
		t.Fatalf("list bridges: %v", err)
	}
	if len(bridges) != 2 || bridges[0].ID != b.ID || bridges[1].ID != b2.ID {
		t.Errorf("bridges = %v, want insertion order", bridges)
	}

	all, err := is.AllBridges()
	if err != nil {
		t.Fatalf("all bridges: %v", err)
	}
	if len(all[ing.ID]) != 2 {
		t.Errorf("all bridges for ingredient = %v, want 2", all[ing.ID])
	}
}
