package store

import (
	"testing"

	"github.com/jand19081/ladle/internal/model"
)

func TestRecipeCRUD(t *testing.T) {
	rs := NewRecipeStore(setupTestDB(t))

	r, err := rs.Create("Bread", 4, "Mix. Prove. Bake.")
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if r.Name != "Bread" || r.Servings != 4 {
		t.Errorf("recipe = %+v, want Bread for 4", r)
	}

	updated, err := rs.Update(r.ID, "Sourdough", 6, r.Instructions)
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}
	if updated.Name != "Sourdough" || updated.Servings != 6 {
		t.Errorf("updated = %+v", updated)
	}

	if err := rs.Delete(r.ID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}
	got, _ := rs.GetByID(r.ID)
	if got != nil {
		t.Error("recipe should be gone after delete")
	}
}

func TestRequirements(t *testing.T) {
	db := setupTestDB(t)
	rs := NewRecipeStore(db)
	is := NewIngredientStore(db)
	g := unitIDByAbbrev(t, db, "g")

	flour, _ := is.Create("Flour", nil)
	bread, _ := rs.Create("Bread", 4, "")
	starter, _ := rs.Create("Starter", 1, "")

	r1, err := rs.AddRequirement(bread.ID, model.IngredientRequirement(flour.ID, model.Measure{Amount: 500, UnitID: g}))
	if err != nil {
		t.Fatalf("add ingredient requirement: %v", err)
	}
	if r1.IngredientID == nil || *r1.IngredientID != flour.ID || r1.SubRecipeID != nil {
		t.Errorf("requirement = %+v, want ingredient target", r1)
	}

	r2, err := rs.AddRequirement(bread.ID, model.SubRecipeRequirement(starter.ID, model.Measure{Amount: 150, UnitID: g}))
	if err != nil {
		t.Fatalf("add sub-recipe requirement: %v", err)
	}
	if r2.SubRecipeID == nil || *r2.SubRecipeID != starter.ID {
		t.Errorf("requirement = %+v, want sub-recipe target", r2)
	}

	// Exactly one target must be set.
	if _, err := rs.AddRequirement(bread.ID, model.Requirement{Quantity: model.Measure{Amount: 1, UnitID: g}}); err != model.ErrRequirementTarget {
		t.Errorf("err = %v, want ErrRequirementTarget", err)
	}
	both := model.IngredientRequirement(flour.ID, model.Measure{Amount: 1, UnitID: g})
	both.SubRecipeID = &starter.ID
	if _, err := rs.AddRequirement(bread.ID, both); err != model.ErrRequirementTarget {
		t.Errorf("err = %v, want ErrRequirementTarget", err)
	}

	reqs, err := rs.ListRequirements(bread.ID)
	if err != nil {
		t.Fatalf("list requirements: %v", err)
	}
	if len(reqs) != 2 {
		t.Fatalf("got %d requirements, want 2", len(reqs))
	}

	// Deleting the recipe cascades to its requirements.
	if err := rs.Delete(bread.ID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}
	reqs, _ = rs.ListRequirements(bread.ID)
	if len(reqs) != 0 {
		t.Errorf("requirements should cascade away, got %v", reqs)
	}
}

func TestAllRequirementsGrouping(t *testing.T) {
	db := setupTestDB(t)
	rs := NewRecipeStore(db)
	is := NewIngredientStore(db)
	g := unitIDByAbbrev(t, db, "g")

	flour, _ := is.Create("Flour", nil)
	a, _ := rs.Create("A", 1, "")
	b, _ := rs.Create("B", 1, "")
	rs.AddRequirement(a.ID, model.IngredientRequirement(flour.ID, model.Measure{Amount: 1, UnitID: g}))
	rs.AddRequirement(b.ID, model.IngredientRequirement(flour.ID, model.Measure{Amount: 2, UnitID: g}))
	rs.AddRequirement(b.ID, model.SubRecipeRequirement(a.ID, model.Measure{Amount: 1, UnitID: g}))

	all, err := rs.AllRequirements()
	if err != nil {
		t.Fatalf("all requirements: %v", err)
	}
	if len(all[a.ID]) != 1 || len(all[b.ID]) != 2 {
		t.Errorf("grouping = %v, want 1 for A and 2 for B", all)
	}
}
