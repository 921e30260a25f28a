package store

import (
	"testing"
	"time"

	"github.com/jand19081/ladle/internal/model"
)

func TestPlanEntryCRUD(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPlanStore(db)
	ms := NewMealStore(db)

	meal, _ := ms.Create("Taco night")
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	entry, err := ps.Create(model.PlanEntry{MealID: &meal.ID, Date: date, Servings: 4})
	if err != nil {
		t.Fatalf("create plan entry: %v", err)
	}
	if entry.MealID == nil || *entry.MealID != meal.ID || entry.Servings != 4 {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Consumed {
		t.Error("new entry should not be consumed")
	}

	if err := ps.SetConsumed(entry.ID, true); err != nil {
		t.Fatalf("set consumed: %v", err)
	}
	got, _ := ps.GetByID(entry.ID)
	if !got.Consumed {
		t.Error("entry should be consumed")
	}

	if err := ps.Delete(entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if got, _ := ps.GetByID(entry.ID); got != nil {
		t.Error("entry should be gone after delete")
	}
}

func TestPlanEntryRestaurant(t *testing.T) {
	ps := NewPlanStore(setupTestDB(t))

	name := "Luigi's"
	entry, err := ps.Create(model.PlanEntry{Restaurant: &name, Date: time.Now().UTC(), Servings: 2})
	if err != nil {
		t.Fatalf("create restaurant entry: %v", err)
	}
	if entry.Restaurant == nil || *entry.Restaurant != name || entry.MealID != nil {
		t.Errorf("entry = %+v, want restaurant target", entry)
	}

	// Exactly one of meal and restaurant.
	if _, err := ps.Create(model.PlanEntry{Date: time.Now().UTC()}); err != model.ErrPlanTarget {
		t.Errorf("err = %v, want ErrPlanTarget", err)
	}
}

func TestPlanListRange(t *testing.T) {
	db := setupTestDB(t)
	ps := NewPlanStore(db)
	ms := NewMealStore(db)

	meal, _ := ms.Create("Dinner")
	day := func(d int) time.Time { return time.Date(2026, 3, d, 18, 0, 0, 0, time.UTC) }
	for _, d := range []int{1, 5, 9} {
		if _, err := ps.Create(model.PlanEntry{MealID: &meal.ID, Date: day(d), Servings: 2}); err != nil {
			t.Fatalf("create entry for day %d: %v", d, err)
		}
	}

	entries, err := ps.ListRange(day(2), day(9))
	if err != nil {
		t.Fatalf("list range: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1 (range end exclusive)", len(entries))
	}
	if !entries[0].Date.Equal(day(5)) {
		t.Errorf("entry date = %v, want %v", entries[0].Date, day(5))
	}
}
