package store

import (
	"database/sql"
	"fmt"

	"github.com/jand19081/ladle/internal/model"
)

type PantryStore struct {
	db *sql.DB
}

func NewPantryStore(db *sql.DB) *PantryStore {
	return &PantryStore{db: db}
}

const pantryCols = `id, ingredient_id, amount, unit_id, updated_at`

func (s *PantryStore) List() ([]model.PantryItem, error) {
	rows, err := s.db.Query(`SELECT ` + pantryCols + ` FROM pantry_items ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pantry: %w", err)
	}
	defer rows.Close()

	var items []model.PantryItem
	for rows.Next() {
		var item model.PantryItem
		if err := rows.Scan(&item.ID, &item.IngredientID, &item.Quantity.Amount, &item.Quantity.UnitID, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *PantryStore) Get(ingredientID int64) (*model.PantryItem, error) {
	row := s.db.QueryRow(`SELECT `+pantryCols+` FROM pantry_items WHERE ingredient_id = ?`, ingredientID)
	var item model.PantryItem
	err := row.Scan(&item.ID, &item.IngredientID, &item.Quantity.Amount, &item.Quantity.UnitID, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get pantry item: %w", err)
	}
	return &item, nil
}

// Set upserts the on-hand quantity for an ingredient. An amount of zero
// removes the row.
func (s *PantryStore) Set(ingredientID int64, amount float64, unitID int64) (*model.PantryItem, error) {
	if amount <= 0 {
		if err := s.Delete(ingredientID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	_, err := s.db.Exec(
		`INSERT INTO pantry_items (ingredient_id, amount, unit_id, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(ingredient_id) DO UPDATE SET amount = excluded.amount, unit_id = excluded.unit_id, updated_at = CURRENT_TIMESTAMP`,
		ingredientID, amount, unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("set pantry item: %w", err)
	}
	return s.Get(ingredientID)
}

func (s *PantryStore) Delete(ingredientID int64) error {
	_, err := s.db.Exec(`DELETE FROM pantry_items WHERE ingredient_id = ?`, ingredientID)
	if err != nil {
		return fmt.Errorf("delete pantry item: %w", err)
	}
	return nil
}
