package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jand19081/ladle/internal/model"
)

type ShoppingStore struct {
	db *sql.DB
}

func NewShoppingStore(db *sql.DB) *ShoppingStore {
	return &ShoppingStore{db: db}
}

func scanShoppingItem(scanner interface{ Scan(...any) error }) (*model.ShoppingItem, error) {
	var item model.ShoppingItem
	var ingredientID, unitID, paidCents sql.NullInt64
	var checkedAt sql.NullTime
	var checked int
	err := scanner.Scan(
		&item.ID, &ingredientID, &item.Name, &item.Quantity.Amount, &unitID,
		&item.EstimatedCents, &checked, &paidCents, &checkedAt, &item.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if ingredientID.Valid {
		item.IngredientID = &ingredientID.Int64
	}
	if unitID.Valid {
		item.Quantity.UnitID = unitID.Int64
	}
	if paidCents.Valid {
		item.PaidCents = &paidCents.Int64
	}
	if checkedAt.Valid {
		item.CheckedAt = &checkedAt.Time
	}
	item.Checked = checked != 0
	return &item, nil
}

const shoppingCols = `id, ingredient_id, name, amount, unit_id, estimated_cents, checked, paid_cents, checked_at, created_at`

func (s *ShoppingStore) List() ([]model.ShoppingItem, error) {
	rows, err := s.db.Query(`SELECT ` + shoppingCols + ` FROM shopping_items ORDER BY checked ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	defer rows.Close()

	var items []model.ShoppingItem
	for rows.Next() {
		item, err := scanShoppingItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shopping item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (s *ShoppingStore) GetByID(id int64) (*model.ShoppingItem, error) {
	row := s.db.QueryRow(`SELECT `+shoppingCols+` FROM shopping_items WHERE id = ?`, id)
	item, err := scanShoppingItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get shopping item: %w", err)
	}
	return item, nil
}

func (s *ShoppingStore) Create(ingredientID *int64, name string, amount float64, unitID *int64, estimatedCents int64) (*model.ShoppingItem, error) {
	var iID, uID sql.NullInt64
	if ingredientID != nil {
		iID = sql.NullInt64{Int64: *ingredientID, Valid: true}
	}
	if unitID != nil {
		uID = sql.NullInt64{Int64: *unitID, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO shopping_items (ingredient_id, name, amount, unit_id, estimated_cents) VALUES (?, ?, ?, ?, ?)`,
		iID, name, amount, uID, estimatedCents,
	)
	if err != nil {
		return nil, fmt.Errorf("insert shopping item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// Check marks an item bought, recording what was actually paid. The
// timestamp is written from Go so SpentBetween can compare it against Go
// time parameters.
func (s *ShoppingStore) Check(id int64, paidCents int64) (*model.ShoppingItem, error) {
	_, err := s.db.Exec(
		`UPDATE shopping_items SET checked = 1, paid_cents = ?, checked_at = ? WHERE id = ?`,
		paidCents, time.Now(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("check shopping item: %w", err)
	}
	return s.GetByID(id)
}

func (s *ShoppingStore) Uncheck(id int64) (*model.ShoppingItem, error) {
	_, err := s.db.Exec(
		`UPDATE shopping_items SET checked = 0, paid_cents = NULL, checked_at = NULL WHERE id = ?`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("uncheck shopping item: %w", err)
	}
	return s.GetByID(id)
}

func (s *ShoppingStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM shopping_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete shopping item: %w", err)
	}
	return nil
}

// ClearChecked removes every checked item, typically after a shopping trip.
func (s *ShoppingStore) ClearChecked() error {
	_, err := s.db.Exec(`DELETE FROM shopping_items WHERE checked = 1`)
	if err != nil {
		return fmt.Errorf("clear checked items: %w", err)
	}
	return nil
}

// SpentBetween sums paid_cents over items checked in [from, to), the basis
// of the spending report.
func (s *ShoppingStore) SpentBetween(from, to time.Time) (int64, error) {
	row := s.db.QueryRow(
		`SELECT COALESCE(SUM(paid_cents), 0) FROM shopping_items WHERE checked = 1 AND checked_at >= ? AND checked_at < ?`,
		from, to,
	)
	var cents int64
	if err := row.Scan(&cents); err != nil {
		return 0, fmt.Errorf("sum spending: %w", err)
	}
	return cents, nil
}
