package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jand19081/ladle/internal/model"
)

type PlanStore struct {
	db *sql.DB
}

func NewPlanStore(db *sql.DB) *PlanStore {
	return &PlanStore{db: db}
}

func scanPlanEntry(scanner interface{ Scan(...any) error }) (*model.PlanEntry, error) {
	var e model.PlanEntry
	var mealID sql.NullInt64
	var restaurant sql.NullString
	var consumed int
	err := scanner.Scan(&e.ID, &mealID, &restaurant, &e.Date, &e.Servings, &consumed, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	if mealID.Valid {
		e.MealID = &mealID.Int64
	}
	if restaurant.Valid {
		e.Restaurant = &restaurant.String
	}
	e.Consumed = consumed != 0
	return &e, nil
}

const planCols = `id, meal_id, restaurant, date, servings, consumed, created_at`

// ListRange returns entries with from <= date < to, ordered by date.
func (s *PlanStore) ListRange(from, to time.Time) ([]model.PlanEntry, error) {
	rows, err := s.db.Query(`SELECT `+planCols+` FROM plan_entries WHERE date >= ? AND date < ? ORDER BY date ASC, id ASC`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list plan entries: %w", err)
	}
	defer rows.Close()

	var entries []model.PlanEntry
	for rows.Next() {
		e, err := scanPlanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan entry: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

func (s *PlanStore) GetByID(id int64) (*model.PlanEntry, error) {
	row := s.db.QueryRow(`SELECT `+planCols+` FROM plan_entries WHERE id = ?`, id)
	e, err := scanPlanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan entry: %w", err)
	}
	return e, nil
}

func (s *PlanStore) Create(entry model.PlanEntry) (*model.PlanEntry, error) {
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	var mealID sql.NullInt64
	var restaurant sql.NullString
	if entry.MealID != nil {
		mealID = sql.NullInt64{Int64: *entry.MealID, Valid: true}
	}
	if entry.Restaurant != nil {
		restaurant = sql.NullString{String: *entry.Restaurant, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO plan_entries (meal_id, restaurant, date, servings, consumed) VALUES (?, ?, ?, ?, ?)`,
		mealID, restaurant, entry.Date, entry.Servings, entry.Consumed,
	)
	if err != nil {
		return nil, fmt.Errorf("insert plan entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *PlanStore) SetConsumed(id int64, consumed bool) error {
	_, err := s.db.Exec(`UPDATE plan_entries SET consumed = ? WHERE id = ?`, consumed, id)
	if err != nil {
		return fmt.Errorf("set consumed: %w", err)
	}
	return nil
}

func (s *PlanStore) UpdateServings(id int64, servings int) error {
	_, err := s.db.Exec(`UPDATE plan_entries SET servings = ? WHERE id = ?`, servings, id)
	if err != nil {
		return fmt.Errorf("update servings: %w", err)
	}
	return nil
}

func (s *PlanStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM plan_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete plan entry: %w", err)
	}
	return nil
}
