package store

import (
	"database/sql"
	"fmt"

	"github.com/jand19081/ladle/internal/model"
)

type MealStore struct {
	db *sql.DB
}

func NewMealStore(db *sql.DB) *MealStore {
	return &MealStore{db: db}
}

const mealCols = `id, name, created_at`

func (s *MealStore) List() ([]model.Meal, error) {
	rows, err := s.db.Query(`SELECT ` + mealCols + ` FROM meals ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	defer rows.Close()

	var meals []model.Meal
	for rows.Next() {
		var m model.Meal
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	return meals, rows.Err()
}

func (s *MealStore) Map() (map[int64]model.Meal, error) {
	meals, err := s.List()
	if err != nil {
		return nil, err
	}
	m := make(map[int64]model.Meal, len(meals))
	for _, meal := range meals {
		m[meal.ID] = meal
	}
	return m, nil
}

func (s *MealStore) GetByID(id int64) (*model.Meal, error) {
	row := s.db.QueryRow(`SELECT `+mealCols+` FROM meals WHERE id = ?`, id)
	var m model.Meal
	err := row.Scan(&m.ID, &m.Name, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal: %w", err)
	}
	return &m, nil
}

func (s *MealStore) Create(name string) (*model.Meal, error) {
	result, err := s.db.Exec(`INSERT INTO meals (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert meal: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *MealStore) Update(id int64, name string) (*model.Meal, error) {
	_, err := s.db.Exec(`UPDATE meals SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return nil, fmt.Errorf("update meal: %w", err)
	}
	return s.GetByID(id)
}

func (s *MealStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM meals WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete meal: %w", err)
	}
	return nil
}

// --- Component methods ---

func scanComponent(scanner interface{ Scan(...any) error }) (*model.MealComponent, error) {
	var c model.MealComponent
	var recipeID, ingredientID, unitID sql.NullInt64
	err := scanner.Scan(&c.ID, &c.MealID, &recipeID, &ingredientID, &c.Quantity.Amount, &unitID)
	if err != nil {
		return nil, err
	}
	if recipeID.Valid {
		c.RecipeID = &recipeID.Int64
	}
	if ingredientID.Valid {
		c.IngredientID = &ingredientID.Int64
	}
	if unitID.Valid {
		c.Quantity.UnitID = unitID.Int64
	}
	return &c, nil
}

const componentCols = `id, meal_id, recipe_id, ingredient_id, amount, unit_id`

func (s *MealStore) ListComponents(mealID int64) ([]model.MealComponent, error) {
	rows, err := s.db.Query(`SELECT `+componentCols+` FROM meal_components WHERE meal_id = ? ORDER BY id ASC`, mealID)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()
	return collectComponents(rows)
}

// AllComponents returns every meal component grouped by meal id.
func (s *MealStore) AllComponents() (map[int64][]model.MealComponent, error) {
	rows, err := s.db.Query(`SELECT ` + componentCols + ` FROM meal_components ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all components: %w", err)
	}
	defer rows.Close()

	comps, err := collectComponents(rows)
	if err != nil {
		return nil, err
	}
	m := make(map[int64][]model.MealComponent)
	for _, c := range comps {
		m[c.MealID] = append(m[c.MealID], c)
	}
	return m, nil
}

func collectComponents(rows *sql.Rows) ([]model.MealComponent, error) {
	var comps []model.MealComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		comps = append(comps, *c)
	}
	return comps, rows.Err()
}

func (s *MealStore) AddComponent(mealID int64, comp model.MealComponent) (*model.MealComponent, error) {
	if err := comp.Validate(); err != nil {
		return nil, err
	}
	var recipeID, ingredientID, unitID sql.NullInt64
	if comp.RecipeID != nil {
		recipeID = sql.NullInt64{Int64: *comp.RecipeID, Valid: true}
	}
	if comp.IngredientID != nil {
		ingredientID = sql.NullInt64{Int64: *comp.IngredientID, Valid: true}
		unitID = sql.NullInt64{Int64: comp.Quantity.UnitID, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO meal_components (meal_id, recipe_id, ingredient_id, amount, unit_id) VALUES (?, ?, ?, ?, ?)`,
		mealID, recipeID, ingredientID, comp.Quantity.Amount, unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert component: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+componentCols+` FROM meal_components WHERE id = ?`, id)
	return scanComponent(row)
}

func (s *MealStore) DeleteComponent(id int64) error {
	_, err := s.db.Exec(`DELETE FROM meal_components WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete component: %w", err)
	}
	return nil
}
