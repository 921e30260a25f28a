package store

import (
	"database/sql"
	"fmt"

	"github.com/jand19081/ladle/internal/model"
)

type RecipeStore struct {
	db *sql.DB
}

func NewRecipeStore(db *sql.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func scanRecipe(scanner interface{ Scan(...any) error }) (*model.Recipe, error) {
	var r model.Recipe
	err := scanner.Scan(&r.ID, &r.Name, &r.Servings, &r.Instructions, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const recipeCols = `id, name, servings, instructions, created_at`

func (s *RecipeStore) List() ([]model.Recipe, error) {
	rows, err := s.db.Query(`SELECT ` + recipeCols + ` FROM recipes ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	var recipes []model.Recipe
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		recipes = append(recipes, *r)
	}
	return recipes, rows.Err()
}

// Map returns all recipes keyed by id.
func (s *RecipeStore) Map() (map[int64]model.Recipe, error) {
	recipes, err := s.List()
	if err != nil {
		return nil, err
	}
	m := make(map[int64]model.Recipe, len(recipes))
	for _, r := range recipes {
		m[r.ID] = r
	}
	return m, nil
}

func (s *RecipeStore) GetByID(id int64) (*model.Recipe, error) {
	row := s.db.QueryRow(`SELECT `+recipeCols+` FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

func (s *RecipeStore) Create(name string, servings int, instructions string) (*model.Recipe, error) {
	result, err := s.db.Exec(
		`INSERT INTO recipes (name, servings, instructions) VALUES (?, ?, ?)`,
		name, servings, instructions,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recipe: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) Update(id int64, name string, servings int, instructions string) (*model.Recipe, error) {
	_, err := s.db.Exec(
		`UPDATE recipes SET name = ?, servings = ?, instructions = ? WHERE id = ?`,
		name, servings, instructions, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}
	return s.GetByID(id)
}

func (s *RecipeStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}

// --- Requirement methods ---

func scanRequirement(scanner interface{ Scan(...any) error }) (*model.Requirement, error) {
	var r model.Requirement
	var ingredientID, subRecipeID sql.NullInt64
	err := scanner.Scan(&r.ID, &r.RecipeID, &ingredientID, &subRecipeID, &r.Quantity.Amount, &r.Quantity.UnitID, &r.SortOrder)
	if err != nil {
		return nil, err
	}
	if ingredientID.Valid {
		r.IngredientID = &ingredientID.Int64
	}
	if subRecipeID.Valid {
		r.SubRecipeID = &subRecipeID.Int64
	}
	return &r, nil
}

const requirementCols = `id, recipe_id, ingredient_id, sub_recipe_id, amount, unit_id, sort_order`

func (s *RecipeStore) ListRequirements(recipeID int64) ([]model.Requirement, error) {
	rows, err := s.db.Query(`SELECT `+requirementCols+` FROM recipe_requirements WHERE recipe_id = ? ORDER BY sort_order ASC, id ASC`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("list requirements: %w", err)
	}
	defer rows.Close()
	return collectRequirements(rows)
}

// AllRequirements returns every requirement grouped by recipe id.
func (s *RecipeStore) AllRequirements() (map[int64][]model.Requirement, error) {
	rows, err := s.db.Query(`SELECT ` + requirementCols + ` FROM recipe_requirements ORDER BY sort_order ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all requirements: %w", err)
	}
	defer rows.Close()

	reqs, err := collectRequirements(rows)
	if err != nil {
		return nil, err
	}
	m := make(map[int64][]model.Requirement)
	for _, r := range reqs {
		m[r.RecipeID] = append(m[r.RecipeID], r)
	}
	return m, nil
}

func collectRequirements(rows *sql.Rows) ([]model.Requirement, error) {
	var reqs []model.Requirement
	for rows.Next() {
		r, err := scanRequirement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan requirement: %w", err)
		}
		reqs = append(reqs, *r)
	}
	return reqs, rows.Err()
}

func (s *RecipeStore) AddRequirement(recipeID int64, req model.Requirement) (*model.Requirement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var ingredientID, subRecipeID sql.NullInt64
	if req.IngredientID != nil {
		ingredientID = sql.NullInt64{Int64: *req.IngredientID, Valid: true}
	}
	if req.SubRecipeID != nil {
		subRecipeID = sql.NullInt64{Int64: *req.SubRecipeID, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO recipe_requirements (recipe_id, ingredient_id, sub_recipe_id, amount, unit_id, sort_order) VALUES (?, ?, ?, ?, ?, ?)`,
		recipeID, ingredientID, subRecipeID, req.Quantity.Amount, req.Quantity.UnitID, req.SortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert requirement: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+requirementCols+` FROM recipe_requirements WHERE id = ?`, id)
	return scanRequirement(row)
}

func (s *RecipeStore) DeleteRequirement(id int64) error {
	_, err := s.db.Exec(`DELETE FROM recipe_requirements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete requirement: %w", err)
	}
	return nil
}
