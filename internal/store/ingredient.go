package store

import (
	"database/sql"
	"fmt"

	"github.com/jand19081/ladle/internal/model"
)

type IngredientStore struct {
	db *sql.DB
}

func NewIngredientStore(db *sql.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

// --- Category methods ---

func scanCategory(scanner interface{ Scan(...any) error }) (*model.IngredientCategory, error) {
	var c model.IngredientCategory
	err := scanner.Scan(&c.ID, &c.Name, &c.SortOrder, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categoryCols = `id, name, sort_order, created_at`

func (s *IngredientStore) ListCategories() ([]model.IngredientCategory, error) {
	rows, err := s.db.Query(`SELECT ` + categoryCols + ` FROM ingredient_categories ORDER BY sort_order ASC, name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []model.IngredientCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, *c)
	}
	return categories, rows.Err()
}

func (s *IngredientStore) GetCategoryByName(name string) (*model.IngredientCategory, error) {
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM ingredient_categories WHERE name = ?`, name)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// --- Ingredient methods ---

func scanIngredient(scanner interface{ Scan(...any) error }) (*model.Ingredient, error) {
	var i model.Ingredient
	var categoryID sql.NullInt64
	err := scanner.Scan(&i.ID, &i.Name, &categoryID, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		i.CategoryID = &categoryID.Int64
	}
	return &i, nil
}

const ingredientCols = `id, name, category_id, created_at`

func (s *IngredientStore) List() ([]model.Ingredient, error) {
	rows, err := s.db.Query(`SELECT ` + ingredientCols + ` FROM ingredients ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var ingredients []model.Ingredient
	for rows.Next() {
		i, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		ingredients = append(ingredients, *i)
	}
	return ingredients, rows.Err()
}

func (s *IngredientStore) GetByID(id int64) (*model.Ingredient, error) {
	row := s.db.QueryRow(`SELECT `+ingredientCols+` FROM ingredients WHERE id = ?`, id)
	i, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

func (s *IngredientStore) Create(name string, categoryID *int64) (*model.Ingredient, error) {
	var cID sql.NullInt64
	if categoryID != nil {
		cID = sql.NullInt64{Int64: *categoryID, Valid: true}
	}
	result, err := s.db.Exec(`INSERT INTO ingredients (name, category_id) VALUES (?, ?)`, name, cID)
	if err != nil {
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *IngredientStore) Update(id int64, name string, categoryID *int64) (*model.Ingredient, error) {
	var cID sql.NullInt64
	if categoryID != nil {
		cID = sql.NullInt64{Int64: *categoryID, Valid: true}
	}
	_, err := s.db.Exec(`UPDATE ingredients SET name = ?, category_id = ? WHERE id = ?`, name, cID, id)
	if err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return s.GetByID(id)
}

func (s *IngredientStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM ingredients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}

// --- Market methods ---

const marketCols = `id, name, created_at`

func (s *IngredientStore) ListMarkets() ([]model.Market, error) {
	rows, err := s.db.Query(`SELECT ` + marketCols + ` FROM markets ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	defer rows.Close()

	var markets []model.Market
	for rows.Next() {
		var m model.Market
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan market: %w", err)
		}
		markets = append(markets, m)
	}
	return markets, rows.Err()
}

func (s *IngredientStore) CreateMarket(name string) (*model.Market, error) {
	result, err := s.db.Exec(`INSERT INTO markets (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert market: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+marketCols+` FROM markets WHERE id = ?`, id)
	var m model.Market
	if err := row.Scan(&m.ID, &m.Name, &m.CreatedAt); err != nil {
		return nil, fmt.Errorf("get market: %w", err)
	}
	return &m, nil
}

// --- Purchase option methods ---

func scanOption(scanner interface{ Scan(...any) error }) (*model.PurchaseOption, error) {
	var o model.PurchaseOption
	var marketID sql.NullInt64
	err := scanner.Scan(&o.ID, &o.IngredientID, &marketID, &o.PriceCents, &o.Quantity.Amount, &o.Quantity.UnitID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if marketID.Valid {
		o.MarketID = &marketID.Int64
	}
	return &o, nil
}

const optionCols = `id, ingredient_id, market_id, price_cents, quantity_amount, quantity_unit_id, created_at`

// ListOptions returns an ingredient's purchase options ordered by id so the
// cheapest-on-tie choice is stable.
func (s *IngredientStore) ListOptions(ingredientID int64) ([]model.PurchaseOption, error) {
	rows, err := s.db.Query(`SELECT `+optionCols+` FROM purchase_options WHERE ingredient_id = ? ORDER BY id ASC`, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list options: %w", err)
	}
	defer rows.Close()
	return collectOptions(rows)
}

// AllOptions returns every purchase option grouped by ingredient id.
func (s *IngredientStore) AllOptions() (map[int64][]model.PurchaseOption, error) {
	rows, err := s.db.Query(`SELECT ` + optionCols + ` FROM purchase_options ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all options: %w", err)
	}
	defer rows.Close()

	opts, err := collectOptions(rows)
	if err != nil {
		return nil, err
	}
	m := make(map[int64][]model.PurchaseOption)
	for _, o := range opts {
		m[o.IngredientID] = append(m[o.IngredientID], o)
	}
	return m, nil
}

func collectOptions(rows *sql.Rows) ([]model.PurchaseOption, error) {
	var options []model.PurchaseOption
	for rows.Next() {
		o, err := scanOption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		options = append(options, *o)
	}
	return options, rows.Err()
}

func (s *IngredientStore) CreateOption(ingredientID int64, marketID *int64, priceCents int64, amount float64, unitID int64) (*model.PurchaseOption, error) {
	var mID sql.NullInt64
	if marketID != nil {
		mID = sql.NullInt64{Int64: *marketID, Valid: true}
	}
	result, err := s.db.Exec(
		`INSERT INTO purchase_options (ingredient_id, market_id, price_cents, quantity_amount, quantity_unit_id) VALUES (?, ?, ?, ?, ?)`,
		ingredientID, mID, priceCents, amount, unitID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert option: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+optionCols+` FROM purchase_options WHERE id = ?`, id)
	return scanOption(row)
}

func (s *IngredientStore) DeleteOption(id int64) error {
	_, err := s.db.Exec(`DELETE FROM purchase_options WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete option: %w", err)
	}
	return nil
}

// --- Bridge methods ---

func scanBridge(scanner interface{ Scan(...any) error }) (*model.Bridge, error) {
	var b model.Bridge
	err := scanner.Scan(&b.ID, &b.IngredientID, &b.FromAmount, &b.FromUnitID, &b.ToAmount, &b.ToUnitID, &b.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

const bridgeCols = `id, ingredient_id, from_amount, from_unit_id, to_amount, to_unit_id, created_at`

// ListBridges returns an ingredient's bridges ordered by id. The converter
// uses the first bridge matching a type pair, so this order is load-bearing.
func (s *IngredientStore) ListBridges(ingredientID int64) ([]model.Bridge, error) {
	rows, err := s.db.Query(`SELECT `+bridgeCols+` FROM bridges WHERE ingredient_id = ? ORDER BY id ASC`, ingredientID)
	if err != nil {
		return nil, fmt.Errorf("list bridges: %w", err)
	}
	defer rows.Close()
	return collectBridges(rows)
}

// AllBridges returns every bridge grouped by ingredient id, ordered by id
// within each group.
func (s *IngredientStore) AllBridges() (map[int64][]model.Bridge, error) {
	rows, err := s.db.Query(`SELECT ` + bridgeCols + ` FROM bridges ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("all bridges: %w", err)
	}
	defer rows.Close()

	bridges, err := collectBridges(rows)
	if err != nil {
		return nil, err
	}
	m := make(map[int64][]model.Bridge)
	for _, b := range bridges {
		m[b.IngredientID] = append(m[b.IngredientID], b)
	}
	return m, nil
}

func collectBridges(rows *sql.Rows) ([]model.Bridge, error) {
	var bridges []model.Bridge
	for rows.Next() {
		b, err := scanBridge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bridge: %w", err)
		}
		bridges = append(bridges, *b)
	}
	return bridges, rows.Err()
}

func (s *IngredientStore) CreateBridge(ingredientID int64, fromAmount float64, fromUnitID int64, toAmount float64, toUnitID int64) (*model.Bridge, error) {
	result, err := s.db.Exec(
		`INSERT INTO bridges (ingredient_id, from_amount, from_unit_id, to_amount, to_unit_id) VALUES (?, ?, ?, ?, ?)`,
		ingredientID, fromAmount, fromUnitID, toAmount, toUnitID,
	)
	if err != nil {
		return nil, fmt.Errorf("insert bridge: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+bridgeCols+` FROM bridges WHERE id = ?`, id)
	return scanBridge(row)
}

func (s *IngredientStore) DeleteBridge(id int64) error {
	_, err := s.db.Exec(`DELETE FROM bridges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete bridge: %w", err)
	}
	return nil
}
