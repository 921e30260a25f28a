package store

import (
	"database/sql"
	"fmt"

	"github.com/jand19081/ladle/internal/model"
)

type UnitStore struct {
	db *sql.DB
}

func NewUnitStore(db *sql.DB) *UnitStore {
	return &UnitStore{db: db}
}

func scanUnit(scanner interface{ Scan(...any) error }) (*model.Unit, error) {
	var u model.Unit
	var isSystem int
	err := scanner.Scan(&u.ID, &u.Type, &u.Abbrev, &u.FactorToBase, &isSystem, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	u.IsSystem = isSystem != 0
	return &u, nil
}

const unitCols = `id, type, abbrev, factor_to_base, is_system, created_at`

func (s *UnitStore) List() ([]model.Unit, error) {
	rows, err := s.db.Query(`SELECT ` + unitCols + ` FROM units ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()

	var units []model.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

// Map returns all units keyed by id, the shape the converter and the
// costing snapshot want.
func (s *UnitStore) Map() (map[int64]model.Unit, error) {
	units, err := s.List()
	if err != nil {
		return nil, err
	}
	m := make(map[int64]model.Unit, len(units))
	for _, u := range units {
		m[u.ID] = u
	}
	return m, nil
}

func (s *UnitStore) GetByID(id int64) (*model.Unit, error) {
	row := s.db.QueryRow(`SELECT `+unitCols+` FROM units WHERE id = ?`, id)
	u, err := scanUnit(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

// CreateCustom adds a user-defined unit. A factor of zero means the unit
// has no relation to its type's base and converts only through bridges.
func (s *UnitStore) CreateCustom(unitType model.UnitType, abbrev string, factorToBase float64) (*model.Unit, error) {
	result, err := s.db.Exec(
		`INSERT INTO units (type, abbrev, factor_to_base, is_system) VALUES (?, ?, ?, 0)`,
		unitType, abbrev, factorToBase,
	)
	if err != nil {
		return nil, fmt.Errorf("insert unit: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a custom unit. System units cannot be deleted.
func (s *UnitStore) Delete(id int64) error {
	result, err := s.db.Exec(`DELETE FROM units WHERE id = ? AND is_system = 0`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("unit %d is a system unit or does not exist", id)
	}
	return nil
}
