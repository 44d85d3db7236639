package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mkondo/kajiboard/internal/model"
)

// ErrIngredientInUse is returned when deleting an ingredient that menus still
// reference.
var ErrIngredientInUse = errors.New("ingredient is referenced by a menu")

type IngredientStore struct {
	db *sql.DB
}

func NewIngredientStore(db *sql.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

func scanIngredient(scanner interface{ Scan(...any) error }) (*model.Ingredient, error) {
	var i model.Ingredient
	err := scanner.Scan(&i.ID, &i.HouseholdID, &i.Name, &i.Unit)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

const ingredientCols = `id, household_id, name, unit`

// GetOrCreate returns the ingredient for (name, unit), creating it on first
// use. (household, name, unit) is unique, so concurrent callers converge on
// the same row.
func (s *IngredientStore) GetOrCreate(householdID int64, name, unit string) (*model.Ingredient, error) {
	if _, err := s.db.Exec(
		`INSERT OR IGNORE INTO ingredients (household_id, name, unit) VALUES (?, ?, ?)`,
		householdID, name, unit,
	); err != nil {
		return nil, fmt.Errorf("insert ingredient: %w", err)
	}
	row := s.db.QueryRow(
		`SELECT `+ingredientCols+` FROM ingredients WHERE household_id = ? AND name = ? AND unit = ?`,
		householdID, name, unit,
	)
	i, err := scanIngredient(row)
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

func (s *IngredientStore) GetByID(householdID, id int64) (*model.Ingredient, error) {
	row := s.db.QueryRow(
		`SELECT `+ingredientCols+` FROM ingredients WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	i, err := scanIngredient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return i, nil
}

func (s *IngredientStore) List(householdID int64) ([]model.Ingredient, error) {
	rows, err := s.db.Query(
		`SELECT `+ingredientCols+` FROM ingredients WHERE household_id = ? ORDER BY name, unit`,
		householdID,
	)
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

// Delete removes an ingredient, failing with ErrIngredientInUse while any
// menu line still points at it.
func (s *IngredientStore) Delete(householdID, id int64) error {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM menu_ingredients WHERE ingredient_id = ?`, id,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("check ingredient usage: %w", err)
	}
	if n > 0 {
		return ErrIngredientInUse
	}
	_, err = s.db.Exec(`DELETE FROM ingredients WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	return nil
}

// --- Unit options ---

func scanUnitOption(scanner interface{ Scan(...any) error }) (*model.UnitOption, error) {
	var u model.UnitOption
	var active int
	err := scanner.Scan(&u.ID, &u.HouseholdID, &u.Value, &u.SortOrder, &active)
	if err != nil {
		return nil, err
	}
	u.Active = active != 0
	return &u, nil
}

const unitOptionCols = `id, household_id, value, sort_order, active`

func (s *IngredientStore) ListUnitOptions(householdID int64, activeOnly bool) ([]model.UnitOption, error) {
	query := `SELECT ` + unitOptionCols + ` FROM unit_options WHERE household_id = ?`
	if activeOnly {
		query += ` AND active = 1`
	}
	query += ` ORDER BY sort_order, value`

	rows, err := s.db.Query(query, householdID)
	if err != nil {
		return nil, fmt.Errorf("list unit options: %w", err)
	}
	defer rows.Close()

	var units []model.UnitOption
	for rows.Next() {
		u, err := scanUnitOption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit option: %w", err)
		}
		units = append(units, *u)
	}
	return units, rows.Err()
}

// UpsertUnitOption matches on value and updates sort order and active flag,
// inserting when absent. Import relies on this.
func (s *IngredientStore) UpsertUnitOption(householdID int64, value string, sortOrder int, active bool) error {
	_, err := s.db.Exec(
		`INSERT INTO unit_options (household_id, value, sort_order, active) VALUES (?, ?, ?, ?)
		 ON CONFLICT (household_id, value) DO UPDATE SET sort_order = excluded.sort_order, active = excluded.active`,
		householdID, value, sortOrder, active,
	)
	if err != nil {
		return fmt.Errorf("upsert unit option: %w", err)
	}
	return nil
}
