package store

import (
	"database/sql"
	"fmt"

	"github.com/mkondo/kajiboard/internal/model"
)

// MealSetStore covers meal set templates, their requirements, and dish types.
type MealSetStore struct {
	db *sql.DB
}

func NewMealSetStore(db *sql.DB) *MealSetStore {
	return &MealSetStore{db: db}
}

// --- Dish types ---

func scanDishType(scanner interface{ Scan(...any) error }) (*model.DishType, error) {
	var d model.DishType
	err := scanner.Scan(&d.ID, &d.HouseholdID, &d.Name, &d.SortOrder)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

const dishTypeCols = `id, household_id, name, sort_order`

func (s *MealSetStore) ListDishTypes(householdID int64) ([]model.DishType, error) {
	rows, err := s.db.Query(
		`SELECT `+dishTypeCols+` FROM dish_types WHERE household_id = ? ORDER BY sort_order, name`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list dish types: %w", err)
	}
	defer rows.Close()

	var types []model.DishType
	for rows.Next() {
		d, err := scanDishType(rows)
		if err != nil {
			return nil, fmt.Errorf("scan dish type: %w", err)
		}
		types = append(types, *d)
	}
	return types, rows.Err()
}

func (s *MealSetStore) GetDishTypeByName(householdID int64, name string) (*model.DishType, error) {
	row := s.db.QueryRow(
		`SELECT `+dishTypeCols+` FROM dish_types WHERE household_id = ? AND name = ?`,
		householdID, name,
	)
	d, err := scanDishType(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get dish type: %w", err)
	}
	return d, nil
}

// UpsertDishType matches on name; import relies on this.
func (s *MealSetStore) UpsertDishType(householdID int64, name string, sortOrder int) error {
	_, err := s.db.Exec(
		`INSERT INTO dish_types (household_id, name, sort_order) VALUES (?, ?, ?)
		 ON CONFLICT (household_id, name) DO UPDATE SET sort_order = excluded.sort_order`,
		householdID, name, sortOrder,
	)
	if err != nil {
		return fmt.Errorf("upsert dish type: %w", err)
	}
	return nil
}

// --- Meal set templates ---

func scanMealSet(scanner interface{ Scan(...any) error }) (*model.MealSetTemplate, error) {
	var m model.MealSetTemplate
	err := scanner.Scan(&m.ID, &m.HouseholdID, &m.Name)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const mealSetCols = `id, household_id, name`

func (s *MealSetStore) Create(householdID int64, name string) (*model.MealSetTemplate, error) {
	result, err := s.db.Exec(
		`INSERT INTO meal_set_templates (household_id, name) VALUES (?, ?)`,
		householdID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert meal set: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *MealSetStore) GetByID(householdID, id int64) (*model.MealSetTemplate, error) {
	row := s.db.QueryRow(
		`SELECT `+mealSetCols+` FROM meal_set_templates WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	m, err := scanMealSet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal set: %w", err)
	}
	return m, nil
}

func (s *MealSetStore) GetByName(householdID int64, name string) (*model.MealSetTemplate, error) {
	row := s.db.QueryRow(
		`SELECT `+mealSetCols+` FROM meal_set_templates WHERE household_id = ? AND name = ?`,
		householdID, name,
	)
	m, err := scanMealSet(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal set by name: %w", err)
	}
	return m, nil
}

func (s *MealSetStore) List(householdID int64) ([]model.MealSetTemplate, error) {
	rows, err := s.db.Query(
		`SELECT `+mealSetCols+` FROM meal_set_templates WHERE household_id = ? ORDER BY name`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list meal sets: %w", err)
	}
	defer rows.Close()

	var sets []model.MealSetTemplate
	for rows.Next() {
		m, err := scanMealSet(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal set: %w", err)
		}
		sets = append(sets, *m)
	}
	return sets, rows.Err()
}

func (s *MealSetStore) Delete(householdID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM meal_set_templates WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete meal set: %w", err)
	}
	return nil
}

// --- Requirements ---

// ListRequirements returns a set's requirements with dish type names joined.
func (s *MealSetStore) ListRequirements(setID int64) ([]model.MealSetRequirement, error) {
	rows, err := s.db.Query(
		`SELECT r.id, r.meal_set_template_id, r.dish_type_id, d.name, r.quantity
		 FROM meal_set_requirements r
		 JOIN dish_types d ON d.id = r.dish_type_id
		 WHERE r.meal_set_template_id = ?
		 ORDER BY d.sort_order, d.name`,
		setID,
	)
	if err != nil {
		return nil, fmt.Errorf("list set requirements: %w", err)
	}
	defer rows.Close()

	var reqs []model.MealSetRequirement
	for rows.Next() {
		var r model.MealSetRequirement
		if err := rows.Scan(&r.ID, &r.MealSetTemplateID, &r.DishTypeID, &r.DishTypeName, &r.Quantity); err != nil {
			return nil, fmt.Errorf("scan set requirement: %w", err)
		}
		reqs = append(reqs, r)
	}
	return reqs, rows.Err()
}

// RequirementLine is one dish-type requirement when rewriting a set.
type RequirementLine struct {
	DishTypeID int64
	Quantity   int
}

// ReplaceRequirements rewrites a set's requirements wholesale: delete
// everything, then re-insert.
func (s *MealSetStore) ReplaceRequirements(setID int64, lines []RequirementLine) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM meal_set_requirements WHERE meal_set_template_id = ?`, setID); err != nil {
		return fmt.Errorf("clear set requirements: %w", err)
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO meal_set_requirements (meal_set_template_id, dish_type_id, quantity) VALUES (?, ?, ?)`,
			setID, line.DishTypeID, line.Quantity,
		); err != nil {
			return fmt.Errorf("insert set requirement: %w", err)
		}
	}
	return tx.Commit()
}
