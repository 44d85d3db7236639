package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mkondo/kajiboard/internal/model"
)

type MenuStore struct {
	db          *sql.DB
	ingredients *IngredientStore
}

func NewMenuStore(db *sql.DB) *MenuStore {
	return &MenuStore{db: db, ingredients: NewIngredientStore(db)}
}

func scanMenu(scanner interface{ Scan(...any) error }) (*model.Menu, error) {
	var m model.Menu
	var dishType sql.NullInt64
	err := scanner.Scan(&m.ID, &m.HouseholdID, &m.Name, &dishType, &m.Memo, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if dishType.Valid {
		m.DishTypeID = &dishType.Int64
	}
	return &m, nil
}

const menuCols = `id, household_id, name, dish_type_id, memo, created_at, updated_at`

func (s *MenuStore) Create(householdID int64, name string, dishTypeID *int64, memo string) (*model.Menu, error) {
	result, err := s.db.Exec(
		`INSERT INTO menus (household_id, name, dish_type_id, memo) VALUES (?, ?, ?, ?)`,
		householdID, name, nullInt64(dishTypeID), memo,
	)
	if err != nil {
		return nil, fmt.Errorf("insert menu: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *MenuStore) GetByID(householdID, id int64) (*model.Menu, error) {
	row := s.db.QueryRow(`SELECT `+menuCols+` FROM menus WHERE id = ? AND household_id = ?`, id, householdID)
	m, err := scanMenu(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	return m, nil
}

func (s *MenuStore) GetByName(householdID int64, name string) (*model.Menu, error) {
	row := s.db.QueryRow(
		`SELECT `+menuCols+` FROM menus WHERE household_id = ? AND name = ? ORDER BY id LIMIT 1`,
		householdID, name,
	)
	m, err := scanMenu(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu by name: %w", err)
	}
	return m, nil
}

func (s *MenuStore) List(householdID int64) ([]model.Menu, error) {
	rows, err := s.db.Query(
		`SELECT `+menuCols+` FROM menus WHERE household_id = ? ORDER BY name`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var menus []model.Menu
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, *m)
	}
	return menus, rows.Err()
}

func (s *MenuStore) Update(householdID, id int64, name string, dishTypeID *int64, memo string) (*model.Menu, error) {
	_, err := s.db.Exec(
		`UPDATE menus SET name = ?, dish_type_id = ?, memo = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		name, nullInt64(dishTypeID), memo, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update menu: %w", err)
	}
	return s.GetByID(householdID, id)
}

// Delete removes a menu and its ingredient lines.
func (s *MenuStore) Delete(householdID, id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM menu_ingredients WHERE menu_id = ?`, id); err != nil {
		return fmt.Errorf("delete menu ingredients: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM menus WHERE id = ? AND household_id = ?`, id, householdID); err != nil {
		return fmt.Errorf("delete menu: %w", err)
	}
	return tx.Commit()
}

// IngredientLine is one requested ingredient when rewriting a menu.
type IngredientLine struct {
	Name     string
	Quantity float64
	Unit     string
}

// ReplaceIngredients rewrites a menu's ingredient lines wholesale: delete
// everything, then re-insert. Ingredients are resolved get-or-create by
// (name, unit). Blank names are skipped.
func (s *MenuStore) ReplaceIngredients(householdID, menuID int64, lines []IngredientLine) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM menu_ingredients WHERE menu_id = ?`, menuID); err != nil {
		return fmt.Errorf("clear menu ingredients: %w", err)
	}

	for _, line := range lines {
		name := strings.TrimSpace(line.Name)
		if name == "" {
			continue
		}
		if _, err := tx.Exec(
			`INSERT OR IGNORE INTO ingredients (household_id, name, unit) VALUES (?, ?, ?)`,
			householdID, name, line.Unit,
		); err != nil {
			return fmt.Errorf("insert ingredient: %w", err)
		}
		var ingredientID int64
		if err := tx.QueryRow(
			`SELECT id FROM ingredients WHERE household_id = ? AND name = ? AND unit = ?`,
			householdID, name, line.Unit,
		).Scan(&ingredientID); err != nil {
			return fmt.Errorf("lookup ingredient: %w", err)
		}
		if _, err := tx.Exec(
			`INSERT INTO menu_ingredients (menu_id, ingredient_id, quantity, unit) VALUES (?, ?, ?, ?)`,
			menuID, ingredientID, line.Quantity, line.Unit,
		); err != nil {
			return fmt.Errorf("insert menu ingredient: %w", err)
		}
	}
	return tx.Commit()
}

// ListIngredients returns a menu's ingredient lines with ingredient names
// joined in.
func (s *MenuStore) ListIngredients(menuID int64) ([]model.MenuIngredient, error) {
	rows, err := s.db.Query(
		`SELECT mi.id, mi.menu_id, mi.ingredient_id, i.name, mi.quantity, mi.unit
		 FROM menu_ingredients mi
		 JOIN ingredients i ON i.id = mi.ingredient_id
		 WHERE mi.menu_id = ?
		 ORDER BY i.name`,
		menuID,
	)
	if err != nil {
		return nil, fmt.Errorf("list menu ingredients: %w", err)
	}
	defer rows.Close()

	var lines []model.MenuIngredient
	for rows.Next() {
		var mi model.MenuIngredient
		if err := rows.Scan(&mi.ID, &mi.MenuID, &mi.IngredientID, &mi.Name, &mi.Quantity, &mi.Unit); err != nil {
			return nil, fmt.Errorf("scan menu ingredient: %w", err)
		}
		lines = append(lines, mi)
	}
	return lines, rows.Err()
}

// AggregateIngredients sums menu ingredient quantities across the given
// menus, grouped by (name, unit), sorted by name then unit. Duplicate ids are
// collapsed first; a menu contributes once no matter how often it is planned.
func (s *MenuStore) AggregateIngredients(menuIDs []int64) ([]model.IngredientTotal, error) {
	if len(menuIDs) == 0 {
		return nil, nil
	}

	seen := make(map[int64]bool)
	var args []any
	for _, id := range menuIDs {
		if !seen[id] {
			seen[id] = true
			args = append(args, id)
		}
	}
	placeholders := `?` + strings.Repeat(", ?", len(args)-1)

	rows, err := s.db.Query(
		`SELECT i.name, mi.unit, SUM(mi.quantity)
		 FROM menu_ingredients mi
		 JOIN ingredients i ON i.id = mi.ingredient_id
		 WHERE mi.menu_id IN (`+placeholders+`)
		 GROUP BY i.name, mi.unit
		 ORDER BY i.name, mi.unit`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate ingredients: %w", err)
	}
	defer rows.Close()

	var out []model.IngredientTotal
	for rows.Next() {
		var t model.IngredientTotal
		if err := rows.Scan(&t.Name, &t.Unit, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan aggregate row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// UsageCounts reports how many plan slots reference each menu, either through
// the legacy day columns or through selections.
func (s *MenuStore) UsageCounts(householdID int64) (map[int64]int, error) {
	counts := make(map[int64]int)

	rows, err := s.db.Query(
		`SELECT menu_id, COUNT(*) FROM (
			SELECT lunch_menu_id AS menu_id FROM meal_plan_days d
				JOIN meal_plans p ON p.id = d.meal_plan_id
				WHERE p.household_id = ? AND lunch_menu_id IS NOT NULL
			UNION ALL
			SELECT dinner_menu_id FROM meal_plan_days d
				JOIN meal_plans p ON p.id = d.meal_plan_id
				WHERE p.household_id = ? AND dinner_menu_id IS NOT NULL
			UNION ALL
			SELECT s.menu_id FROM meal_plan_selections s
				JOIN meal_plan_days d ON d.id = s.meal_plan_day_id
				JOIN meal_plans p ON p.id = d.meal_plan_id
				WHERE p.household_id = ?
		 ) GROUP BY menu_id`,
		householdID, householdID, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("menu usage counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var menuID int64
		var n int
		if err := rows.Scan(&menuID, &n); err != nil {
			return nil, fmt.Errorf("scan usage count: %w", err)
		}
		counts[menuID] = n
	}
	return counts, rows.Err()
}
