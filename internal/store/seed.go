package store

import (
	"fmt"
)

// SeedDefaults inserts the starter catalog for a new household in a single
// transaction: task categories, ingredient units, dish types, the standard
// meal set, task template presets, and a few sample menus.
func (s *HouseholdStore) SeedDefaults(householdID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	categories := []string{"cleaning", "cooking", "laundry", "shopping", "other"}
	for i, name := range categories {
		if _, err := tx.Exec(
			`INSERT INTO task_categories (household_id, name, sort_order) VALUES (?, ?, ?)`,
			householdID, name, i+1,
		); err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	units := []string{"個", "杯", "本", "g", "kg", "ml", "L", "枚", "パック", "丁", "切れ", "玉", "片", "束"}
	for i, u := range units {
		if _, err := tx.Exec(
			`INSERT INTO unit_options (household_id, value, sort_order) VALUES (?, ?, ?)`,
			householdID, u, i+1,
		); err != nil {
			return fmt.Errorf("seed unit %q: %w", u, err)
		}
	}

	dishTypes := []string{"Main", "Soup", "Side", "Salad"}
	dishTypeIDs := make(map[string]int64, len(dishTypes))
	for i, name := range dishTypes {
		res, err := tx.Exec(
			`INSERT INTO dish_types (household_id, name, sort_order) VALUES (?, ?, ?)`,
			householdID, name, i+1,
		)
		if err != nil {
			return fmt.Errorf("seed dish type %q: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		dishTypeIDs[name] = id
	}

	// Standard set: one soup, one main, two sides.
	res, err := tx.Exec(
		`INSERT INTO meal_set_templates (household_id, name) VALUES (?, ?)`,
		householdID, "Aセット",
	)
	if err != nil {
		return fmt.Errorf("seed meal set: %w", err)
	}
	setID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}
	requirements := []struct {
		dishType string
		quantity int
	}{
		{"Soup", 1}, {"Main", 1}, {"Side", 2},
	}
	for _, r := range requirements {
		if _, err := tx.Exec(
			`INSERT INTO meal_set_requirements (meal_set_template_id, dish_type_id, quantity) VALUES (?, ?, ?)`,
			setID, dishTypeIDs[r.dishType], r.quantity,
		); err != nil {
			return fmt.Errorf("seed set requirement %q: %w", r.dishType, err)
		}
	}

	templates := []struct {
		title    string
		memo     string
		category string
		points   int
		priority int
	}{
		{"風呂掃除", "浴槽と排水口を洗う", "cleaning", 3, 3},
		{"洗濯物を干す", "", "laundry", 2, 3},
		{"洗濯物をたたむ", "", "laundry", 2, 3},
		{"掃除機をかける", "リビングと廊下", "cleaning", 3, 3},
		{"ゴミ出し", "分別を確認する", "other", 1, 2},
		{"食器洗い", "", "cooking", 2, 3},
	}
	for _, tpl := range templates {
		if _, err := tx.Exec(
			`INSERT INTO task_templates (household_id, title, memo, category, proposed_points, priority)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			householdID, tpl.title, tpl.memo, tpl.category, tpl.points, tpl.priority,
		); err != nil {
			return fmt.Errorf("seed task template %q: %w", tpl.title, err)
		}
	}

	menus := []struct {
		name        string
		dishType    string
		ingredients []struct {
			name     string
			quantity float64
			unit     string
		}
	}{
		{"肉じゃが", "Main", []struct {
			name     string
			quantity float64
			unit     string
		}{{"じゃがいも", 3, "個"}, {"玉ねぎ", 1, "個"}, {"豚こま肉", 200, "g"}}},
		{"味噌汁", "Soup", []struct {
			name     string
			quantity float64
			unit     string
		}{{"豆腐", 0.5, "丁"}, {"わかめ", 5, "g"}}},
		{"ほうれん草のおひたし", "Side", []struct {
			name     string
			quantity float64
			unit     string
		}{{"ほうれん草", 1, "束"}}},
		{"グリーンサラダ", "Salad", []struct {
			name     string
			quantity float64
			unit     string
		}{{"レタス", 0.5, "玉"}, {"トマト", 1, "個"}}},
	}
	for _, m := range menus {
		res, err := tx.Exec(
			`INSERT INTO menus (household_id, name, dish_type_id) VALUES (?, ?, ?)`,
			householdID, m.name, dishTypeIDs[m.dishType],
		)
		if err != nil {
			return fmt.Errorf("seed menu %q: %w", m.name, err)
		}
		menuID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		for _, ing := range m.ingredients {
			if _, err := tx.Exec(
				`INSERT OR IGNORE INTO ingredients (household_id, name, unit) VALUES (?, ?, ?)`,
				householdID, ing.name, ing.unit,
			); err != nil {
				return fmt.Errorf("seed ingredient %q: %w", ing.name, err)
			}
			var ingID int64
			if err := tx.QueryRow(
				`SELECT id FROM ingredients WHERE household_id = ? AND name = ? AND unit = ?`,
				householdID, ing.name, ing.unit,
			).Scan(&ingID); err != nil {
				return fmt.Errorf("lookup ingredient %q: %w", ing.name, err)
			}
			if _, err := tx.Exec(
				`INSERT INTO menu_ingredients (menu_id, ingredient_id, quantity, unit) VALUES (?, ?, ?, ?)`,
				menuID, ingID, ing.quantity, ing.unit,
			); err != nil {
				return fmt.Errorf("seed menu ingredient %q: %w", ing.name, err)
			}
		}
	}

	return tx.Commit()
}
