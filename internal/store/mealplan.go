package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkondo/kajiboard/internal/model"
)

type MealPlanStore struct {
	db *sql.DB
}

func NewMealPlanStore(db *sql.DB) *MealPlanStore {
	return &MealPlanStore{db: db}
}

func scanMealPlan(scanner interface{ Scan(...any) error }) (*model.MealPlan, error) {
	var p model.MealPlan
	err := scanner.Scan(&p.ID, &p.HouseholdID, &p.Title, &p.StartDate, &p.Days, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanMealPlanDay(scanner interface{ Scan(...any) error }) (*model.MealPlanDay, error) {
	var d model.MealPlanDay
	var lunch, dinner, lunchSet, dinnerSet sql.NullInt64
	err := scanner.Scan(&d.ID, &d.MealPlanID, &d.DayDate, &lunch, &dinner, &lunchSet, &dinnerSet)
	if err != nil {
		return nil, err
	}
	if lunch.Valid {
		d.LunchMenuID = &lunch.Int64
	}
	if dinner.Valid {
		d.DinnerMenuID = &dinner.Int64
	}
	if lunchSet.Valid {
		d.LunchSetTemplateID = &lunchSet.Int64
	}
	if dinnerSet.Valid {
		d.DinnerSetTemplateID = &dinnerSet.Int64
	}
	return &d, nil
}

const mealPlanCols = `id, household_id, title, start_date, days, created_at`
const mealPlanDayCols = `id, meal_plan_id, day_date, lunch_menu_id, dinner_menu_id, lunch_set_template_id, dinner_set_template_id`

func (s *MealPlanStore) Create(householdID int64, title, startDate string, days int) (*model.MealPlan, error) {
	result, err := s.db.Exec(
		`INSERT INTO meal_plans (household_id, title, start_date, days) VALUES (?, ?, ?, ?)`,
		householdID, title, startDate, days,
	)
	if err != nil {
		return nil, fmt.Errorf("insert meal plan: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *MealPlanStore) GetByID(householdID, id int64) (*model.MealPlan, error) {
	row := s.db.QueryRow(
		`SELECT `+mealPlanCols+` FROM meal_plans WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	p, err := scanMealPlan(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get meal plan: %w", err)
	}
	return p, nil
}

func (s *MealPlanStore) List(householdID int64) ([]model.MealPlan, error) {
	rows, err := s.db.Query(
		`SELECT `+mealPlanCols+` FROM meal_plans WHERE household_id = ? ORDER BY start_date DESC, id DESC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []model.MealPlan
	for rows.Next() {
		p, err := scanMealPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meal plan: %w", err)
		}
		plans = append(plans, *p)
	}
	return plans, rows.Err()
}

func (s *MealPlanStore) Delete(householdID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM meal_plans WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete meal plan: %w", err)
	}
	return nil
}

// EnsureDays inserts one day row per plan date that does not exist yet. Safe
// to call repeatedly; existing rows keep their menu and set assignments.
func (s *MealPlanStore) EnsureDays(plan *model.MealPlan) error {
	start, err := time.Parse(model.DateLayout, plan.StartDate)
	if err != nil {
		return fmt.Errorf("parse plan start date: %w", err)
	}
	for i := 0; i < plan.Days; i++ {
		date := start.AddDate(0, 0, i).Format(model.DateLayout)
		if _, err := s.db.Exec(
			`INSERT OR IGNORE INTO meal_plan_days (meal_plan_id, day_date) VALUES (?, ?)`,
			plan.ID, date,
		); err != nil {
			return fmt.Errorf("ensure plan day %s: %w", date, err)
		}
	}
	return nil
}

func (s *MealPlanStore) ListDays(planID int64) ([]model.MealPlanDay, error) {
	rows, err := s.db.Query(
		`SELECT `+mealPlanDayCols+` FROM meal_plan_days WHERE meal_plan_id = ? ORDER BY day_date`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plan days: %w", err)
	}
	defer rows.Close()

	var days []model.MealPlanDay
	for rows.Next() {
		d, err := scanMealPlanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan day: %w", err)
		}
		days = append(days, *d)
	}
	return days, rows.Err()
}

// ListDueDays returns days across all of a household's plans whose date is on
// or before today, for the meal task runner.
func (s *MealPlanStore) ListDueDays(householdID int64, today string) ([]model.MealPlanDay, error) {
	rows, err := s.db.Query(
		`SELECT d.id, d.meal_plan_id, d.day_date, d.lunch_menu_id, d.dinner_menu_id,
			d.lunch_set_template_id, d.dinner_set_template_id
		 FROM meal_plan_days d
		 JOIN meal_plans p ON p.id = d.meal_plan_id
		 WHERE p.household_id = ? AND d.day_date <= ?
		 ORDER BY d.day_date, d.id`,
		householdID, today,
	)
	if err != nil {
		return nil, fmt.Errorf("list due plan days: %w", err)
	}
	defer rows.Close()

	var days []model.MealPlanDay
	for rows.Next() {
		d, err := scanMealPlanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan day: %w", err)
		}
		days = append(days, *d)
	}
	return days, rows.Err()
}

func (s *MealPlanStore) GetDay(dayID int64) (*model.MealPlanDay, error) {
	row := s.db.QueryRow(`SELECT `+mealPlanDayCols+` FROM meal_plan_days WHERE id = ?`, dayID)
	d, err := scanMealPlanDay(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get plan day: %w", err)
	}
	return d, nil
}

// UpdateDaySets assigns the lunch and dinner set templates for a day.
func (s *MealPlanStore) UpdateDaySets(dayID int64, lunchSetID, dinnerSetID *int64) error {
	_, err := s.db.Exec(
		`UPDATE meal_plan_days SET lunch_set_template_id = ?, dinner_set_template_id = ? WHERE id = ?`,
		nullInt64(lunchSetID), nullInt64(dinnerSetID), dayID,
	)
	if err != nil {
		return fmt.Errorf("update day sets: %w", err)
	}
	return nil
}

// UpdateDayMenus assigns the legacy single lunch and dinner menu columns.
func (s *MealPlanStore) UpdateDayMenus(dayID int64, lunchMenuID, dinnerMenuID *int64) error {
	_, err := s.db.Exec(
		`UPDATE meal_plan_days SET lunch_menu_id = ?, dinner_menu_id = ? WHERE id = ?`,
		nullInt64(lunchMenuID), nullInt64(dinnerMenuID), dayID,
	)
	if err != nil {
		return fmt.Errorf("update day menus: %w", err)
	}
	return nil
}

// ReplaceSelections rewrites a day's menu selections wholesale: both slots
// are cleared, then the given lunch and dinner menu lists re-inserted.
func (s *MealPlanStore) ReplaceSelections(dayID int64, lunchMenuIDs, dinnerMenuIDs []int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM meal_plan_selections WHERE meal_plan_day_id = ?`, dayID); err != nil {
		return fmt.Errorf("clear selections: %w", err)
	}
	insert := func(slot string, menuIDs []int64) error {
		for _, menuID := range menuIDs {
			if _, err := tx.Exec(
				`INSERT INTO meal_plan_selections (meal_plan_day_id, slot, menu_id) VALUES (?, ?, ?)`,
				dayID, slot, menuID,
			); err != nil {
				return fmt.Errorf("insert selection: %w", err)
			}
		}
		return nil
	}
	if err := insert(model.MealSlotLunch, lunchMenuIDs); err != nil {
		return err
	}
	if err := insert(model.MealSlotDinner, dinnerMenuIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *MealPlanStore) ListSelectionsForDay(dayID int64) ([]model.MealPlanSelection, error) {
	rows, err := s.db.Query(
		`SELECT id, meal_plan_day_id, slot, menu_id FROM meal_plan_selections
		 WHERE meal_plan_day_id = ? ORDER BY slot, id`,
		dayID,
	)
	if err != nil {
		return nil, fmt.Errorf("list day selections: %w", err)
	}
	defer rows.Close()

	var sels []model.MealPlanSelection
	for rows.Next() {
		var sel model.MealPlanSelection
		if err := rows.Scan(&sel.ID, &sel.MealPlanDayID, &sel.Slot, &sel.MenuID); err != nil {
			return nil, fmt.Errorf("scan selection: %w", err)
		}
		sels = append(sels, sel)
	}
	return sels, rows.Err()
}

// PlanMenuIDs collects every menu id referenced by the plan: the legacy
// per-day lunch/dinner columns plus all selections. This feeds ingredient
// aggregation.
func (s *MealPlanStore) PlanMenuIDs(planID int64) ([]int64, error) {
	rows, err := s.db.Query(
		`SELECT lunch_menu_id FROM meal_plan_days WHERE meal_plan_id = ? AND lunch_menu_id IS NOT NULL
		 UNION
		 SELECT dinner_menu_id FROM meal_plan_days WHERE meal_plan_id = ? AND dinner_menu_id IS NOT NULL
		 UNION
		 SELECT s.menu_id FROM meal_plan_selections s
			JOIN meal_plan_days d ON d.id = s.meal_plan_day_id
			WHERE d.meal_plan_id = ?`,
		planID, planID, planID,
	)
	if err != nil {
		return nil, fmt.Errorf("plan menu ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan menu id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
