package model

import "time"

// Meal slots on a plan day.
const (
	MealSlotLunch  = "lunch"
	MealSlotDinner = "dinner"
)

type UnitOption struct {
	ID          int64  `json:"id"`
	HouseholdID int64  `json:"household_id"`
	Value       string `json:"value"`
	SortOrder   int    `json:"sort_order"`
	Active      bool   `json:"active"`
}

type DishType struct {
	ID          int64  `json:"id"`
	HouseholdID int64  `json:"household_id"`
	Name        string `json:"name"`
	SortOrder   int    `json:"sort_order"`
}

type Ingredient struct {
	ID          int64  `json:"id"`
	HouseholdID int64  `json:"household_id"`
	Name        string `json:"name"`
	Unit        string `json:"unit"`
}

type Menu struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	Name        string    `json:"name"`
	DishTypeID  *int64    `json:"dish_type_id"`
	Memo        string    `json:"memo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuIngredient is one ingredient line on a menu. Unit is a snapshot of the
// ingredient's unit at the time the line was written.
type MenuIngredient struct {
	ID           int64   `json:"id"`
	MenuID       int64   `json:"menu_id"`
	IngredientID int64   `json:"ingredient_id"`
	Name         string  `json:"name"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
}

type MealSetTemplate struct {
	ID          int64  `json:"id"`
	HouseholdID int64  `json:"household_id"`
	Name        string `json:"name"`
}

type MealSetRequirement struct {
	ID                int64  `json:"id"`
	MealSetTemplateID int64  `json:"meal_set_template_id"`
	DishTypeID        int64  `json:"dish_type_id"`
	DishTypeName      string `json:"dish_type_name"`
	Quantity          int    `json:"quantity"`
}

type MealPlan struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	Title       string    `json:"title"`
	StartDate   string    `json:"start_date"`
	Days        int       `json:"days"`
	CreatedAt   time.Time `json:"created_at"`
}

type MealPlanDay struct {
	ID                  int64  `json:"id"`
	MealPlanID          int64  `json:"meal_plan_id"`
	DayDate             string `json:"day_date"`
	LunchMenuID         *int64 `json:"lunch_menu_id"`
	DinnerMenuID        *int64 `json:"dinner_menu_id"`
	LunchSetTemplateID  *int64 `json:"lunch_set_template_id"`
	DinnerSetTemplateID *int64 `json:"dinner_set_template_id"`
}

type MealPlanSelection struct {
	ID            int64  `json:"id"`
	MealPlanDayID int64  `json:"meal_plan_day_id"`
	Slot          string `json:"slot"`
	MenuID        int64  `json:"menu_id"`
}

// IngredientTotal is one row of a plan's aggregated shopping list: quantities
// summed across menus grouped by (name, unit).
type IngredientTotal struct {
	Name     string  `json:"name"`
	Unit     string  `json:"unit"`
	Quantity float64 `json:"quantity"`
}
