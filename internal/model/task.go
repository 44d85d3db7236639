package model

import "time"

type TaskCategory struct {
	ID          int64  `json:"id"`
	HouseholdID int64  `json:"household_id"`
	Name        string `json:"name"`
	SortOrder   int    `json:"sort_order"`
}

type Task struct {
	ID               int64     `json:"id"`
	HouseholdID      int64     `json:"household_id"`
	OrderNumber      int       `json:"order_number"`
	Title            string    `json:"title"`
	Notes            string    `json:"notes"`
	Category         string    `json:"category"`
	Status           string    `json:"status"`
	ProposedPoints   int       `json:"proposed_points"`
	ActualPoints     *int      `json:"actual_points"`
	Priority         int       `json:"priority"`
	DueDate          string    `json:"due_date"`
	DueTime          string    `json:"due_time"`
	InstructionImage string    `json:"instruction_image"`
	CreatedBy        int64     `json:"created_by"`
	AssigneeID       *int64    `json:"assignee_id"`
	MealPlanDayID    *int64    `json:"meal_plan_day_id"`
	MealSlot         string    `json:"meal_slot"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type TaskTemplate struct {
	ID             int64     `json:"id"`
	HouseholdID    int64     `json:"household_id"`
	Title          string    `json:"title"`
	Memo           string    `json:"memo"`
	Category       string    `json:"category"`
	ProposedPoints int       `json:"proposed_points"`
	Priority       int       `json:"priority"`
	Instructions   string    `json:"instructions"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type RecurringTaskRule struct {
	ID              int64     `json:"id"`
	HouseholdID     int64     `json:"household_id"`
	TaskTemplateID  int64     `json:"task_template_id"`
	Frequency       string    `json:"frequency"`
	NextRunDate     string    `json:"next_run_date"`
	RelativeDueDays int       `json:"relative_due_days"`
	Active          bool      `json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
