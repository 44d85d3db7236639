package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mkondo/kajiboard/internal/model"
)

type TaskStore struct {
	db *sql.DB
}

func NewTaskStore(db *sql.DB) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var actual sql.NullInt64
	var assignee, mealDay sql.NullInt64
	err := scanner.Scan(&t.ID, &t.HouseholdID, &t.OrderNumber, &t.Title, &t.Notes,
		&t.Category, &t.Status, &t.ProposedPoints, &actual, &t.Priority,
		&t.DueDate, &t.DueTime, &t.InstructionImage, &t.CreatedBy, &assignee,
		&mealDay, &t.MealSlot, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if actual.Valid {
		v := int(actual.Int64)
		t.ActualPoints = &v
	}
	if assignee.Valid {
		t.AssigneeID = &assignee.Int64
	}
	if mealDay.Valid {
		t.MealPlanDayID = &mealDay.Int64
	}
	return &t, nil
}

const taskCols = `id, household_id, order_number, title, notes, category, status,
	proposed_points, actual_points, priority, due_date, due_time, instruction_image,
	created_by, assignee_id, meal_plan_day_id, meal_slot, created_at, updated_at`

// TaskParams carries the writable fields for task creation.
type TaskParams struct {
	Title          string
	Notes          string
	Category       string
	ProposedPoints int
	Priority       int
	DueDate        string
	DueTime        string
	AssigneeID     *int64
	MealPlanDayID  *int64
	MealSlot       string
}

// Create inserts a new open task. The per-household order number is assigned
// inside a transaction so two concurrent creates do not collide.
func (s *TaskStore) Create(householdID, createdBy int64, p TaskParams) (*model.Task, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(
		`SELECT COALESCE(MAX(order_number), 0) + 1 FROM tasks WHERE household_id = ?`,
		householdID,
	).Scan(&next); err != nil {
		return nil, fmt.Errorf("next order number: %w", err)
	}

	result, err := tx.Exec(
		`INSERT INTO tasks (household_id, order_number, title, notes, category,
			proposed_points, priority, due_date, due_time, created_by, assignee_id,
			meal_plan_day_id, meal_slot)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		householdID, next, p.Title, p.Notes, p.Category, p.ProposedPoints, p.Priority,
		p.DueDate, p.DueTime, createdBy, nullInt64(p.AssigneeID), nullInt64(p.MealPlanDayID), p.MealSlot,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(householdID, id)
}

func nullInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func (s *TaskStore) GetByID(householdID, id int64) (*model.Task, error) {
	row := s.db.QueryRow(
		`SELECT `+taskCols+` FROM tasks WHERE id = ? AND household_id = ?`, id, householdID)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// List returns the household's tasks, optionally filtered by status, newest
// order number first.
func (s *TaskStore) List(householdID int64, statuses ...string) ([]model.Task, error) {
	query := `SELECT ` + taskCols + ` FROM tasks WHERE household_id = ?`
	args := []any{householdID}
	if len(statuses) > 0 {
		query += ` AND status IN (?` + strings.Repeat(", ?", len(statuses)-1) + `)`
		for _, st := range statuses {
			args = append(args, st)
		}
	}
	query += ` ORDER BY order_number DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// ListOrderSheet returns every non-cancelled task ordered by order number
// ascending, for the printable sheet.
func (s *TaskStore) ListOrderSheet(householdID int64) ([]model.Task, error) {
	rows, err := s.db.Query(
		`SELECT `+taskCols+` FROM tasks WHERE household_id = ? AND status != 'cancelled'
		 ORDER BY order_number ASC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list order sheet: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Update rewrites the editable fields of an existing task. Status, assignee,
// and points stay untouched; those move through SaveState.
func (s *TaskStore) Update(householdID, id int64, p TaskParams) (*model.Task, error) {
	_, err := s.db.Exec(
		`UPDATE tasks SET title = ?, notes = ?, category = ?, proposed_points = ?,
			priority = ?, due_date = ?, due_time = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		p.Title, p.Notes, p.Category, p.ProposedPoints, p.Priority, p.DueDate, p.DueTime,
		id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	return s.GetByID(householdID, id)
}

// SaveState persists the fields the status machine mutates.
func (s *TaskStore) SaveState(t *model.Task) error {
	var actual any
	if t.ActualPoints != nil {
		actual = *t.ActualPoints
	}
	_, err := s.db.Exec(
		`UPDATE tasks SET status = ?, assignee_id = ?, actual_points = ?,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		t.Status, nullInt64(t.AssigneeID), actual, t.ID, t.HouseholdID,
	)
	if err != nil {
		return fmt.Errorf("save task state: %w", err)
	}
	return nil
}

func (s *TaskStore) SetInstructionImage(householdID, id int64, path string) error {
	_, err := s.db.Exec(
		`UPDATE tasks SET instruction_image = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		path, id, householdID,
	)
	if err != nil {
		return fmt.Errorf("set instruction image: %w", err)
	}
	return nil
}

// ExistsForMealSlot reports whether a task already derives from the given
// plan day and slot. This is the guard that keeps the meal task runner from
// creating duplicates.
func (s *TaskStore) ExistsForMealSlot(householdID, mealPlanDayID int64, slot string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM tasks WHERE household_id = ? AND meal_plan_day_id = ? AND meal_slot = ?`,
		householdID, mealPlanDayID, slot,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check meal slot task: %w", err)
	}
	return n > 0, nil
}

func (s *TaskStore) Delete(householdID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM tasks WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
