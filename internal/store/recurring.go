package store

import (
	"database/sql"
	"fmt"

	"github.com/mkondo/kajiboard/internal/model"
)

type RecurringStore struct {
	db *sql.DB
}

func NewRecurringStore(db *sql.DB) *RecurringStore {
	return &RecurringStore{db: db}
}

func scanRecurringRule(scanner interface{ Scan(...any) error }) (*model.RecurringTaskRule, error) {
	var r model.RecurringTaskRule
	err := scanner.Scan(&r.ID, &r.HouseholdID, &r.TaskTemplateID, &r.Frequency,
		&r.NextRunDate, &r.RelativeDueDays, &r.Active, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

const recurringCols = `id, household_id, task_template_id, frequency, next_run_date, relative_due_days, active, created_at, updated_at`

func (s *RecurringStore) Create(householdID, templateID int64, frequency, nextRunDate string, relativeDueDays int) (*model.RecurringTaskRule, error) {
	result, err := s.db.Exec(
		`INSERT INTO recurring_task_rules (household_id, task_template_id, frequency, next_run_date, relative_due_days)
		 VALUES (?, ?, ?, ?, ?)`,
		householdID, templateID, frequency, nextRunDate, relativeDueDays,
	)
	if err != nil {
		return nil, fmt.Errorf("insert recurring rule: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *RecurringStore) GetByID(householdID, id int64) (*model.RecurringTaskRule, error) {
	row := s.db.QueryRow(
		`SELECT `+recurringCols+` FROM recurring_task_rules WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	r, err := scanRecurringRule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring rule: %w", err)
	}
	return r, nil
}

// GetByTemplateAndFrequency is the natural-key lookup used by import.
func (s *RecurringStore) GetByTemplateAndFrequency(householdID, templateID int64, frequency string) (*model.RecurringTaskRule, error) {
	row := s.db.QueryRow(
		`SELECT `+recurringCols+` FROM recurring_task_rules
		 WHERE household_id = ? AND task_template_id = ? AND frequency = ? ORDER BY id LIMIT 1`,
		householdID, templateID, frequency,
	)
	r, err := scanRecurringRule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get recurring rule by template: %w", err)
	}
	return r, nil
}

func (s *RecurringStore) List(householdID int64) ([]model.RecurringTaskRule, error) {
	rows, err := s.db.Query(
		`SELECT `+recurringCols+` FROM recurring_task_rules WHERE household_id = ? ORDER BY next_run_date, id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list recurring rules: %w", err)
	}
	defer rows.Close()

	var rules []model.RecurringTaskRule
	for rows.Next() {
		r, err := scanRecurringRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring rule: %w", err)
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

// ListDue returns active rules whose next run date is on or before today.
// Dates are ISO strings so the comparison happens in SQLite.
func (s *RecurringStore) ListDue(householdID int64, today string) ([]model.RecurringTaskRule, error) {
	rows, err := s.db.Query(
		`SELECT `+recurringCols+` FROM recurring_task_rules
		 WHERE household_id = ? AND active = 1 AND next_run_date <= ?
		 ORDER BY next_run_date, id`,
		householdID, today,
	)
	if err != nil {
		return nil, fmt.Errorf("list due rules: %w", err)
	}
	defer rows.Close()

	var rules []model.RecurringTaskRule
	for rows.Next() {
		r, err := scanRecurringRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan recurring rule: %w", err)
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

func (s *RecurringStore) Update(householdID, id int64, frequency, nextRunDate string, relativeDueDays int, active bool) (*model.RecurringTaskRule, error) {
	_, err := s.db.Exec(
		`UPDATE recurring_task_rules SET frequency = ?, next_run_date = ?, relative_due_days = ?,
			active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		frequency, nextRunDate, relativeDueDays, active, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update recurring rule: %w", err)
	}
	return s.GetByID(householdID, id)
}

// SetNextRunDate advances the rule after a firing.
func (s *RecurringStore) SetNextRunDate(householdID, id int64, nextRunDate string) error {
	_, err := s.db.Exec(
		`UPDATE recurring_task_rules SET next_run_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		nextRunDate, id, householdID,
	)
	if err != nil {
		return fmt.Errorf("set next run date: %w", err)
	}
	return nil
}

func (s *RecurringStore) SetActive(householdID, id int64, active bool) error {
	_, err := s.db.Exec(
		`UPDATE recurring_task_rules SET active = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		active, id, householdID,
	)
	if err != nil {
		return fmt.Errorf("set rule active: %w", err)
	}
	return nil
}

func (s *RecurringStore) Delete(householdID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM recurring_task_rules WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete recurring rule: %w", err)
	}
	return nil
}
