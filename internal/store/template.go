package store

import (
	"database/sql"
	"fmt"

	"github.com/mkondo/kajiboard/internal/model"
)

type TemplateStore struct {
	db *sql.DB
}

func NewTemplateStore(db *sql.DB) *TemplateStore {
	return &TemplateStore{db: db}
}

func scanTemplate(scanner interface{ Scan(...any) error }) (*model.TaskTemplate, error) {
	var tpl model.TaskTemplate
	err := scanner.Scan(&tpl.ID, &tpl.HouseholdID, &tpl.Title, &tpl.Memo, &tpl.Category,
		&tpl.ProposedPoints, &tpl.Priority, &tpl.Instructions, &tpl.CreatedAt, &tpl.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &tpl, nil
}

const templateCols = `id, household_id, title, memo, category, proposed_points, priority, instructions, created_at, updated_at`

func (s *TemplateStore) Create(householdID int64, title, memo, category string, proposedPoints, priority int, instructions string) (*model.TaskTemplate, error) {
	result, err := s.db.Exec(
		`INSERT INTO task_templates (household_id, title, memo, category, proposed_points, priority, instructions)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		householdID, title, memo, category, proposedPoints, priority, instructions,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task template: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *TemplateStore) GetByID(householdID, id int64) (*model.TaskTemplate, error) {
	row := s.db.QueryRow(
		`SELECT `+templateCols+` FROM task_templates WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	tpl, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task template: %w", err)
	}
	return tpl, nil
}

// GetByTitle resolves a template by its title; import uses this as the
// natural key for recurring rules.
func (s *TemplateStore) GetByTitle(householdID int64, title string) (*model.TaskTemplate, error) {
	row := s.db.QueryRow(
		`SELECT `+templateCols+` FROM task_templates WHERE household_id = ? AND title = ? ORDER BY id LIMIT 1`,
		householdID, title,
	)
	tpl, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task template by title: %w", err)
	}
	return tpl, nil
}

func (s *TemplateStore) List(householdID int64) ([]model.TaskTemplate, error) {
	rows, err := s.db.Query(
		`SELECT `+templateCols+` FROM task_templates WHERE household_id = ? ORDER BY title`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list task templates: %w", err)
	}
	defer rows.Close()

	var tpls []model.TaskTemplate
	for rows.Next() {
		tpl, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task template: %w", err)
		}
		tpls = append(tpls, *tpl)
	}
	return tpls, rows.Err()
}

func (s *TemplateStore) Update(householdID, id int64, title, memo, category string, proposedPoints, priority int, instructions string) (*model.TaskTemplate, error) {
	_, err := s.db.Exec(
		`UPDATE task_templates SET title = ?, memo = ?, category = ?, proposed_points = ?,
			priority = ?, instructions = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		title, memo, category, proposedPoints, priority, instructions, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update task template: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *TemplateStore) Delete(householdID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM task_templates WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete task template: %w", err)
	}
	return nil
}
