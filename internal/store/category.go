package store

import (
	"database/sql"
	"fmt"

	"github.com/mkondo/kajiboard/internal/model"
)

type CategoryStore struct {
	db *sql.DB
}

func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

func scanCategory(scanner interface{ Scan(...any) error }) (*model.TaskCategory, error) {
	var c model.TaskCategory
	err := scanner.Scan(&c.ID, &c.HouseholdID, &c.Name, &c.SortOrder)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const categoryCols = `id, household_id, name, sort_order`

func (s *CategoryStore) Create(householdID int64, name string, sortOrder int) (*model.TaskCategory, error) {
	result, err := s.db.Exec(
		`INSERT INTO task_categories (household_id, name, sort_order) VALUES (?, ?, ?)`,
		householdID, name, sortOrder,
	)
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+categoryCols+` FROM task_categories WHERE id = ?`, id)
	return scanCategory(row)
}

func (s *CategoryStore) GetByName(householdID int64, name string) (*model.TaskCategory, error) {
	row := s.db.QueryRow(
		`SELECT `+categoryCols+` FROM task_categories WHERE household_id = ? AND name = ?`,
		householdID, name,
	)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *CategoryStore) List(householdID int64) ([]model.TaskCategory, error) {
	rows, err := s.db.Query(
		`SELECT `+categoryCols+` FROM task_categories WHERE household_id = ? ORDER BY sort_order, name`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []model.TaskCategory
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, *c)
	}
	return cats, rows.Err()
}

func (s *CategoryStore) UpdateSortOrder(householdID, id int64, sortOrder int) error {
	_, err := s.db.Exec(
		`UPDATE task_categories SET sort_order = ? WHERE id = ? AND household_id = ?`,
		sortOrder, id, householdID,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

func (s *CategoryStore) Delete(householdID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM task_categories WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
