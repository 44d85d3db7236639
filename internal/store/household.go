package store

import (
	"database/sql"
	"fmt"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/model"
)

type HouseholdStore struct {
	db *sql.DB
}

func NewHouseholdStore(db *sql.DB) *HouseholdStore {
	return &HouseholdStore{db: db}
}

func scanHousehold(scanner interface{ Scan(...any) error }) (*model.Household, error) {
	var h model.Household
	err := scanner.Scan(&h.ID, &h.Name, &h.JoinCode, &h.Language, &h.Theme, &h.Font,
		&h.ContributionRate, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

const householdCols = `id, name, join_code, language, theme, font, contribution_rate, created_at, updated_at`

func (s *HouseholdStore) Create(name string) (*model.Household, error) {
	code, err := auth.NewJoinCode()
	if err != nil {
		return nil, err
	}
	result, err := s.db.Exec(`INSERT INTO households (name, join_code) VALUES (?, ?)`, name, code)
	if err != nil {
		return nil, fmt.Errorf("insert household: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *HouseholdStore) GetByID(id int64) (*model.Household, error) {
	row := s.db.QueryRow(`SELECT `+householdCols+` FROM households WHERE id = ?`, id)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household: %w", err)
	}
	return h, nil
}

func (s *HouseholdStore) GetByJoinCode(code string) (*model.Household, error) {
	row := s.db.QueryRow(`SELECT `+householdCols+` FROM households WHERE join_code = ?`, code)
	h, err := scanHousehold(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get household by join code: %w", err)
	}
	return h, nil
}

func (s *HouseholdStore) UpdateName(id int64, name string) (*model.Household, error) {
	_, err := s.db.Exec(`UPDATE households SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, name, id)
	if err != nil {
		return nil, fmt.Errorf("update household name: %w", err)
	}
	return s.GetByID(id)
}

// UpdateAppearance sets the household defaults that sessions fall back to.
func (s *HouseholdStore) UpdateAppearance(id int64, language, theme, font string) (*model.Household, error) {
	_, err := s.db.Exec(
		`UPDATE households SET language = ?, theme = ?, font = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		language, theme, font, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update household appearance: %w", err)
	}
	return s.GetByID(id)
}

func (s *HouseholdStore) UpdateContributionRate(id int64, rate int) (*model.Household, error) {
	_, err := s.db.Exec(
		`UPDATE households SET contribution_rate = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		rate, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update contribution rate: %w", err)
	}
	return s.GetByID(id)
}

// RegenerateJoinCode replaces the household's join code with a fresh one.
func (s *HouseholdStore) RegenerateJoinCode(id int64) (*model.Household, error) {
	code, err := auth.NewJoinCode()
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(
		`UPDATE households SET join_code = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		code, id,
	)
	if err != nil {
		return nil, fmt.Errorf("regenerate join code: %w", err)
	}
	return s.GetByID(id)
}

func (s *HouseholdStore) Delete(id int64) error {
	_, err := s.db.Exec(`DELETE FROM households WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete household: %w", err)
	}
	return nil
}
