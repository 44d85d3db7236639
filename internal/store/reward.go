package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkondo/kajiboard/internal/model"
)

type RewardStore struct {
	db *sql.DB
}

func NewRewardStore(db *sql.DB) *RewardStore {
	return &RewardStore{db: db}
}

// --- Reward template methods ---

func scanRewardTemplate(scanner interface{ Scan(...any) error }) (*model.RewardTemplate, error) {
	var r model.RewardTemplate
	var active int
	err := scanner.Scan(&r.ID, &r.HouseholdID, &r.Title, &r.Description, &r.PointCost,
		&active, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.Active = active != 0
	return &r, nil
}

const rewardTemplateCols = `id, household_id, title, description, point_cost, active, created_at, updated_at`

func (s *RewardStore) Create(householdID int64, title, description string, pointCost int, active bool) (*model.RewardTemplate, error) {
	result, err := s.db.Exec(
		`INSERT INTO reward_templates (household_id, title, description, point_cost, active)
		 VALUES (?, ?, ?, ?, ?)`,
		householdID, title, description, pointCost, active,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reward template: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *RewardStore) GetByID(householdID, id int64) (*model.RewardTemplate, error) {
	row := s.db.QueryRow(
		`SELECT `+rewardTemplateCols+` FROM reward_templates WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	r, err := scanRewardTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward template: %w", err)
	}
	return r, nil
}

func (s *RewardStore) GetByTitle(householdID int64, title string) (*model.RewardTemplate, error) {
	row := s.db.QueryRow(
		`SELECT `+rewardTemplateCols+` FROM reward_templates WHERE household_id = ? AND title = ? ORDER BY id LIMIT 1`,
		householdID, title,
	)
	r, err := scanRewardTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward template by title: %w", err)
	}
	return r, nil
}

func (s *RewardStore) List(householdID int64, activeOnly bool) ([]model.RewardTemplate, error) {
	query := `SELECT ` + rewardTemplateCols + ` FROM reward_templates WHERE household_id = ?`
	if activeOnly {
		query += ` AND active = 1`
	}
	query += ` ORDER BY point_cost, title`

	rows, err := s.db.Query(query, householdID)
	if err != nil {
		return nil, fmt.Errorf("list reward templates: %w", err)
	}
	defer rows.Close()

	var rewards []model.RewardTemplate
	for rows.Next() {
		r, err := scanRewardTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reward template: %w", err)
		}
		rewards = append(rewards, *r)
	}
	return rewards, rows.Err()
}

func (s *RewardStore) Update(householdID, id int64, title, description string, pointCost int, active bool) (*model.RewardTemplate, error) {
	_, err := s.db.Exec(
		`UPDATE reward_templates SET title = ?, description = ?, point_cost = ?, active = ?,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND household_id = ?`,
		title, description, pointCost, active, id, householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("update reward template: %w", err)
	}
	return s.GetByID(householdID, id)
}

func (s *RewardStore) Delete(householdID, id int64) error {
	_, err := s.db.Exec(`DELETE FROM reward_templates WHERE id = ? AND household_id = ?`, id, householdID)
	if err != nil {
		return fmt.Errorf("delete reward template: %w", err)
	}
	return nil
}

// --- Reward use methods ---

func scanRewardUse(scanner interface{ Scan(...any) error }) (*model.RewardUse, error) {
	var u model.RewardUse
	var decidedBy sql.NullInt64
	var decidedAt sql.NullTime
	err := scanner.Scan(&u.ID, &u.HouseholdID, &u.RewardTemplateID, &u.UserID, &u.Status,
		&decidedBy, &decidedAt, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	if decidedBy.Valid {
		u.DecidedBy = &decidedBy.Int64
	}
	if decidedAt.Valid {
		u.DecidedAt = &decidedAt.Time
	}
	return &u, nil
}

const rewardUseCols = `id, household_id, reward_template_id, user_id, status, decided_by, decided_at, created_at`

// CreateUse records a redemption request. There is no balance precondition;
// balances may go negative.
func (s *RewardStore) CreateUse(householdID, templateID, userID int64) (*model.RewardUse, error) {
	result, err := s.db.Exec(
		`INSERT INTO reward_uses (household_id, reward_template_id, user_id, status)
		 VALUES (?, ?, ?, ?)`,
		householdID, templateID, userID, model.RewardUseRequested,
	)
	if err != nil {
		return nil, fmt.Errorf("insert reward use: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetUseByID(householdID, id)
}

func (s *RewardStore) GetUseByID(householdID, id int64) (*model.RewardUse, error) {
	row := s.db.QueryRow(
		`SELECT `+rewardUseCols+` FROM reward_uses WHERE id = ? AND household_id = ?`,
		id, householdID,
	)
	u, err := scanRewardUse(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get reward use: %w", err)
	}
	return u, nil
}

func (s *RewardStore) ListUses(householdID int64) ([]model.RewardUse, error) {
	rows, err := s.db.Query(
		`SELECT `+rewardUseCols+` FROM reward_uses WHERE household_id = ? ORDER BY created_at DESC, id DESC`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reward uses: %w", err)
	}
	defer rows.Close()

	var uses []model.RewardUse
	for rows.Next() {
		u, err := scanRewardUse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reward use: %w", err)
		}
		uses = append(uses, *u)
	}
	return uses, rows.Err()
}

// Decide marks a requested use approved or rejected. It returns nil without
// touching the row when the use has already been decided.
func (s *RewardStore) Decide(householdID, id, deciderID int64, status string) (*model.RewardUse, error) {
	_, err := s.db.Exec(
		`UPDATE reward_uses SET status = ?, decided_by = ?, decided_at = ?
		 WHERE id = ? AND household_id = ? AND status = ?`,
		status, deciderID, time.Now(), id, householdID, model.RewardUseRequested,
	)
	if err != nil {
		return nil, fmt.Errorf("decide reward use: %w", err)
	}
	return s.GetUseByID(householdID, id)
}
