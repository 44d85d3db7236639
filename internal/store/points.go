package store

import (
	"database/sql"
	"fmt"

	"github.com/mkondo/kajiboard/internal/model"
)

// PointStore is the append-only points ledger. Balances are never stored;
// they are always SUM(amount) over a user's rows.
type PointStore struct {
	db *sql.DB
}

func NewPointStore(db *sql.DB) *PointStore {
	return &PointStore{db: db}
}

func scanPointTransaction(scanner interface{ Scan(...any) error }) (*model.PointTransaction, error) {
	var p model.PointTransaction
	var taskID, useID sql.NullInt64
	err := scanner.Scan(&p.ID, &p.HouseholdID, &p.UserID, &p.Amount, &p.Kind,
		&taskID, &useID, &p.Description, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	if taskID.Valid {
		p.RelatedTaskID = &taskID.Int64
	}
	if useID.Valid {
		p.RelatedRewardUseID = &useID.Int64
	}
	return &p, nil
}

const pointTxCols = `id, household_id, user_id, amount, kind, related_task_id, related_reward_use_id, description, created_at`

// Adjust appends a manual adjustment row.
func (s *PointStore) Adjust(householdID, userID int64, amount int, description string) (*model.PointTransaction, error) {
	result, err := s.db.Exec(
		`INSERT INTO point_transactions (household_id, user_id, amount, kind, description)
		 VALUES (?, ?, ?, ?, ?)`,
		householdID, userID, amount, model.PointKindAdjust, description,
	)
	if err != nil {
		return nil, fmt.Errorf("insert adjustment: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	row := s.db.QueryRow(`SELECT `+pointTxCols+` FROM point_transactions WHERE id = ?`, id)
	return scanPointTransaction(row)
}

// AwardTaskPoints pays out an approved task. The payout is idempotent: if any
// transaction already references the task, nothing is inserted and created is
// false. The check-then-insert is not atomic; a concurrent double approve can
// in principle slip through, which is accepted.
func (s *PointStore) AwardTaskPoints(householdID, userID, taskID int64, amount int, description string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM point_transactions WHERE related_task_id = ?`, taskID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check task payout: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	_, err = s.db.Exec(
		`INSERT INTO point_transactions (household_id, user_id, amount, kind, related_task_id, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		householdID, userID, amount, model.PointKindTask, taskID, description,
	)
	if err != nil {
		return false, fmt.Errorf("insert task payout: %w", err)
	}
	return true, nil
}

// SpendRewardPoints records the negative transaction for an approved reward
// use, at most once per use. The recorded amount is always -abs(cost):
// imported catalogs can carry arbitrary costs, and a spend must never credit.
func (s *PointStore) SpendRewardPoints(householdID, userID, rewardUseID int64, cost int, description string) (bool, error) {
	if cost < 0 {
		cost = -cost
	}
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM point_transactions WHERE related_reward_use_id = ?`, rewardUseID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check reward spend: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	_, err = s.db.Exec(
		`INSERT INTO point_transactions (household_id, user_id, amount, kind, related_reward_use_id, description)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		householdID, userID, -cost, model.PointKindReward, rewardUseID, description,
	)
	if err != nil {
		return false, fmt.Errorf("insert reward spend: %w", err)
	}
	return true, nil
}

// Balance returns SUM(amount) for the user, zero when there are no rows.
func (s *PointStore) Balance(userID int64) (int, error) {
	var balance int
	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM point_transactions WHERE user_id = ?`, userID,
	).Scan(&balance)
	if err != nil {
		return 0, fmt.Errorf("balance: %w", err)
	}
	return balance, nil
}

// HouseholdBalances returns every member's balance keyed by user id. Members
// with no transactions appear with balance zero.
func (s *PointStore) HouseholdBalances(householdID int64) (map[int64]int, error) {
	rows, err := s.db.Query(
		`SELECT u.id, COALESCE(SUM(p.amount), 0)
		 FROM users u
		 LEFT JOIN point_transactions p ON p.user_id = u.id
		 WHERE u.household_id = ?
		 GROUP BY u.id`,
		householdID,
	)
	if err != nil {
		return nil, fmt.Errorf("household balances: %w", err)
	}
	defer rows.Close()

	balances := make(map[int64]int)
	for rows.Next() {
		var userID int64
		var balance int
		if err := rows.Scan(&userID, &balance); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		balances[userID] = balance
	}
	return balances, rows.Err()
}

func (s *PointStore) ListByHousehold(householdID int64, limit int) ([]model.PointTransaction, error) {
	rows, err := s.db.Query(
		`SELECT `+pointTxCols+` FROM point_transactions WHERE household_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		householdID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.PointTransaction
	for rows.Next() {
		p, err := scanPointTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, *p)
	}
	return txs, rows.Err()
}

func (s *PointStore) ListByUser(userID int64, limit int) ([]model.PointTransaction, error) {
	rows, err := s.db.Query(
		`SELECT `+pointTxCols+` FROM point_transactions WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list user transactions: %w", err)
	}
	defer rows.Close()

	var txs []model.PointTransaction
	for rows.Next() {
		p, err := scanPointTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txs = append(txs, *p)
	}
	return txs, rows.Err()
}
