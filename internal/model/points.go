package model

import "time"

// Point transaction kinds. The ledger is append-only; balances are always
// computed as SUM(amount) over a user's rows, never stored.
const (
	PointKindTask   = "task"
	PointKindReward = "reward"
	PointKindAdjust = "adjust"
)

type PointTransaction struct {
	ID                 int64     `json:"id"`
	HouseholdID        int64     `json:"household_id"`
	UserID             int64     `json:"user_id"`
	Amount             int       `json:"amount"`
	Kind               string    `json:"kind"`
	RelatedTaskID      *int64    `json:"related_task_id"`
	RelatedRewardUseID *int64    `json:"related_reward_use_id"`
	Description        string    `json:"description"`
	CreatedAt          time.Time `json:"created_at"`
}
