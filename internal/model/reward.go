package model

import "time"

type RewardTemplate struct {
	ID          int64     `json:"id"`
	HouseholdID int64     `json:"household_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PointCost   int       `json:"point_cost"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Reward use statuses.
const (
	RewardUseRequested = "requested"
	RewardUseApproved  = "approved"
	RewardUseRejected  = "rejected"
)

type RewardUse struct {
	ID               int64      `json:"id"`
	HouseholdID      int64      `json:"household_id"`
	RewardTemplateID int64      `json:"reward_template_id"`
	UserID           int64      `json:"user_id"`
	Status           string     `json:"status"`
	DecidedBy        *int64     `json:"decided_by"`
	DecidedAt        *time.Time `json:"decided_at"`
	CreatedAt        time.Time  `json:"created_at"`
}
