package model

import "time"

// DateLayout is the storage format for calendar dates (due dates, plan days,
// recurring-rule run dates). Stored as TEXT so SQLite can compare them directly.
const DateLayout = "2006-01-02"

type Household struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	JoinCode         string    `json:"join_code"`
	Language         string    `json:"language"`
	Theme            string    `json:"theme"`
	Font             string    `json:"font"`
	ContributionRate int       `json:"contribution_rate"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type User struct {
	ID           int64     `json:"id"`
	HouseholdID  int64     `json:"household_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
