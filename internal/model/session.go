package model

import "time"

// Session is a DB-backed login session. Language, Theme, and Font are
// per-session overrides; empty means fall back to the household setting.
type Session struct {
	ID          int64     `json:"id"`
	Token       string    `json:"token"`
	UserID      int64     `json:"user_id"`
	HouseholdID int64     `json:"household_id"`
	Language    string    `json:"language"`
	Theme       string    `json:"theme"`
	Font        string    `json:"font"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}
