package store

import (
	"database/sql"
	"testing"

	"github.com/mkondo/kajiboard/internal/database"
	"github.com/mkondo/kajiboard/internal/model"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedHousehold(t *testing.T, db *sql.DB) *model.Household {
	t.Helper()
	h, err := NewHouseholdStore(db).Create("Test House")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	return h
}

func seedUser(t *testing.T, db *sql.DB, householdID int64, name string) *model.User {
	t.Helper()
	u, err := NewUserStore(db).Create(householdID, name, name+"@example.com", "x", false)
	if err != nil {
		t.Fatalf("create user %s: %v", name, err)
	}
	return u
}
