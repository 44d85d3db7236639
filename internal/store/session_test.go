package store

import (
	"testing"
	"time"
)

func TestSessionCreateAndLookup(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	u := seedUser(t, db, h.ID, "alice")
	ss := NewSessionStore(db)

	sess, err := ss.Create(u.ID, h.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64", len(sess.Token))
	}
	if sess.Language != "" || sess.Theme != "" || sess.Font != "" {
		t.Error("fresh session should have no appearance overrides")
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if got == nil || got.UserID != u.ID || got.HouseholdID != h.ID {
		t.Fatalf("got = %+v", got)
	}
}

func TestSessionUnknownToken(t *testing.T) {
	db := openTestDB(t)
	ss := NewSessionStore(db)

	got, err := ss.GetByToken("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expected nil for unknown token")
	}
}

func TestSessionExpiry(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	u := seedUser(t, db, h.ID, "alice")
	ss := NewSessionStore(db)

	sess, err := ss.Create(u.ID, h.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	if _, err := db.Exec(
		`UPDATE sessions SET expires_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour), sess.ID,
	); err != nil {
		t.Fatalf("backdate session: %v", err)
	}

	got, err := ss.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get expired: %v", err)
	}
	if got != nil {
		t.Error("expired session should be invisible")
	}
}

func TestSessionDelete(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	u := seedUser(t, db, h.ID, "alice")
	ss := NewSessionStore(db)

	sess, _ := ss.Create(u.ID, h.ID)
	if err := ss.Delete(sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ := ss.GetByToken(sess.Token)
	if got != nil {
		t.Error("session survived logout")
	}
}

func TestSessionDeleteExpired(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	u := seedUser(t, db, h.ID, "alice")
	ss := NewSessionStore(db)

	fresh, _ := ss.Create(u.ID, h.ID)
	stale, _ := ss.Create(u.ID, h.ID)
	if _, err := db.Exec(
		`UPDATE sessions SET expires_at = ? WHERE id = ?`,
		time.Now().Add(-time.Hour), stale.ID,
	); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	n, err := ss.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}
	if got, _ := ss.GetByToken(fresh.Token); got == nil {
		t.Error("fresh session was deleted")
	}
}

func TestSessionUpdateAppearance(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	u := seedUser(t, db, h.ID, "alice")
	ss := NewSessionStore(db)

	sess, _ := ss.Create(u.ID, h.ID)
	if err := ss.UpdateAppearance(sess.ID, "en", "night", "serif"); err != nil {
		t.Fatalf("update appearance: %v", err)
	}
	got, _ := ss.GetByToken(sess.Token)
	if got.Language != "en" || got.Theme != "night" || got.Font != "serif" {
		t.Errorf("appearance = %q/%q/%q", got.Language, got.Theme, got.Font)
	}
}
