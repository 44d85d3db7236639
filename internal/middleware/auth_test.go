package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/database"
	"github.com/mkondo/kajiboard/internal/store"
)

func setupAuthMiddlewareDB(t *testing.T) (*sql.DB, *store.SessionStore, *store.UserStore, *store.HouseholdStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, store.NewSessionStore(db), store.NewUserStore(db), store.NewHouseholdStore(db)
}

func TestRequireAuthNoCookie(t *testing.T) {
	_, ss, us, hs := setupAuthMiddlewareDB(t)

	handler := RequireAuth(ss, us, hs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want %q", loc, "/login")
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	_, ss, us, hs := setupAuthMiddlewareDB(t)

	handler := RequireAuth(ss, us, hs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "invalid-token"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusSeeOther)
	}
}

func TestRequireAuthValidSession(t *testing.T) {
	_, ss, us, hs := setupAuthMiddlewareDB(t)

	h, err := hs.Create("Test House")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	u, err := us.Create(h.ID, "Alice", "alice@example.com", "x", true)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	sess, err := ss.Create(u.ID, h.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	var gotAC auth.AuthContext
	handler := RequireAuth(ss, us, hs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ac, ok := auth.FromContext(r.Context())
		if !ok {
			t.Fatal("expected AuthContext in request context")
		}
		gotAC = ac
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.Token})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if gotAC.UserID != u.ID {
		t.Errorf("UserID = %d, want %d", gotAC.UserID, u.ID)
	}
	if gotAC.HouseholdID != h.ID {
		t.Errorf("HouseholdID = %d, want %d", gotAC.HouseholdID, h.ID)
	}
	if !gotAC.Admin {
		t.Error("Admin = false, want true")
	}
	// Household defaults flow through when the session has no overrides.
	if gotAC.Language != "ja" || gotAC.Theme != "sakura" || gotAC.Font != "modern" {
		t.Errorf("appearance = %q/%q/%q", gotAC.Language, gotAC.Theme, gotAC.Font)
	}
}

func TestRequireAuthSessionOverridesWin(t *testing.T) {
	_, ss, us, hs := setupAuthMiddlewareDB(t)

	h, _ := hs.Create("Test House")
	u, _ := us.Create(h.ID, "Alice", "alice@example.com", "x", false)
	sess, _ := ss.Create(u.ID, h.ID)
	if err := ss.UpdateAppearance(sess.ID, "en", "night", ""); err != nil {
		t.Fatalf("update appearance: %v", err)
	}

	var gotAC auth.AuthContext
	handler := RequireAuth(ss, us, hs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAC, _ = auth.FromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sess.Token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if gotAC.Language != "en" || gotAC.Theme != "night" {
		t.Errorf("overrides = %q/%q, want en/night", gotAC.Language, gotAC.Theme)
	}
	// Empty override falls back to the household font.
	if gotAC.Font != "modern" {
		t.Errorf("font = %q, want modern fallback", gotAC.Font)
	}
}

func TestRequireAdminAllowed(t *testing.T) {
	ctx := auth.WithAuth(context.Background(), auth.AuthContext{Admin: true})
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRequireAdminForbidden(t *testing.T) {
	ctx := auth.WithAuth(context.Background(), auth.AuthContext{Admin: false})
	req := httptest.NewRequest("GET", "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("should not reach handler")
	}))
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
}
