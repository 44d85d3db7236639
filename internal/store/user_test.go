package store

import "testing"

func TestUserCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	us := NewUserStore(db)

	u, err := us.Create(h.ID, "Alice", "alice@example.com", "hash", true)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if u.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if !u.IsAdmin {
		t.Error("expected admin flag")
	}

	got, err := us.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got == nil || got.ID != u.ID {
		t.Fatalf("GetByEmail = %+v, want id %d", got, u.ID)
	}
	if got.HouseholdID != h.ID {
		t.Errorf("household = %d, want %d", got.HouseholdID, h.ID)
	}
}

func TestUserGetByEmailMissing(t *testing.T) {
	db := openTestDB(t)
	us := NewUserStore(db)

	got, err := us.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for unknown email, got %+v", got)
	}
}

func TestUserEmailExistsScopedToHousehold(t *testing.T) {
	db := openTestDB(t)
	h1 := seedHousehold(t, db)
	h2 := seedHousehold(t, db)
	us := NewUserStore(db)

	if _, err := us.Create(h1.ID, "Alice", "alice@example.com", "x", false); err != nil {
		t.Fatalf("create user: %v", err)
	}

	exists, err := us.EmailExists(h1.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if !exists {
		t.Error("expected email to exist in its own household")
	}

	exists, err = us.EmailExists(h2.ID, "alice@example.com")
	if err != nil {
		t.Fatalf("email exists: %v", err)
	}
	if exists {
		t.Error("email should not count as taken in another household")
	}
}

func TestUserUpdateNameAndPassword(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	us := NewUserStore(db)

	u, err := us.Create(h.ID, "Alice", "alice@example.com", "old", false)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	renamed, err := us.UpdateName(u.ID, "Alicia")
	if err != nil {
		t.Fatalf("update name: %v", err)
	}
	if renamed.Name != "Alicia" {
		t.Errorf("name = %q, want Alicia", renamed.Name)
	}

	if err := us.UpdatePassword(u.ID, "new"); err != nil {
		t.Fatalf("update password: %v", err)
	}
	got, err := us.GetByID(u.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got.PasswordHash != "new" {
		t.Errorf("password hash not updated")
	}
}

func TestUserDelete(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	us := NewUserStore(db)

	u := seedUser(t, db, h.ID, "Bob")
	if err := us.Delete(u.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	got, err := us.GetByID(u.ID)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil after delete, got %+v", got)
	}

	members, err := us.ListByHousehold(h.ID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	for _, m := range members {
		if m.ID == u.ID {
			t.Error("deleted user still listed")
		}
	}
}
