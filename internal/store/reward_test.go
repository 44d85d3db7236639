package store

import (
	"testing"

	"github.com/mkondo/kajiboard/internal/model"
)

func TestRewardTemplateCRUD(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	rs := NewRewardStore(db)

	reward, err := rs.Create(h.ID, "Ice Cream Trip", "Go get ice cream!", 50, true)
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}
	if reward.Title != "Ice Cream Trip" {
		t.Errorf("title = %q, want %q", reward.Title, "Ice Cream Trip")
	}
	if reward.PointCost != 50 {
		t.Errorf("point_cost = %d, want 50", reward.PointCost)
	}
	if !reward.Active {
		t.Error("expected active")
	}

	got, err := rs.GetByID(h.ID, reward.ID)
	if err != nil {
		t.Fatalf("get reward: %v", err)
	}
	if got == nil || got.Title != "Ice Cream Trip" {
		t.Fatalf("got = %+v", got)
	}

	updated, err := rs.Update(h.ID, reward.ID, "Movie Night", "Watch a movie", 100, false)
	if err != nil {
		t.Fatalf("update reward: %v", err)
	}
	if updated.Title != "Movie Night" || updated.PointCost != 100 || updated.Active {
		t.Errorf("updated = %+v", updated)
	}

	if err := rs.Delete(h.ID, reward.ID); err != nil {
		t.Fatalf("delete reward: %v", err)
	}
	got, err = rs.GetByID(h.ID, reward.ID)
	if err != nil {
		t.Fatalf("get deleted reward: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestRewardListActiveOnly(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	rs := NewRewardStore(db)

	if _, err := rs.Create(h.ID, "Active", "", 5, true); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := rs.Create(h.ID, "Retired", "", 5, false); err != nil {
		t.Fatalf("create: %v", err)
	}

	active, err := rs.List(h.ID, true)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 1 || active[0].Title != "Active" {
		t.Errorf("active = %+v", active)
	}

	all, err := rs.List(h.ID, false)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("all = %d, want 2", len(all))
	}
}

func TestRewardUseLifecycle(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	alice := seedUser(t, db, h.ID, "alice")
	admin := seedUser(t, db, h.ID, "admin")
	rs := NewRewardStore(db)

	reward, err := rs.Create(h.ID, "Ice cream", "", 10, true)
	if err != nil {
		t.Fatalf("create reward: %v", err)
	}

	use, err := rs.CreateUse(h.ID, reward.ID, alice.ID)
	if err != nil {
		t.Fatalf("create use: %v", err)
	}
	if use.Status != model.RewardUseRequested {
		t.Errorf("status = %q, want requested", use.Status)
	}
	if use.DecidedBy != nil || use.DecidedAt != nil {
		t.Error("fresh request should be undecided")
	}

	decided, err := rs.Decide(h.ID, use.ID, admin.ID, model.RewardUseApproved)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Status != model.RewardUseApproved {
		t.Errorf("status = %q, want approved", decided.Status)
	}
	if decided.DecidedBy == nil || *decided.DecidedBy != admin.ID {
		t.Errorf("decided_by = %v, want %d", decided.DecidedBy, admin.ID)
	}
	if decided.DecidedAt == nil {
		t.Error("decided_at not set")
	}

	// A second decision must not flip an already-decided use.
	again, err := rs.Decide(h.ID, use.ID, admin.ID, model.RewardUseRejected)
	if err != nil {
		t.Fatalf("decide again: %v", err)
	}
	if again.Status != model.RewardUseApproved {
		t.Errorf("status = %q, want approved to stick", again.Status)
	}
}
