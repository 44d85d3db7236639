package store

import "testing"

func TestRecurringRuleCRUD(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	tpls := NewTemplateStore(db)
	rs := NewRecurringStore(db)

	tpl, err := tpls.Create(h.ID, "Take out trash", "", "other", 1, 2, "")
	if err != nil {
		t.Fatalf("create template: %v", err)
	}

	rule, err := rs.Create(h.ID, tpl.ID, "weekly", "2026-09-01", 1)
	if err != nil {
		t.Fatalf("create rule: %v", err)
	}
	if !rule.Active {
		t.Error("new rule should be active")
	}
	if rule.NextRunDate != "2026-09-01" {
		t.Errorf("next_run_date = %s", rule.NextRunDate)
	}

	if err := rs.SetActive(h.ID, rule.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	got, _ := rs.GetByID(h.ID, rule.ID)
	if got.Active {
		t.Error("rule still active")
	}

	if err := rs.Delete(h.ID, rule.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, _ = rs.GetByID(h.ID, rule.ID)
	if got != nil {
		t.Error("rule survived delete")
	}
}

func TestListDueSkipsInactiveAndFuture(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	tpls := NewTemplateStore(db)
	rs := NewRecurringStore(db)

	tpl, _ := tpls.Create(h.ID, "Water plants", "", "other", 1, 3, "")

	due, _ := rs.Create(h.ID, tpl.ID, "daily", "2026-09-01", 0)
	past, _ := rs.Create(h.ID, tpl.ID, "daily", "2026-08-20", 0)
	if _, err := rs.Create(h.ID, tpl.ID, "daily", "2026-09-02", 0); err != nil {
		t.Fatalf("create future rule: %v", err)
	}
	inactive, _ := rs.Create(h.ID, tpl.ID, "daily", "2026-09-01", 0)
	if err := rs.SetActive(h.ID, inactive.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	rules, err := rs.ListDue(h.ID, "2026-09-01")
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("due = %d, want 2", len(rules))
	}
	// Ordered by next_run_date, behind-schedule rule first.
	if rules[0].ID != past.ID || rules[1].ID != due.ID {
		t.Errorf("order = %d, %d, want %d, %d", rules[0].ID, rules[1].ID, past.ID, due.ID)
	}
}

func TestGetByTemplateAndFrequency(t *testing.T) {
	db := openTestDB(t)
	h := seedHousehold(t, db)
	tpls := NewTemplateStore(db)
	rs := NewRecurringStore(db)

	tpl, _ := tpls.Create(h.ID, "Laundry", "", "laundry", 2, 3, "")
	created, _ := rs.Create(h.ID, tpl.ID, "weekly", "2026-09-01", 0)

	got, err := rs.GetByTemplateAndFrequency(h.ID, tpl.ID, "weekly")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got == nil || got.ID != created.ID {
		t.Fatalf("got = %+v", got)
	}

	miss, _ := rs.GetByTemplateAndFrequency(h.ID, tpl.ID, "daily")
	if miss != nil {
		t.Error("expected nil for unmatched frequency")
	}
}
