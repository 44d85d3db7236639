package store

import "testing"

func TestHouseholdCreateDefaults(t *testing.T) {
	db := openTestDB(t)
	hs := NewHouseholdStore(db)

	h, err := hs.Create("Test Household")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	if h.Name != "Test Household" {
		t.Errorf("name = %q", h.Name)
	}
	if len(h.JoinCode) != 8 {
		t.Errorf("join code = %q, want 8 chars", h.JoinCode)
	}
	if h.Language != "ja" {
		t.Errorf("language = %q, want ja", h.Language)
	}
	if h.Theme != "sakura" || h.Font != "modern" {
		t.Errorf("theme/font = %q/%q", h.Theme, h.Font)
	}
	if h.ContributionRate != 0 {
		t.Errorf("contribution_rate = %d, want 0", h.ContributionRate)
	}
}

func TestHouseholdGetByJoinCode(t *testing.T) {
	db := openTestDB(t)
	hs := NewHouseholdStore(db)

	h, _ := hs.Create("A")
	got, err := hs.GetByJoinCode(h.JoinCode)
	if err != nil {
		t.Fatalf("get by join code: %v", err)
	}
	if got == nil || got.ID != h.ID {
		t.Fatalf("got = %+v", got)
	}

	miss, err := hs.GetByJoinCode("XXXXXXXX")
	if err != nil {
		t.Fatalf("miss: %v", err)
	}
	if miss != nil {
		t.Error("expected nil for unknown code")
	}
}

func TestHouseholdRegenerateJoinCode(t *testing.T) {
	db := openTestDB(t)
	hs := NewHouseholdStore(db)

	h, _ := hs.Create("A")
	old := h.JoinCode
	h2, err := hs.RegenerateJoinCode(h.ID)
	if err != nil {
		t.Fatalf("regenerate: %v", err)
	}
	if h2.JoinCode == old {
		t.Error("join code did not change")
	}
	if got, _ := hs.GetByJoinCode(old); got != nil {
		t.Error("old join code still resolves")
	}
}

func TestHouseholdUpdateAppearance(t *testing.T) {
	db := openTestDB(t)
	hs := NewHouseholdStore(db)

	h, _ := hs.Create("A")
	h2, err := hs.UpdateAppearance(h.ID, "en", "mint", "rounded")
	if err != nil {
		t.Fatalf("update appearance: %v", err)
	}
	if h2.Language != "en" || h2.Theme != "mint" || h2.Font != "rounded" {
		t.Errorf("appearance = %q/%q/%q", h2.Language, h2.Theme, h2.Font)
	}
}

func TestSeedDefaults(t *testing.T) {
	db := openTestDB(t)
	hs := NewHouseholdStore(db)
	h, _ := hs.Create("A")

	if err := hs.SeedDefaults(h.ID); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}

	cats, err := NewCategoryStore(db).List(h.ID)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 5 {
		t.Errorf("categories = %d, want 5", len(cats))
	}

	units, err := NewIngredientStore(db).ListUnitOptions(h.ID, true)
	if err != nil {
		t.Fatalf("list units: %v", err)
	}
	if len(units) != 14 {
		t.Errorf("units = %d, want 14", len(units))
	}

	mss := NewMealSetStore(db)
	types, _ := mss.ListDishTypes(h.ID)
	if len(types) != 4 {
		t.Errorf("dish types = %d, want 4", len(types))
	}
	set, err := mss.GetByName(h.ID, "Aセット")
	if err != nil || set == nil {
		t.Fatalf("standard set missing: %v", err)
	}
	reqs, _ := mss.ListRequirements(set.ID)
	total := 0
	for _, r := range reqs {
		total += r.Quantity
	}
	if total != 4 {
		t.Errorf("set requirement total = %d, want 4", total)
	}

	tpls, _ := NewTemplateStore(db).List(h.ID)
	if len(tpls) != 6 {
		t.Errorf("task templates = %d, want 6", len(tpls))
	}

	menus, _ := NewMenuStore(db).List(h.ID)
	if len(menus) != 4 {
		t.Errorf("menus = %d, want 4", len(menus))
	}
}
