package transfer

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/mkondo/kajiboard/internal/database"
	"github.com/mkondo/kajiboard/internal/store"
)

func setupManager(t *testing.T) (*Manager, *sql.DB) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := NewManager(
		store.NewIngredientStore(db),
		store.NewMenuStore(db),
		store.NewMealSetStore(db),
		store.NewCategoryStore(db),
		store.NewTemplateStore(db),
		store.NewRecurringStore(db),
		store.NewRewardStore(db),
		logger,
	)
	return m, db
}

func seededHousehold(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	hs := store.NewHouseholdStore(db)
	h, err := hs.Create("Source")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	if err := hs.SeedDefaults(h.ID); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return h.ID
}

func TestExportImportRoundTrip(t *testing.T) {
	m, db := setupManager(t)
	source := seededHousehold(t, db)

	// Add a recurring rule and a reward so every section has content.
	tpls := store.NewTemplateStore(db)
	tpl, err := tpls.GetByTitle(source, "風呂掃除")
	if err != nil || tpl == nil {
		t.Fatalf("seeded template missing: %v", err)
	}
	if _, err := store.NewRecurringStore(db).Create(source, tpl.ID, "weekly", "2026-09-01", 1); err != nil {
		t.Fatalf("create rule: %v", err)
	}
	if _, err := store.NewRewardStore(db).Create(source, "アイス", "コンビニで", 30, true); err != nil {
		t.Fatalf("create reward: %v", err)
	}

	doc, err := m.Export(source)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if len(doc.UnitOptions) != 14 || len(doc.DishTypes) != 4 || len(doc.Menus) != 4 {
		t.Fatalf("export sizes: units=%d dishTypes=%d menus=%d",
			len(doc.UnitOptions), len(doc.DishTypes), len(doc.Menus))
	}
	if len(doc.RecurringRules) != 1 || doc.RecurringRules[0].TemplateTitle != "風呂掃除" {
		t.Fatalf("rules = %+v", doc.RecurringRules)
	}

	// Import into an empty household and re-export; the catalogs must match.
	target, err := store.NewHouseholdStore(db).Create("Target")
	if err != nil {
		t.Fatalf("create target: %v", err)
	}
	stats, err := m.Import(target.ID, doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.SkippedRules != 0 {
		t.Errorf("skipped rules = %d, want 0", stats.SkippedRules)
	}

	round, err := m.Export(target.ID)
	if err != nil {
		t.Fatalf("re-export: %v", err)
	}
	if len(round.UnitOptions) != len(doc.UnitOptions) ||
		len(round.DishTypes) != len(doc.DishTypes) ||
		len(round.Ingredients) != len(doc.Ingredients) ||
		len(round.Menus) != len(doc.Menus) ||
		len(round.MealSets) != len(doc.MealSets) ||
		len(round.TaskCategories) != len(doc.TaskCategories) ||
		len(round.TaskTemplates) != len(doc.TaskTemplates) ||
		len(round.RecurringRules) != len(doc.RecurringRules) ||
		len(round.RewardTemplates) != len(doc.RewardTemplates) {
		t.Errorf("round trip lost entries:\n before %+v\n after %+v", doc, round)
	}

	// Menu ingredient lines survive with quantities intact.
	menus := store.NewMenuStore(db)
	imported, err := menus.GetByName(target.ID, "肉じゃが")
	if err != nil || imported == nil {
		t.Fatalf("imported menu missing: %v", err)
	}
	lines, _ := menus.ListIngredients(imported.ID)
	if len(lines) != 3 {
		t.Errorf("menu lines = %d, want 3", len(lines))
	}
}

func TestImportIsIdempotent(t *testing.T) {
	m, db := setupManager(t)
	source := seededHousehold(t, db)

	doc, err := m.Export(source)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	// Importing into the same household twice must not duplicate anything.
	if _, err := m.Import(source, doc); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := m.Import(source, doc); err != nil {
		t.Fatalf("import again: %v", err)
	}

	menus, _ := store.NewMenuStore(db).List(source)
	if len(menus) != 4 {
		t.Errorf("menus = %d, want 4", len(menus))
	}
	tpls, _ := store.NewTemplateStore(db).List(source)
	if len(tpls) != 6 {
		t.Errorf("templates = %d, want 6", len(tpls))
	}
	cats, _ := store.NewCategoryStore(db).List(source)
	if len(cats) != 5 {
		t.Errorf("categories = %d, want 5", len(cats))
	}
}

func TestImportSkipsRuleWithUnknownTemplate(t *testing.T) {
	m, db := setupManager(t)
	h, err := store.NewHouseholdStore(db).Create("Empty")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}

	doc := &Document{
		RecurringRules: []RecurringRuleEntry{
			{TemplateTitle: "does not exist", Frequency: "daily", NextRunDate: "2026-09-01"},
		},
	}
	stats, err := m.Import(h.ID, doc)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.SkippedRules != 1 || stats.RecurringRules != 0 {
		t.Errorf("stats = %+v, want 1 skipped", stats)
	}
	rules, _ := store.NewRecurringStore(db).List(h.ID)
	if len(rules) != 0 {
		t.Errorf("rules = %d, want 0", len(rules))
	}
}

func TestDocumentValidate(t *testing.T) {
	good := &Document{RecurringRules: []RecurringRuleEntry{{TemplateTitle: "a", Frequency: "weekly"}}}
	if err := good.Validate(); err != nil {
		t.Errorf("valid doc rejected: %v", err)
	}
	bad := &Document{RecurringRules: []RecurringRuleEntry{{TemplateTitle: "a", Frequency: "hourly"}}}
	if err := bad.Validate(); err == nil {
		t.Error("invalid frequency accepted")
	}
}
