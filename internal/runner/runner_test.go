package runner

import (
	"database/sql"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mkondo/kajiboard/internal/database"
	"github.com/mkondo/kajiboard/internal/model"
	"github.com/mkondo/kajiboard/internal/store"
	"github.com/mkondo/kajiboard/internal/task"
)

func setupRunner(t *testing.T) (*Runner, *sql.DB, *model.Household, *model.User) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	h, err := store.NewHouseholdStore(db).Create("Test House")
	if err != nil {
		t.Fatalf("create household: %v", err)
	}
	u, err := store.NewUserStore(db).Create(h.ID, "alice", "alice@example.com", "x", true)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := New(
		store.NewTaskStore(db),
		store.NewTemplateStore(db),
		store.NewRecurringStore(db),
		store.NewMealPlanStore(db),
		store.NewMenuStore(db),
		store.NewMealSetStore(db),
		logger,
	)
	return r, db, h, u
}

func date(s string) time.Time {
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRunRecurringCreatesTaskAndAdvancesOnce(t *testing.T) {
	r, db, h, u := setupRunner(t)
	tpls := store.NewTemplateStore(db)
	rules := store.NewRecurringStore(db)
	tasks := store.NewTaskStore(db)

	tpl, _ := tpls.Create(h.ID, "Laundry", "whites first", "laundry", 2, 5, "")
	// Two weeks behind schedule.
	rule, _ := rules.Create(h.ID, tpl.ID, "weekly", "2026-08-18", 1)

	created, err := r.RunRecurring(h.ID, u.ID, date("2026-09-01"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if created != 1 {
		t.Fatalf("created = %d, want 1", created)
	}

	list, _ := tasks.List(h.ID)
	if len(list) != 1 {
		t.Fatalf("tasks = %d, want 1", len(list))
	}
	got := list[0]
	if got.Title != "Laundry" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Notes != "whites first" {
		t.Errorf("notes = %q, want template memo", got.Notes)
	}
	if got.Priority != 3 {
		t.Errorf("priority = %d, want 3 regardless of template", got.Priority)
	}
	if got.DueDate != "2026-09-02" {
		t.Errorf("due_date = %s, want today+1", got.DueDate)
	}

	// Exactly one stride per invocation, even when far behind.
	after, _ := rules.GetByID(h.ID, rule.ID)
	if after.NextRunDate != "2026-08-25" {
		t.Errorf("next_run_date = %s, want 2026-08-25", after.NextRunDate)
	}

	// Still due; a second invocation advances one more week.
	if _, err := r.RunRecurring(h.ID, u.ID, date("2026-09-01")); err != nil {
		t.Fatalf("run again: %v", err)
	}
	after, _ = rules.GetByID(h.ID, rule.ID)
	if after.NextRunDate != "2026-09-01" {
		t.Errorf("next_run_date = %s, want 2026-09-01", after.NextRunDate)
	}
}

func TestRunRecurringSkipsFutureAndInactive(t *testing.T) {
	r, db, h, u := setupRunner(t)
	tpls := store.NewTemplateStore(db)
	rules := store.NewRecurringStore(db)

	tpl, _ := tpls.Create(h.ID, "Water plants", "", "other", 1, 3, "")
	if _, err := rules.Create(h.ID, tpl.ID, "daily", "2026-09-02", 0); err != nil {
		t.Fatalf("create: %v", err)
	}
	inactive, _ := rules.Create(h.ID, tpl.ID, "daily", "2026-09-01", 0)
	if err := rules.SetActive(h.ID, inactive.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	created, err := r.RunRecurring(h.ID, u.ID, date("2026-09-01"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if created != 0 {
		t.Errorf("created = %d, want 0", created)
	}
}

func TestRunMealPlanTasksOncePerSlot(t *testing.T) {
	r, db, h, u := setupRunner(t)
	plans := store.NewMealPlanStore(db)
	menus := store.NewMenuStore(db)
	sets := store.NewMealSetStore(db)
	tasks := store.NewTaskStore(db)

	plan, _ := plans.Create(h.ID, "Week", "2026-09-01", 2)
	if err := plans.EnsureDays(plan); err != nil {
		t.Fatalf("ensure days: %v", err)
	}
	days, _ := plans.ListDays(plan.ID)

	curry, _ := menus.Create(h.ID, "カレー", nil, "")
	rice, _ := menus.Create(h.ID, "ライス", nil, "")
	set, _ := sets.Create(h.ID, "Aセット")

	// Day 1: lunch via selections, dinner via set template + selection.
	if err := plans.ReplaceSelections(days[0].ID, []int64{curry.ID}, []int64{rice.ID}); err != nil {
		t.Fatalf("selections: %v", err)
	}
	if err := plans.UpdateDaySets(days[0].ID, nil, &set.ID); err != nil {
		t.Fatalf("sets: %v", err)
	}
	// Day 2 has nothing planned and must produce no tasks.

	created, err := r.RunMealPlanTasks(h.ID, u.ID, date("2026-09-02"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if created != 2 {
		t.Fatalf("created = %d, want 2", created)
	}

	list, _ := tasks.List(h.ID)
	byTitle := map[string]model.Task{}
	for _, tk := range list {
		byTitle[tk.Title] = tk
	}

	lunch, ok := byTitle["昼食準備: 献立 (カレー)"]
	if !ok {
		t.Fatalf("lunch task missing, have %v", titles(list))
	}
	if lunch.Category != "meal" || lunch.ProposedPoints != 2 || lunch.Priority != 2 {
		t.Errorf("lunch = %+v", lunch)
	}
	if lunch.DueDate != "2026-09-01" {
		t.Errorf("lunch due = %s", lunch.DueDate)
	}
	if lunch.Status != task.StatusOpen {
		t.Errorf("lunch status = %s", lunch.Status)
	}

	if _, ok := byTitle["夕食準備: Aセット (ライス)"]; !ok {
		t.Fatalf("dinner task missing, have %v", titles(list))
	}

	// Re-running creates nothing new.
	created, err = r.RunMealPlanTasks(h.ID, u.ID, date("2026-09-02"))
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if created != 0 {
		t.Errorf("rerun created = %d, want 0", created)
	}
	list, _ = tasks.List(h.ID)
	if len(list) != 2 {
		t.Errorf("tasks after rerun = %d, want 2", len(list))
	}
}

func TestRunMealPlanTasksIgnoresFutureDays(t *testing.T) {
	r, db, h, u := setupRunner(t)
	plans := store.NewMealPlanStore(db)
	menus := store.NewMenuStore(db)

	plan, _ := plans.Create(h.ID, "Week", "2026-09-05", 1)
	if err := plans.EnsureDays(plan); err != nil {
		t.Fatalf("ensure days: %v", err)
	}
	days, _ := plans.ListDays(plan.ID)
	m, _ := menus.Create(h.ID, "カレー", nil, "")
	if err := plans.ReplaceSelections(days[0].ID, []int64{m.ID}, nil); err != nil {
		t.Fatalf("selections: %v", err)
	}

	created, err := r.RunMealPlanTasks(h.ID, u.ID, date("2026-09-01"))
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if created != 0 {
		t.Errorf("created = %d, want 0 for future day", created)
	}
}

func titles(tasks []model.Task) string {
	var ts []string
	for _, tk := range tasks {
		ts = append(ts, tk.Title)
	}
	return strings.Join(ts, "; ")
}
