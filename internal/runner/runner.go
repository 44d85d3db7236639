// Package runner executes the scheduled generators: recurring task rules and
// meal-preparation tasks derived from meal plans. Both run opportunistically
// on each dashboard view (and from the manual run buttons) rather than on a
// background scheduler, and take today's date explicitly so tests control
// the clock.
package runner

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mkondo/kajiboard/internal/model"
	"github.com/mkondo/kajiboard/internal/recurring"
	"github.com/mkondo/kajiboard/internal/store"
)

type Runner struct {
	tasks     *store.TaskStore
	templates *store.TemplateStore
	rules     *store.RecurringStore
	plans     *store.MealPlanStore
	menus     *store.MenuStore
	sets      *store.MealSetStore
	logger    *slog.Logger
}

func New(
	tasks *store.TaskStore,
	templates *store.TemplateStore,
	rules *store.RecurringStore,
	plans *store.MealPlanStore,
	menus *store.MenuStore,
	sets *store.MealSetStore,
	logger *slog.Logger,
) *Runner {
	return &Runner{
		tasks:     tasks,
		templates: templates,
		rules:     rules,
		plans:     plans,
		menus:     menus,
		sets:      sets,
		logger:    logger.With("component", "runner"),
	}
}

// RunRecurring fires every active rule whose next run date is on or before
// today: one task per rule, then one stride forward. A rule that has fallen
// behind catches up one invocation at a time. Returns the number of tasks
// created.
func (r *Runner) RunRecurring(householdID, actorID int64, today time.Time) (int, error) {
	todayStr := today.Format(model.DateLayout)
	rules, err := r.rules.ListDue(householdID, todayStr)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, rule := range rules {
		tpl, err := r.templates.GetByID(householdID, rule.TaskTemplateID)
		if err != nil {
			return created, err
		}
		if tpl == nil {
			r.logger.Warn("rule references missing template", "rule_id", rule.ID)
			continue
		}

		_, err = r.tasks.Create(householdID, actorID, store.TaskParams{
			Title:          tpl.Title,
			Notes:          tpl.Memo,
			Category:       tpl.Category,
			ProposedPoints: tpl.ProposedPoints,
			Priority:       3,
			DueDate:        recurring.DueDate(today, rule.RelativeDueDays),
		})
		if err != nil {
			return created, fmt.Errorf("create task from rule %d: %w", rule.ID, err)
		}
		created++

		next, err := recurring.Advance(rule.Frequency, rule.NextRunDate)
		if err != nil {
			return created, fmt.Errorf("advance rule %d: %w", rule.ID, err)
		}
		if err := r.rules.SetNextRunDate(householdID, rule.ID, next); err != nil {
			return created, err
		}
	}

	if created > 0 {
		r.logger.Info("recurring rules fired", "household_id", householdID, "created", created)
	}
	return created, nil
}

var slotPrefixes = map[string]string{
	model.MealSlotLunch:  "昼食準備",
	model.MealSlotDinner: "夕食準備",
}

// RunMealPlanTasks creates preparation tasks for every plan day on or before
// today. Each (day, slot) produces at most one task, guarded by an existence
// check. Returns the number of tasks created.
func (r *Runner) RunMealPlanTasks(householdID, actorID int64, today time.Time) (int, error) {
	todayStr := today.Format(model.DateLayout)
	days, err := r.plans.ListDueDays(householdID, todayStr)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, day := range days {
		for _, slot := range []string{model.MealSlotLunch, model.MealSlotDinner} {
			title, ok, err := r.mealTaskTitle(householdID, &day, slot)
			if err != nil {
				return created, err
			}
			if !ok {
				continue
			}

			exists, err := r.tasks.ExistsForMealSlot(householdID, day.ID, slot)
			if err != nil {
				return created, err
			}
			if exists {
				continue
			}

			dayID := day.ID
			_, err = r.tasks.Create(householdID, actorID, store.TaskParams{
				Title:          title,
				Category:       "meal",
				ProposedPoints: 2,
				Priority:       2,
				DueDate:        day.DayDate,
				MealPlanDayID:  &dayID,
				MealSlot:       slot,
			})
			if err != nil {
				return created, fmt.Errorf("create meal task for day %d: %w", day.ID, err)
			}
			created++
		}
	}

	if created > 0 {
		r.logger.Info("meal tasks generated", "household_id", householdID, "created", created)
	}
	return created, nil
}

// mealTaskTitle builds the task title for one slot: the set template name (or
// 献立 when only individual menus are picked) followed by the menu names. ok
// is false when the slot has neither a set nor any menus.
func (r *Runner) mealTaskTitle(householdID int64, day *model.MealPlanDay, slot string) (string, bool, error) {
	var setID, legacyMenuID *int64
	if slot == model.MealSlotLunch {
		setID, legacyMenuID = day.LunchSetTemplateID, day.LunchMenuID
	} else {
		setID, legacyMenuID = day.DinnerSetTemplateID, day.DinnerMenuID
	}

	var menuIDs []int64
	if legacyMenuID != nil {
		menuIDs = append(menuIDs, *legacyMenuID)
	}
	selections, err := r.plans.ListSelectionsForDay(day.ID)
	if err != nil {
		return "", false, err
	}
	for _, sel := range selections {
		if sel.Slot == slot {
			menuIDs = append(menuIDs, sel.MenuID)
		}
	}

	if setID == nil && len(menuIDs) == 0 {
		return "", false, nil
	}

	label := "献立"
	if setID != nil {
		set, err := r.sets.GetByID(householdID, *setID)
		if err != nil {
			return "", false, err
		}
		if set != nil {
			label = set.Name
		}
	}

	var names []string
	for _, id := range menuIDs {
		menu, err := r.menus.GetByID(householdID, id)
		if err != nil {
			return "", false, err
		}
		if menu != nil {
			names = append(names, menu.Name)
		}
	}

	title := fmt.Sprintf("%s: %s", slotPrefixes[slot], label)
	if len(names) > 0 {
		title += " (" + strings.Join(names, ", ") + ")"
	}
	return title, true, nil
}
