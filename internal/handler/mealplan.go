package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/model"
	"github.com/mkondo/kajiboard/internal/runner"
	"github.com/mkondo/kajiboard/internal/store"
)

type MealPlanHandler struct {
	plans    *store.MealPlanStore
	menus    *store.MenuStore
	mealSets *store.MealSetStore
	runner   *runner.Runner
	renderer *Renderer
	logger   *slog.Logger
}

func NewMealPlanHandler(ps *store.MealPlanStore, ms *store.MenuStore, sets *store.MealSetStore, rnr *runner.Runner, rn *Renderer, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{
		plans:    ps,
		menus:    ms,
		mealSets: sets,
		runner:   rnr,
		renderer: rn,
		logger:   logger,
	}
}

func (h *MealPlanHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	plans, err := h.plans.List(householdID)
	if err != nil {
		h.logger.Error("list meal plans", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "meal_plans.html", map[string]any{"Plans": plans})
}

// Create makes a plan and its day rows in one step.
func (h *MealPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	title := strings.TrimSpace(r.FormValue("title"))
	startDate := strings.TrimSpace(r.FormValue("start_date"))
	days := formInt(r, "days", 7)
	if title == "" || days < 1 || days > 31 {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/meal-plans", http.StatusSeeOther)
		return
	}
	if _, err := time.Parse(model.DateLayout, startDate); err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/meal-plans", http.StatusSeeOther)
		return
	}

	plan, err := h.plans.Create(householdID, title, startDate, days)
	if err != nil {
		h.logger.Error("create meal plan", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if err := h.plans.EnsureDays(plan); err != nil {
		h.logger.Error("ensure plan days", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, fmt.Sprintf("/meal-plans/%d", plan.ID), http.StatusSeeOther)
}

// Detail shows the day grid plus the aggregated shopping list for the whole
// plan.
func (h *MealPlanHandler) Detail(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	plan := h.loadPlan(w, r, householdID)
	if plan == nil {
		return
	}

	days, err := h.plans.ListDays(plan.ID)
	if err != nil {
		h.logger.Error("list plan days", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	selections := make(map[int64][]model.MealPlanSelection, len(days))
	for _, d := range days {
		sel, err := h.plans.ListSelectionsForDay(d.ID)
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		selections[d.ID] = sel
	}

	menuNames, setNames, err := h.nameMaps(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	menuIDs, err := h.plans.PlanMenuIDs(plan.ID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	shoppingList, err := h.menus.AggregateIngredients(menuIDs)
	if err != nil {
		h.logger.Error("aggregate ingredients", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "meal_plan_detail.html", map[string]any{
		"Plan":         plan,
		"Days":         days,
		"Selections":   selections,
		"MenuNames":    menuNames,
		"SetNames":     setNames,
		"ShoppingList": shoppingList,
	})
}

func (h *MealPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	plan := h.loadPlan(w, r, householdID)
	if plan == nil {
		return
	}

	if err := h.plans.Delete(householdID, plan.ID); err != nil {
		h.logger.Error("delete meal plan", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/meal-plans", http.StatusSeeOther)
}

// DayEditPage shows the slot editors for one day.
func (h *MealPlanHandler) DayEditPage(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	plan := h.loadPlan(w, r, householdID)
	if plan == nil {
		return
	}
	day := h.loadDay(w, r, plan)
	if day == nil {
		return
	}

	selections, err := h.plans.ListSelectionsForDay(day.ID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	lunchIDs := map[int64]bool{}
	dinnerIDs := map[int64]bool{}
	for _, s := range selections {
		if s.Slot == model.MealSlotLunch {
			lunchIDs[s.MenuID] = true
		} else {
			dinnerIDs[s.MenuID] = true
		}
	}

	menus, err := h.menus.List(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	sets, err := h.mealSets.List(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "meal_plan_day.html", map[string]any{
		"Plan":      plan,
		"Day":       day,
		"Menus":     menus,
		"Sets":      sets,
		"LunchIDs":  lunchIDs,
		"DinnerIDs": dinnerIDs,
	})
}

// DayUpdate saves the day's set templates and replaces both slots' menu
// selections.
func (h *MealPlanHandler) DayUpdate(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	plan := h.loadPlan(w, r, householdID)
	if plan == nil {
		return
	}
	day := h.loadDay(w, r, plan)
	if day == nil {
		return
	}

	r.ParseForm()
	lunchSet := formOptionalID(r.FormValue("lunch_set_id"))
	dinnerSet := formOptionalID(r.FormValue("dinner_set_id"))
	if err := h.plans.UpdateDaySets(day.ID, lunchSet, dinnerSet); err != nil {
		h.logger.Error("update day sets", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	lunchMenus := parseIDList(r.Form["lunch_menu"])
	dinnerMenus := parseIDList(r.Form["dinner_menu"])
	if err := h.plans.ReplaceSelections(day.ID, lunchMenus, dinnerMenus); err != nil {
		h.logger.Error("replace selections", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, fmt.Sprintf("/meal-plans/%d", plan.ID), http.StatusSeeOther)
}

// RunTasks derives prep tasks for all due meal-plan days of the household.
func (h *MealPlanHandler) RunTasks(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	actorID := auth.UserID(r.Context())

	if _, err := h.runner.RunMealPlanTasks(householdID, actorID, time.Now()); err != nil {
		h.logger.Error("run meal plan tasks", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_meals_run")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *MealPlanHandler) loadPlan(w http.ResponseWriter, r *http.Request, householdID int64) *model.MealPlan {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil
	}
	plan, err := h.plans.GetByID(householdID, id)
	if err != nil {
		h.logger.Error("get meal plan", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return nil
	}
	if plan == nil {
		http.NotFound(w, r)
		return nil
	}
	return plan
}

// loadDay resolves the {day} path segment and checks it belongs to the plan.
func (h *MealPlanHandler) loadDay(w http.ResponseWriter, r *http.Request, plan *model.MealPlan) *model.MealPlanDay {
	dayID, err := strconv.ParseInt(r.PathValue("day"), 10, 64)
	if err != nil {
		http.Error(w, "invalid day", http.StatusBadRequest)
		return nil
	}
	day, err := h.plans.GetDay(dayID)
	if err != nil {
		h.logger.Error("get plan day", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return nil
	}
	if day == nil || day.MealPlanID != plan.ID {
		http.NotFound(w, r)
		return nil
	}
	return day
}

func (h *MealPlanHandler) nameMaps(householdID int64) (map[int64]string, map[int64]string, error) {
	menus, err := h.menus.List(householdID)
	if err != nil {
		return nil, nil, err
	}
	sets, err := h.mealSets.List(householdID)
	if err != nil {
		return nil, nil, err
	}

	menuNames := make(map[int64]string, len(menus))
	for _, m := range menus {
		menuNames[m.ID] = m.Name
	}
	setNames := make(map[int64]string, len(sets))
	for _, s := range sets {
		setNames[s.ID] = s.Name
	}
	return menuNames, setNames, nil
}

func formOptionalID(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	return &id
}

func parseIDList(raw []string) []int64 {
	ids := make([]int64, 0, len(raw))
	for _, s := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err == nil && id > 0 {
			ids = append(ids, id)
		}
	}
	return ids
}
