package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/model"
	"github.com/mkondo/kajiboard/internal/store"
)

// MealSetHandler manages dish types and meal set templates (a named bundle
// of dish-type requirements, e.g. one soup plus two sides).
type MealSetHandler struct {
	mealSets *store.MealSetStore
	renderer *Renderer
	logger   *slog.Logger
}

func NewMealSetHandler(ms *store.MealSetStore, rn *Renderer, logger *slog.Logger) *MealSetHandler {
	return &MealSetHandler{
		mealSets: ms,
		renderer: rn,
		logger:   logger,
	}
}

func (h *MealSetHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	sets, err := h.mealSets.List(householdID)
	if err != nil {
		h.logger.Error("list meal sets", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	dishTypes, err := h.mealSets.ListDishTypes(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	requirements := make(map[int64][]model.MealSetRequirement, len(sets))
	for _, set := range sets {
		reqs, err := h.mealSets.ListRequirements(set.ID)
		if err != nil {
			h.logger.Error("list requirements", "set_id", set.ID, "error", err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		requirements[set.ID] = reqs
	}

	h.renderer.Render(w, r, "meal_sets.html", map[string]any{
		"Sets":         sets,
		"DishTypes":    dishTypes,
		"Requirements": requirements,
	})
}

func (h *MealSetHandler) Create(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/meal-sets", http.StatusSeeOther)
		return
	}

	set, err := h.mealSets.Create(householdID, name)
	if err != nil {
		h.logger.Error("create meal set", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.mealSets.ReplaceRequirements(set.ID, requirementLinesFromForm(r)); err != nil {
		h.logger.Error("replace requirements", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, "/meal-sets", http.StatusSeeOther)
}

// UpdateRequirements replaces a set's dish-type requirements wholesale.
func (h *MealSetHandler) UpdateRequirements(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	set, err := h.mealSets.GetByID(householdID, id)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if set == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.mealSets.ReplaceRequirements(set.ID, requirementLinesFromForm(r)); err != nil {
		h.logger.Error("replace requirements", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/meal-sets", http.StatusSeeOther)
}

func (h *MealSetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.mealSets.Delete(householdID, id); err != nil {
		h.logger.Error("delete meal set", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/meal-sets", http.StatusSeeOther)
}

func (h *MealSetHandler) SaveDishType(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/meal-sets", http.StatusSeeOther)
		return
	}

	if err := h.mealSets.UpsertDishType(householdID, name, formInt(r, "sort_order", 0)); err != nil {
		h.logger.Error("save dish type", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/meal-sets", http.StatusSeeOther)
}

// requirementLinesFromForm reads the parallel req_dish_type / req_qty arrays.
func requirementLinesFromForm(r *http.Request) []store.RequirementLine {
	r.ParseForm()
	types := r.Form["req_dish_type"]
	qtys := r.Form["req_qty"]

	lines := make([]store.RequirementLine, 0, len(types))
	for i, raw := range types {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id == 0 {
			continue
		}
		qty := 1
		if i < len(qtys) {
			if n, err := strconv.Atoi(strings.TrimSpace(qtys[i])); err == nil {
				qty = n
			}
		}
		lines = append(lines, store.RequirementLine{DishTypeID: id, Quantity: qty})
	}
	return lines
}
