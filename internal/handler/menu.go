package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/store"
)

// MenuHandler manages menus with their ingredient lines, the ingredient
// master list, and unit options.
type MenuHandler struct {
	menus       *store.MenuStore
	ingredients *store.IngredientStore
	mealSets    *store.MealSetStore
	renderer    *Renderer
	logger      *slog.Logger
}

func NewMenuHandler(ms *store.MenuStore, is *store.IngredientStore, sets *store.MealSetStore, rn *Renderer, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		menus:       ms,
		ingredients: is,
		mealSets:    sets,
		renderer:    rn,
		logger:      logger,
	}
}

func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	menus, err := h.menus.List(householdID)
	if err != nil {
		h.logger.Error("list menus", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	usage, err := h.menus.UsageCounts(householdID)
	if err != nil {
		h.logger.Error("menu usage", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	dishTypes, err := h.mealSets.ListDishTypes(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	typeNames := make(map[int64]string, len(dishTypes))
	for _, dt := range dishTypes {
		typeNames[dt.ID] = dt.Name
	}

	h.renderer.Render(w, r, "menus.html", map[string]any{
		"Menus":         menus,
		"Usage":         usage,
		"DishTypes":     dishTypes,
		"DishTypeNames": typeNames,
	})
}

func (h *MenuHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	h.renderMenuForm(w, r, "menu_new.html", 0)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/menus/new", http.StatusSeeOther)
		return
	}

	menu, err := h.menus.Create(householdID, name, formDishType(r), strings.TrimSpace(r.FormValue("memo")))
	if err != nil {
		h.logger.Error("create menu", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.menus.ReplaceIngredients(householdID, menu.ID, ingredientLinesFromForm(r)); err != nil {
		h.logger.Error("replace menu ingredients", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, "/menus", http.StatusSeeOther)
}

func (h *MenuHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	h.renderMenuForm(w, r, "menu_edit.html", id)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, fmt.Sprintf("/menus/%d/edit", id), http.StatusSeeOther)
		return
	}

	if _, err := h.menus.Update(householdID, id, name, formDishType(r), strings.TrimSpace(r.FormValue("memo"))); err != nil {
		h.logger.Error("update menu", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.menus.ReplaceIngredients(householdID, id, ingredientLinesFromForm(r)); err != nil {
		h.logger.Error("replace menu ingredients", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/menus", http.StatusSeeOther)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.menus.Delete(householdID, id); err != nil {
		h.logger.Error("delete menu", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/menus", http.StatusSeeOther)
}

// Ingredients lists the ingredient master with the active unit options.
func (h *MenuHandler) Ingredients(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	ingredients, err := h.ingredients.List(householdID)
	if err != nil {
		h.logger.Error("list ingredients", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	units, err := h.ingredients.ListUnitOptions(householdID, false)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "ingredients.html", map[string]any{
		"Ingredients": ingredients,
		"Units":       units,
	})
}

func (h *MenuHandler) CreateIngredient(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	unit := strings.TrimSpace(r.FormValue("unit"))
	if name == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
		return
	}

	if _, err := h.ingredients.GetOrCreate(householdID, name, unit); err != nil {
		h.logger.Error("create ingredient", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
}

// DeleteIngredient refuses to remove an ingredient that menus still use.
func (h *MenuHandler) DeleteIngredient(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.ingredients.Delete(householdID, id); err != nil {
		if errors.Is(err, store.ErrIngredientInUse) {
			setFlash(w, "error", "err_in_use")
			http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
			return
		}
		h.logger.Error("delete ingredient", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
}

func (h *MenuHandler) SaveUnitOption(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	value := strings.TrimSpace(r.FormValue("value"))
	if value == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
		return
	}

	if err := h.ingredients.UpsertUnitOption(householdID, value, formInt(r, "sort_order", 0), r.FormValue("active") != ""); err != nil {
		h.logger.Error("save unit option", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/ingredients", http.StatusSeeOther)
}

func (h *MenuHandler) renderMenuForm(w http.ResponseWriter, r *http.Request, page string, menuID int64) {
	householdID := auth.HouseholdID(r.Context())

	data := map[string]any{}

	if menuID != 0 {
		menu, err := h.menus.GetByID(householdID, menuID)
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		if menu == nil {
			http.NotFound(w, r)
			return
		}
		lines, err := h.menus.ListIngredients(menuID)
		if err != nil {
			http.Error(w, "Internal error", http.StatusInternalServerError)
			return
		}
		data["Menu"] = menu
		data["Lines"] = lines
	}

	dishTypes, err := h.mealSets.ListDishTypes(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	units, err := h.ingredients.ListUnitOptions(householdID, true)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	data["DishTypes"] = dishTypes
	data["Units"] = units
	h.renderer.Render(w, r, page, data)
}

func formDishType(r *http.Request) *int64 {
	raw := strings.TrimSpace(r.FormValue("dish_type_id"))
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

// ingredientLinesFromForm reads the parallel ing_name / ing_qty / ing_unit
// arrays. Rows with a blank name are dropped by the store.
func ingredientLinesFromForm(r *http.Request) []store.IngredientLine {
	r.ParseForm()
	names := r.Form["ing_name"]
	qtys := r.Form["ing_qty"]
	units := r.Form["ing_unit"]

	lines := make([]store.IngredientLine, 0, len(names))
	for i, name := range names {
		var qty float64
		if i < len(qtys) {
			qty, _ = strconv.ParseFloat(strings.TrimSpace(qtys[i]), 64)
		}
		unit := ""
		if i < len(units) {
			unit = strings.TrimSpace(units[i])
		}
		lines = append(lines, store.IngredientLine{
			Name:     strings.TrimSpace(name),
			Quantity: qty,
			Unit:     unit,
		})
	}
	return lines
}
