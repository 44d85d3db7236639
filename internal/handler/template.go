package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/recurring"
	"github.com/mkondo/kajiboard/internal/runner"
	"github.com/mkondo/kajiboard/internal/store"
)

// TemplateHandler manages task templates and their recurring rules.
type TemplateHandler struct {
	templates *store.TemplateStore
	rules     *store.RecurringStore
	runner    *runner.Runner
	renderer  *Renderer
	logger    *slog.Logger
}

func NewTemplateHandler(tpl *store.TemplateStore, rs *store.RecurringStore, rnr *runner.Runner, rn *Renderer, logger *slog.Logger) *TemplateHandler {
	return &TemplateHandler{
		templates: tpl,
		rules:     rs,
		runner:    rnr,
		renderer:  rn,
		logger:    logger,
	}
}

func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	templates, err := h.templates.List(householdID)
	if err != nil {
		h.logger.Error("list templates", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	rules, err := h.rules.List(householdID)
	if err != nil {
		h.logger.Error("list rules", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	titles := make(map[int64]string, len(templates))
	for _, t := range templates {
		titles[t.ID] = t.Title
	}

	h.renderer.Render(w, r, "templates.html", map[string]any{
		"Templates":      templates,
		"Rules":          rules,
		"TemplateTitles": titles,
	})
}

func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/templates", http.StatusSeeOther)
		return
	}

	_, err := h.templates.Create(householdID, title,
		strings.TrimSpace(r.FormValue("memo")),
		strings.TrimSpace(r.FormValue("category")),
		formInt(r, "proposed_points", 1),
		formInt(r, "priority", 3),
		r.FormValue("instructions"))
	if err != nil {
		h.logger.Error("create template", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

func (h *TemplateHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	tmpl, err := h.templates.GetByID(householdID, id)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if tmpl == nil {
		http.NotFound(w, r)
		return
	}

	h.renderer.Render(w, r, "template_edit.html", map[string]any{"Template": tmpl})
}

func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, fmt.Sprintf("/templates/%d/edit", id), http.StatusSeeOther)
		return
	}

	_, err = h.templates.Update(householdID, id, title,
		strings.TrimSpace(r.FormValue("memo")),
		strings.TrimSpace(r.FormValue("category")),
		formInt(r, "proposed_points", 1),
		formInt(r, "priority", 3),
		r.FormValue("instructions"))
	if err != nil {
		h.logger.Error("update template", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.templates.Delete(householdID, id); err != nil {
		h.logger.Error("delete template", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

// CreateRule attaches a recurring rule to a template. The first run date
// defaults to today when the form leaves it empty.
func (h *TemplateHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	templateID, err := strconv.ParseInt(r.FormValue("template_id"), 10, 64)
	if err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/templates", http.StatusSeeOther)
		return
	}
	frequency := r.FormValue("frequency")
	if !recurring.ValidFrequency(frequency) {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/templates", http.StatusSeeOther)
		return
	}

	tmpl, err := h.templates.GetByID(householdID, templateID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if tmpl == nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/templates", http.StatusSeeOther)
		return
	}

	nextRun := strings.TrimSpace(r.FormValue("next_run_date"))
	if nextRun == "" {
		nextRun = time.Now().Format("2006-01-02")
	}

	if _, err := h.rules.Create(householdID, templateID, frequency, nextRun, formInt(r, "relative_due_days", 0)); err != nil {
		h.logger.Error("create rule", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

// ToggleRule flips a rule between active and paused.
func (h *TemplateHandler) ToggleRule(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rule, err := h.rules.GetByID(householdID, id)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if rule == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.rules.SetActive(householdID, id, !rule.Active); err != nil {
		h.logger.Error("toggle rule", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

func (h *TemplateHandler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.rules.Delete(householdID, id); err != nil {
		h.logger.Error("delete rule", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/templates", http.StatusSeeOther)
}

// RunRules creates tasks for all due recurring rules.
func (h *TemplateHandler) RunRules(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	actorID := auth.UserID(r.Context())

	if _, err := h.runner.RunRecurring(householdID, actorID, time.Now()); err != nil {
		h.logger.Error("run recurring", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_rules_run")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
