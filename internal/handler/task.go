package handler

import (
	"errors"
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
	"github.com/mkondo/kajiboard/internal/task"
	"github.com/mkondo/kajiboard/internal/websocket"
)

type TaskHandler struct {
	tasks      *store.TaskStore
	categories *store.CategoryStore
	templates  *store.TemplateStore
	users      *store.UserStore
	points     *store.PointStore
	runner     *runner.Runner
	hub        *websocket.Hub
	renderer   *Renderer
	logger     *slog.Logger
}

func NewTaskHandler(ts *store.TaskStore, cs *store.CategoryStore, tpl *store.TemplateStore, us *store.UserStore, ps *store.PointStore, rnr *runner.Runner, hub *websocket.Hub, rn *Renderer, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:      ts,
		categories: cs,
		templates:  tpl,
		users:      us,
		points:     ps,
		runner:     rnr,
		hub:        hub,
		renderer:   rn,
		logger:     logger,
	}
}

func (h *TaskHandler) broadcast(householdID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(householdID, msg)
	}
}

// Dashboard is the board view: active tasks grouped by status, with member
// names for assignee display. Viewing it also fires the generators, so due
// recurring rules and meal-plan days materialize without a manual run.
func (h *TaskHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	householdID := auth.HouseholdID(r.Context())
	actorID := auth.UserID(r.Context())

	if h.runner != nil {
		now := time.Now()
		if _, err := h.runner.RunRecurring(householdID, actorID, now); err != nil {
			h.logger.Error("run recurring rules", "error", err)
		}
		if _, err := h.runner.RunMealPlanTasks(householdID, actorID, now); err != nil {
			h.logger.Error("run meal plan tasks", "error", err)
		}
	}

	tasks, err := h.tasks.List(householdID,
		task.StatusOpen, task.StatusAssigned, task.StatusInProgress, task.StatusCompleted)
	if err != nil {
		h.logger.Error("list tasks", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	groups := map[string][]model.Task{}
	for _, t := range tasks {
		groups[t.Status] = append(groups[t.Status], t)
	}

	members, err := h.users.ListByHousehold(householdID)
	if err != nil {
		h.logger.Error("list members", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "dashboard.html", map[string]any{
		"Open":       groups[task.StatusOpen],
		"Assigned":   groups[task.StatusAssigned],
		"InProgress": groups[task.StatusInProgress],
		"Completed":  groups[task.StatusCompleted],
		"Members":    memberNames(members),
	})
}

// History lists terminal tasks, newest first.
func (h *TaskHandler) History(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	tasks, err := h.tasks.List(householdID, task.StatusApproved, task.StatusCancelled)
	if err != nil {
		h.logger.Error("list history", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	members, err := h.users.ListByHousehold(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "task_history.html", map[string]any{
		"Tasks":   tasks,
		"Members": memberNames(members),
	})
}

func (h *TaskHandler) NewPage(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	h.renderTaskForm(w, r, householdID, "task_new.html", nil)
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	actorID := auth.UserID(r.Context())

	p, errKey := taskParamsFromForm(r)
	if errKey != "" {
		setFlash(w, "error", errKey)
		http.Redirect(w, r, "/tasks/new", http.StatusSeeOther)
		return
	}

	created, err := h.tasks.Create(householdID, actorID, p)
	if err != nil {
		h.logger.Error("create task", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.broadcast(householdID, websocket.NewMessage("task", "created", created.ID))
	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TaskHandler) Detail(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	t := h.loadTask(w, r, householdID)
	if t == nil {
		return
	}

	var instructions any
	if tmpl, err := h.templates.GetByTitle(householdID, t.Title); err == nil && tmpl != nil && tmpl.Instructions != "" {
		instructions = RenderInstructions(tmpl.Instructions)
	}

	members, err := h.users.ListByHousehold(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "task_detail.html", map[string]any{
		"Task":         t,
		"Actions":      task.AvailableActions(t.Status),
		"Instructions": instructions,
		"Members":      memberNames(members),
	})
}

func (h *TaskHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	t := h.loadTask(w, r, householdID)
	if t == nil {
		return
	}
	h.renderTaskForm(w, r, householdID, "task_edit.html", t)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	t := h.loadTask(w, r, householdID)
	if t == nil {
		return
	}

	p, errKey := taskParamsFromForm(r)
	if errKey != "" {
		setFlash(w, "error", errKey)
		http.Redirect(w, r, fmt.Sprintf("/tasks/%d/edit", t.ID), http.StatusSeeOther)
		return
	}

	if _, err := h.tasks.Update(householdID, t.ID, p); err != nil {
		h.logger.Error("update task", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.broadcast(householdID, websocket.NewMessage("task", "updated", t.ID))
	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, fmt.Sprintf("/tasks/%d", t.ID), http.StatusSeeOther)
}

// Action applies a lifecycle action to a task. Approving awards the actual
// points to the assignee; the award is skipped when the task already has a
// transaction, so re-approving never double-pays.
func (h *TaskHandler) Action(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	actorID := auth.UserID(r.Context())
	t := h.loadTask(w, r, householdID)
	if t == nil {
		return
	}

	action := r.FormValue("action")
	var actualPoints *int
	if raw := strings.TrimSpace(r.FormValue("points")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			setFlash(w, "error", "err_invalid")
			http.Redirect(w, r, fmt.Sprintf("/tasks/%d", t.ID), http.StatusSeeOther)
			return
		}
		actualPoints = &n
	}

	if err := task.Apply(t, action, actorID, actualPoints); err != nil {
		if errors.Is(err, task.ErrInvalidAction) {
			setFlash(w, "error", "err_not_allowed")
			http.Redirect(w, r, fmt.Sprintf("/tasks/%d", t.ID), http.StatusSeeOther)
			return
		}
		h.logger.Error("apply action", "action", action, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.tasks.SaveState(t); err != nil {
		h.logger.Error("save task state", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if t.Status == task.StatusApproved && t.AssigneeID != nil && t.ActualPoints != nil {
		created, err := h.points.AwardTaskPoints(householdID, *t.AssigneeID, t.ID, *t.ActualPoints, t.Title)
		if err != nil {
			h.logger.Error("award task points", "task_id", t.ID, "error", err)
		} else if created {
			h.broadcast(householdID, websocket.NewMessage("points", "awarded", t.ID))
		}
	}

	h.broadcast(householdID, websocket.NewMessage("task", action, t.ID))
	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	t := h.loadTask(w, r, householdID)
	if t == nil {
		return
	}

	if err := h.tasks.Delete(householdID, t.ID); err != nil {
		h.logger.Error("delete task", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.broadcast(householdID, websocket.NewMessage("task", "deleted", t.ID))
	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// OrderSheet is the printable list of all non-cancelled tasks in order-number
// order.
func (h *TaskHandler) OrderSheet(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	tasks, err := h.tasks.ListOrderSheet(householdID)
	if err != nil {
		h.logger.Error("order sheet", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	members, err := h.users.ListByHousehold(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "order_sheet.html", map[string]any{
		"Tasks":   tasks,
		"Members": memberNames(members),
	})
}

func (h *TaskHandler) loadTask(w http.ResponseWriter, r *http.Request, householdID int64) *model.Task {
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil
	}
	t, err := h.tasks.GetByID(householdID, id)
	if err != nil {
		h.logger.Error("get task", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return nil
	}
	if t == nil {
		http.NotFound(w, r)
		return nil
	}
	return t
}

func (h *TaskHandler) renderTaskForm(w http.ResponseWriter, r *http.Request, householdID int64, page string, t *model.Task) {
	categories, err := h.categories.List(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	templates, err := h.templates.List(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	members, err := h.users.ListByHousehold(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, page, map[string]any{
		"Task":       t,
		"Categories": categories,
		"Templates":  templates,
		"MemberList": members,
	})
}

func taskParamsFromForm(r *http.Request) (store.TaskParams, string) {
	p := store.TaskParams{
		Title:    strings.TrimSpace(r.FormValue("title")),
		Notes:    strings.TrimSpace(r.FormValue("notes")),
		Category: strings.TrimSpace(r.FormValue("category")),
		DueDate:  strings.TrimSpace(r.FormValue("due_date")),
		DueTime:  strings.TrimSpace(r.FormValue("due_time")),
	}
	if p.Title == "" {
		return p, "err_invalid"
	}

	p.ProposedPoints = formInt(r, "proposed_points", 1)
	p.Priority = formInt(r, "priority", 3)

	if raw := strings.TrimSpace(r.FormValue("assignee_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, "err_invalid"
		}
		p.AssigneeID = &id
	}

	return p, ""
}

func formInt(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.FormValue(name))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func memberNames(members []model.User) map[int64]string {
	names := make(map[int64]string, len(members))
	for _, m := range members {
		names[m.ID] = m.Name
	}
	return names
}
