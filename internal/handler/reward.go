package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/model"
	"github.com/mkondo/kajiboard/internal/store"
	"github.com/mkondo/kajiboard/internal/websocket"
)

type RewardHandler struct {
	rewards  *store.RewardStore
	points   *store.PointStore
	users    *store.UserStore
	hub      *websocket.Hub
	renderer *Renderer
	logger   *slog.Logger
}

func NewRewardHandler(rs *store.RewardStore, ps *store.PointStore, us *store.UserStore, hub *websocket.Hub, rn *Renderer, logger *slog.Logger) *RewardHandler {
	return &RewardHandler{
		rewards:  rs,
		points:   ps,
		users:    us,
		hub:      hub,
		renderer: rn,
		logger:   logger,
	}
}

func (h *RewardHandler) broadcast(householdID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(householdID, msg)
	}
}

// List shows the reward catalog, the viewer's balance, and pending requests.
// Admins see inactive rewards too.
func (h *RewardHandler) List(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	rewards, err := h.rewards.List(ac.HouseholdID, !ac.Admin)
	if err != nil {
		h.logger.Error("list rewards", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	uses, err := h.rewards.ListUses(ac.HouseholdID)
	if err != nil {
		h.logger.Error("list reward uses", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	balance, err := h.points.Balance(ac.UserID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	members, err := h.users.ListByHousehold(ac.HouseholdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	titles := make(map[int64]string, len(rewards))
	costs := make(map[int64]int, len(rewards))
	for _, rw := range rewards {
		titles[rw.ID] = rw.Title
		costs[rw.ID] = rw.PointCost
	}

	h.renderer.Render(w, r, "rewards.html", map[string]any{
		"Rewards":      rewards,
		"Uses":         uses,
		"Balance":      balance,
		"Members":      memberNames(members),
		"RewardTitles": titles,
		"RewardCosts":  costs,
	})
}

func (h *RewardHandler) Create(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	title := strings.TrimSpace(r.FormValue("title"))
	cost := formInt(r, "point_cost", 0)
	if title == "" || cost < 1 {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/rewards", http.StatusSeeOther)
		return
	}

	_, err := h.rewards.Create(householdID, title,
		strings.TrimSpace(r.FormValue("description")), cost, r.FormValue("active") != "")
	if err != nil {
		h.logger.Error("create reward", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_created")
	http.Redirect(w, r, "/rewards", http.StatusSeeOther)
}

func (h *RewardHandler) Update(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	title := strings.TrimSpace(r.FormValue("title"))
	cost := formInt(r, "point_cost", 0)
	if title == "" || cost < 1 {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/rewards", http.StatusSeeOther)
		return
	}

	_, err = h.rewards.Update(householdID, id, title,
		strings.TrimSpace(r.FormValue("description")), cost, r.FormValue("active") != "")
	if err != nil {
		h.logger.Error("update reward", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/rewards", http.StatusSeeOther)
}

func (h *RewardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.rewards.Delete(householdID, id); err != nil {
		h.logger.Error("delete reward", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/rewards", http.StatusSeeOther)
}

// Request records that the current user wants to redeem a reward. Points are
// not touched until an admin approves.
func (h *RewardHandler) Request(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	userID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	reward, err := h.rewards.GetByID(householdID, id)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if reward == nil || !reward.Active {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/rewards", http.StatusSeeOther)
		return
	}

	use, err := h.rewards.CreateUse(householdID, reward.ID, userID)
	if err != nil {
		h.logger.Error("create reward use", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.broadcast(householdID, websocket.NewMessage("reward", "requested", use.ID))
	setFlash(w, "success", "flash_requested")
	http.Redirect(w, r, "/rewards", http.StatusSeeOther)
}

// Approve grants a pending request and deducts the reward cost from the
// requester. The deduction is keyed to the use, so approving twice cannot
// charge twice.
func (h *RewardHandler) Approve(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	deciderID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	use, err := h.rewards.Decide(householdID, id, deciderID, model.RewardUseApproved)
	if err != nil {
		h.logger.Error("approve reward use", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if use == nil || use.Status != model.RewardUseApproved {
		setFlash(w, "error", "err_not_allowed")
		http.Redirect(w, r, "/rewards", http.StatusSeeOther)
		return
	}

	reward, err := h.rewards.GetByID(householdID, use.RewardTemplateID)
	if err != nil || reward == nil {
		h.logger.Error("approved use without reward", "use_id", use.ID, "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	created, err := h.points.SpendRewardPoints(householdID, use.UserID, use.ID, reward.PointCost, reward.Title)
	if err != nil {
		h.logger.Error("spend reward points", "use_id", use.ID, "error", err)
	} else if created {
		h.broadcast(householdID, websocket.NewMessage("points", "spent", use.ID))
	}

	h.broadcast(householdID, websocket.NewMessage("reward", "approved", use.ID))
	setFlash(w, "success", "flash_approved")
	http.Redirect(w, r, "/rewards", http.StatusSeeOther)
}

func (h *RewardHandler) Reject(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())
	deciderID := auth.UserID(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	use, err := h.rewards.Decide(householdID, id, deciderID, model.RewardUseRejected)
	if err != nil {
		h.logger.Error("reject reward use", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if use == nil || use.Status != model.RewardUseRejected {
		setFlash(w, "error", "err_not_allowed")
		http.Redirect(w, r, "/rewards", http.StatusSeeOther)
		return
	}

	h.broadcast(householdID, websocket.NewMessage("reward", "rejected", use.ID))
	setFlash(w, "success", "flash_rejected")
	http.Redirect(w, r, "/rewards", http.StatusSeeOther)
}
