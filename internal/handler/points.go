package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/store"
	"github.com/mkondo/kajiboard/internal/websocket"
)

const historyLimit = 50

type PointsHandler struct {
	points     *store.PointStore
	users      *store.UserStore
	households *store.HouseholdStore
	hub        *websocket.Hub
	renderer   *Renderer
	logger     *slog.Logger
}

func NewPointsHandler(ps *store.PointStore, us *store.UserStore, hs *store.HouseholdStore, hub *websocket.Hub, rn *Renderer, logger *slog.Logger) *PointsHandler {
	return &PointsHandler{
		points:     ps,
		users:      us,
		households: hs,
		hub:        hub,
		renderer:   rn,
		logger:     logger,
	}
}

// Page shows per-member balances, recent transactions, and the household
// contribution rate. Admins get a manual adjustment form.
func (h *PointsHandler) Page(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	balances, err := h.points.HouseholdBalances(householdID)
	if err != nil {
		h.logger.Error("household balances", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	history, err := h.points.ListByHousehold(householdID, historyLimit)
	if err != nil {
		h.logger.Error("point history", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	members, err := h.users.ListByHousehold(householdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	household, err := h.households.GetByID(householdID)
	if err != nil || household == nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "points.html", map[string]any{
		"Balances":         balances,
		"History":          history,
		"MemberList":       members,
		"Members":          memberNames(members),
		"ContributionRate": household.ContributionRate,
	})
}

// Adjust records a manual correction for a member. Admin only; amount may be
// negative.
func (h *PointsHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	userID, err := strconv.ParseInt(r.FormValue("user_id"), 10, 64)
	if err != nil {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/points", http.StatusSeeOther)
		return
	}
	amount, err := strconv.Atoi(strings.TrimSpace(r.FormValue("amount")))
	if err != nil || amount == 0 {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/points", http.StatusSeeOther)
		return
	}

	target, err := h.users.GetByID(userID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if target == nil || target.HouseholdID != householdID {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/points", http.StatusSeeOther)
		return
	}

	tx, err := h.points.Adjust(householdID, userID, amount, strings.TrimSpace(r.FormValue("description")))
	if err != nil {
		h.logger.Error("adjust points", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if h.hub != nil {
		h.hub.Broadcast(householdID, websocket.NewMessage("points", "adjusted", tx.ID))
	}
	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/points", http.StatusSeeOther)
}
