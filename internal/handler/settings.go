package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/i18n"
	"github.com/mkondo/kajiboard/internal/store"
)

type SettingsHandler struct {
	users      *store.UserStore
	households *store.HouseholdStore
	sessions   *store.SessionStore
	renderer   *Renderer
	logger     *slog.Logger
}

func NewSettingsHandler(us *store.UserStore, hs *store.HouseholdStore, ss *store.SessionStore, rn *Renderer, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		users:      us,
		households: hs,
		sessions:   ss,
		renderer:   rn,
		logger:     logger,
	}
}

func (h *SettingsHandler) Page(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	user, err := h.users.GetByID(ac.UserID)
	if err != nil || user == nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	household, err := h.households.GetByID(ac.HouseholdID)
	if err != nil || household == nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	members, err := h.users.ListByHousehold(ac.HouseholdID)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, r, "settings.html", map[string]any{
		"User":       user,
		"Household":  household,
		"MemberList": members,
		"Languages":  []string{"ja", "en"},
		"Themes":     i18n.Themes,
		"Fonts":      i18n.Fonts,
	})
}

func (h *SettingsHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	if _, err := h.users.UpdateName(userID, name); err != nil {
		h.logger.Error("update profile", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// UpdatePassword requires the current password before setting a new one.
func (h *SettingsHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	current := r.FormValue("current_password")
	next := r.FormValue("new_password")
	if len(next) < 8 {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	user, err := h.users.GetByID(userID)
	if err != nil || user == nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		setFlash(w, "error", "err_login")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if err := h.users.UpdatePassword(userID, hash); err != nil {
		h.logger.Error("update password", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// UpdateAppearance sets the per-session language/theme/font overrides. Empty
// values clear the override so the household default applies again.
func (h *SettingsHandler) UpdateAppearance(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())

	lang := r.FormValue("language")
	theme := r.FormValue("theme")
	font := r.FormValue("font")
	if (lang != "" && !i18n.ValidLanguage(lang)) ||
		(theme != "" && !i18n.ValidTheme(theme)) ||
		(font != "" && !i18n.ValidFont(font)) {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	if err := h.sessions.UpdateAppearance(ac.SessionID, lang, theme, font); err != nil {
		h.logger.Error("update session appearance", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// UpdateHousehold saves the household name, defaults, and contribution rate.
// Admin only.
func (h *SettingsHandler) UpdateHousehold(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	name := strings.TrimSpace(r.FormValue("name"))
	lang := r.FormValue("language")
	theme := r.FormValue("theme")
	font := r.FormValue("font")
	rate := formInt(r, "contribution_rate", 0)

	if name == "" || !i18n.ValidLanguage(lang) || !i18n.ValidTheme(theme) ||
		!i18n.ValidFont(font) || rate < 0 || rate > 100 {
		setFlash(w, "error", "err_invalid")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	if _, err := h.households.UpdateName(householdID, name); err != nil {
		h.logger.Error("update household name", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if _, err := h.households.UpdateAppearance(householdID, lang, theme, font); err != nil {
		h.logger.Error("update household appearance", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if _, err := h.households.UpdateContributionRate(householdID, rate); err != nil {
		h.logger.Error("update contribution rate", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// RegenerateJoinCode invalidates the old code. Admin only.
func (h *SettingsHandler) RegenerateJoinCode(w http.ResponseWriter, r *http.Request) {
	householdID := auth.HouseholdID(r.Context())

	if _, err := h.households.RegenerateJoinCode(householdID); err != nil {
		h.logger.Error("regenerate join code", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_saved")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

// RemoveMember deletes another member from the household. Admin only; an
// admin cannot remove themselves.
func (h *SettingsHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ac, _ := auth.FromContext(r.Context())
	id, err := parseIDParam(r)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if id == ac.UserID {
		setFlash(w, "error", "err_not_allowed")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}

	target, err := h.users.GetByID(id)
	if err != nil {
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}
	if target == nil || target.HouseholdID != ac.HouseholdID {
		http.NotFound(w, r)
		return
	}

	if err := h.users.Delete(id); err != nil {
		h.logger.Error("remove member", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	setFlash(w, "success", "flash_deleted")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
