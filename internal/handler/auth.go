package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/middleware"
	"github.com/mkondo/kajiboard/internal/store"
)

const sessionCookieMaxAge = 30 * 24 * 60 * 60

type AuthHandler struct {
	users      *store.UserStore
	households *store.HouseholdStore
	sessions   *store.SessionStore
	renderer   *Renderer
	logger     *slog.Logger
}

func NewAuthHandler(us *store.UserStore, hs *store.HouseholdStore, ss *store.SessionStore, rn *Renderer, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		users:      us,
		households: hs,
		sessions:   ss,
		renderer:   rn,
		logger:     logger,
	}
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "login.html", nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	fail := func() {
		h.renderer.Render(w, r, "login.html", map[string]any{
			"Error": "err_login",
			"Email": email,
		})
	}

	if email == "" || password == "" {
		fail()
		return
	}

	user, err := h.users.GetByEmail(email)
	if err != nil {
		h.logger.Error("login lookup", "error", err)
		fail()
		return
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		fail()
		return
	}

	h.startSession(w, r, user.ID, user.HouseholdID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "register.html", nil)
}

// Register creates a household with its first admin user and seeds the
// household defaults (categories, units, dish types, sample data).
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	householdName := strings.TrimSpace(r.FormValue("household_name"))
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	fail := func(key string) {
		h.renderer.Render(w, r, "register.html", map[string]any{
			"Error":         key,
			"HouseholdName": householdName,
			"Name":          name,
			"Email":         email,
		})
	}

	if householdName == "" || name == "" || email == "" || len(password) < 8 {
		fail("err_invalid")
		return
	}

	existing, err := h.users.GetByEmail(email)
	if err != nil {
		h.logger.Error("register lookup", "error", err)
		fail("err_invalid")
		return
	}
	if existing != nil {
		fail("err_email_taken")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	household, err := h.households.Create(householdName)
	if err != nil {
		h.logger.Error("create household", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	user, err := h.users.Create(household.ID, name, email, hash, true)
	if err != nil {
		h.logger.Error("create user", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	if err := h.households.SeedDefaults(household.ID); err != nil {
		h.logger.Error("seed defaults", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.startSession(w, r, user.ID, household.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) JoinPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, "join.html", nil)
}

// Join adds a new member to an existing household via its join code.
func (h *AuthHandler) Join(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(strings.TrimSpace(r.FormValue("join_code")))
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.ToLower(strings.TrimSpace(r.FormValue("email")))
	password := r.FormValue("password")

	fail := func(key string) {
		h.renderer.Render(w, r, "join.html", map[string]any{
			"Error":    key,
			"JoinCode": code,
			"Name":     name,
			"Email":    email,
		})
	}

	if code == "" || name == "" || email == "" || len(password) < 8 {
		fail("err_invalid")
		return
	}

	household, err := h.households.GetByJoinCode(code)
	if err != nil {
		h.logger.Error("join code lookup", "error", err)
		fail("err_invalid")
		return
	}
	if household == nil {
		fail("err_join_code")
		return
	}

	taken, err := h.users.EmailExists(household.ID, email)
	if err != nil {
		h.logger.Error("join email check", "error", err)
		fail("err_invalid")
		return
	}
	if taken {
		fail("err_email_taken")
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		h.logger.Error("hash password", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	user, err := h.users.Create(household.ID, name, email, hash, false)
	if err != nil {
		h.logger.Error("create member", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	h.startSession(w, r, user.ID, household.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(cookie.Value); err != nil {
			h.logger.Error("delete session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) startSession(w http.ResponseWriter, r *http.Request, userID, householdID int64) {
	sess, err := h.sessions.Create(userID, householdID)
	if err != nil {
		h.logger.Error("create session", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   sessionCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})
}
