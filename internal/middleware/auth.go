package middleware

import (
	"net/http"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/i18n"
	"github.com/mkondo/kajiboard/internal/model"
	"github.com/mkondo/kajiboard/internal/store"
)

// SessionCookieName is the login cookie. Handlers set and clear it; this
// middleware only reads it.
const SessionCookieName = "kajiboard_session"

// RequireAuth validates the session cookie, resolves the effective
// language/theme/font (session override, then household default), and
// populates AuthContext. Unauthenticated requests are redirected to /login.
func RequireAuth(sessions *store.SessionStore, users *store.UserStore, households *store.HouseholdStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			sess, err := sessions.GetByToken(cookie.Value)
			if err != nil || sess == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			user, err := users.GetByID(sess.UserID)
			if err != nil || user == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			household, err := households.GetByID(sess.HouseholdID)
			if err != nil || household == nil {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			ac := auth.AuthContext{
				UserID:      sess.UserID,
				HouseholdID: sess.HouseholdID,
				SessionID:   sess.ID,
				Admin:       user.IsAdmin,
				Language:    resolveLanguage(sess, household),
				Theme:       resolveTheme(sess, household),
				Font:        resolveFont(sess, household),
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin checks that the authenticated user is a household admin.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func resolveLanguage(sess *model.Session, h *model.Household) string {
	if i18n.ValidLanguage(sess.Language) {
		return sess.Language
	}
	if i18n.ValidLanguage(h.Language) {
		return h.Language
	}
	return i18n.DefaultLanguage
}

func resolveTheme(sess *model.Session, h *model.Household) string {
	if i18n.ValidTheme(sess.Theme) {
		return sess.Theme
	}
	if i18n.ValidTheme(h.Theme) {
		return h.Theme
	}
	return i18n.Themes[0]
}

func resolveFont(sess *model.Session, h *model.Household) string {
	if i18n.ValidFont(sess.Font) {
		return sess.Font
	}
	if i18n.ValidFont(h.Font) {
		return h.Font
	}
	return i18n.Fonts[0]
}
