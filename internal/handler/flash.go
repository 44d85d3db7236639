package handler

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

const flashCookieName = "kajiboard_flash"

// flash carries a one-shot message across a redirect. Key is an i18n string
// key; the text is translated at render time in the viewer's language.
type flash struct {
	Kind string `json:"kind"`
	Key  string `json:"key"`
}

func setFlash(w http.ResponseWriter, kind, key string) {
	data, err := json.Marshal(flash{Kind: kind, Key: key})
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash reads and clears the flash cookie. Returns nil when there is none
// or it cannot be decoded.
func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	data, err := base64.RawURLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var f flash
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	return &f
}
