// Package i18n holds the UI string tables and the appearance choices
// (theme, font). Lookup order for a string is requested language, then
// English, then the key itself.
package i18n

// DefaultLanguage is used when neither the session nor the household carries
// a valid language.
const DefaultLanguage = "ja"

var languages = []string{"en", "ja"}

// Themes in display order.
var Themes = []string{"sakura", "mint", "creamsicle", "night"}

// Fonts in display order.
var Fonts = []string{"modern", "serif", "rounded"}

// FontStacks maps a font choice to its CSS font-family value.
var FontStacks = map[string]string{
	"modern":  `"Helvetica Neue", Arial, "Hiragino Kaku Gothic ProN", "Noto Sans JP", Meiryo, sans-serif`,
	"serif":   `"Times New Roman", "Hiragino Mincho ProN", "Noto Serif JP", "Yu Mincho", serif`,
	"rounded": `"Hiragino Maru Gothic ProN", "Noto Sans JP", "M PLUS Rounded 1c", sans-serif`,
}

func Languages() []string { return languages }

func ValidLanguage(l string) bool { return l == "en" || l == "ja" }

func ValidTheme(t string) bool {
	for _, v := range Themes {
		if v == t {
			return true
		}
	}
	return false
}

func ValidFont(f string) bool {
	_, ok := FontStacks[f]
	return ok
}

// FontStack returns the CSS stack for the font choice, defaulting to modern.
func FontStack(font string) string {
	if s, ok := FontStacks[font]; ok {
		return s
	}
	return FontStacks["modern"]
}

// T resolves key in lang, falling back to English and then the key itself.
func T(lang, key string) string {
	if tbl, ok := tables[lang]; ok {
		if s, ok := tbl[key]; ok {
			return s
		}
	}
	if s, ok := tables["en"][key]; ok {
		return s
	}
	return key
}

// Strings returns the merged string table for lang: English defaults overlaid
// with the language's own entries. The result is a fresh map safe to hand to
// templates.
func Strings(lang string) map[string]string {
	out := make(map[string]string, len(tables["en"]))
	for k, v := range tables["en"] {
		out[k] = v
	}
	if lang != "en" {
		for k, v := range tables[lang] {
			out[k] = v
		}
	}
	return out
}

// StatusLabel returns the localized label for a task status.
func StatusLabel(lang, status string) string {
	if m, ok := statusLabels[lang]; ok {
		if s, ok := m[status]; ok {
			return s
		}
	}
	if s, ok := statusLabels["en"][status]; ok {
		return s
	}
	return status
}

// StatusLabels returns the full status label map for lang.
func StatusLabels(lang string) map[string]string {
	if m, ok := statusLabels[lang]; ok {
		return m
	}
	return statusLabels["en"]
}
