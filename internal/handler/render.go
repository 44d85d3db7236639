package handler

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/mkondo/kajiboard/internal/auth"
	"github.com/mkondo/kajiboard/internal/i18n"
)

// Renderer executes page templates with the ambient data every page needs:
// translated strings, theme, font stack, and any pending flash message.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

func NewRenderer(logger *slog.Logger) *Renderer {
	funcs := template.FuncMap{
		"instructionHTML": RenderInstructions,
		"deref": func(p *int64) int64 {
			if p == nil {
				return 0
			}
			return *p
		},
		"derefInt": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"dict": func(pairs ...any) map[string]any {
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i+1 < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					continue
				}
				m[key] = pairs[i+1]
			}
			return m
		},
	}
	tmpl := template.Must(template.New("").Funcs(funcs).ParseGlob("web/templates/*.html"))
	return &Renderer{
		templates: tmpl,
		logger:    logger.With("component", "handler"),
	}
}

// Render executes the named template. Appearance comes from the auth context
// when present, otherwise the defaults (login and register pages).
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}

	lang := i18n.DefaultLanguage
	theme := i18n.Themes[0]
	font := i18n.Fonts[0]
	if ac, ok := auth.FromContext(r.Context()); ok {
		lang, theme, font = ac.Language, ac.Theme, ac.Font
		data["Admin"] = ac.Admin
		data["UserID"] = ac.UserID
	}

	data["Lang"] = lang
	data["Theme"] = theme
	data["FontStack"] = template.CSS(i18n.FontStack(font))
	data["S"] = i18n.Strings(lang)
	data["StatusLabels"] = i18n.StatusLabels(lang)
	data["Path"] = r.URL.Path

	if f := popFlash(w, r); f != nil {
		data["Flash"] = map[string]string{
			"Kind": f.Kind,
			"Text": i18n.T(lang, f.Key),
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rn.templates.ExecuteTemplate(w, name, data); err != nil {
		rn.logger.Error("render template", "name", name, "error", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func parseIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
