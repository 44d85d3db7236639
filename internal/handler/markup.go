package handler

import (
	"html/template"
	"strings"
)

// RenderInstructions converts the task instruction mini-markup to HTML.
// Supported lines: "= " and "== " headings, "* " list items, and
// "image::URL[]" inline images. Everything else becomes a paragraph.
// All user text is escaped.
func RenderInstructions(src string) template.HTML {
	var b strings.Builder
	inList := false

	closeList := func() {
		if inList {
			b.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			closeList()
		case strings.HasPrefix(trimmed, "== "):
			closeList()
			b.WriteString("<h4>")
			b.WriteString(template.HTMLEscapeString(strings.TrimPrefix(trimmed, "== ")))
			b.WriteString("</h4>\n")
		case strings.HasPrefix(trimmed, "= "):
			closeList()
			b.WriteString("<h3>")
			b.WriteString(template.HTMLEscapeString(strings.TrimPrefix(trimmed, "= ")))
			b.WriteString("</h3>\n")
		case strings.HasPrefix(trimmed, "* "):
			if !inList {
				b.WriteString("<ul>\n")
				inList = true
			}
			b.WriteString("<li>")
			b.WriteString(template.HTMLEscapeString(strings.TrimPrefix(trimmed, "* ")))
			b.WriteString("</li>\n")
		case strings.HasPrefix(trimmed, "image::") && strings.HasSuffix(trimmed, "[]"):
			closeList()
			url := strings.TrimSuffix(strings.TrimPrefix(trimmed, "image::"), "[]")
			if url != "" {
				b.WriteString(`<img src="`)
				b.WriteString(template.HTMLEscapeString(url))
				b.WriteString(`" alt="">` + "\n")
			}
		default:
			closeList()
			b.WriteString("<p>")
			b.WriteString(template.HTMLEscapeString(trimmed))
			b.WriteString("</p>\n")
		}
	}
	closeList()

	return template.HTML(b.String())
}
