package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"signin", "landing", "create", "dashboard"}

type pages struct {
	byName map[string]*template.Template
}

func mustParsePages() *pages {
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		p.byName[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html"))
	}
	return p
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := h.pages.byName[name]
	if !ok {
		h.logger.Error("unknown page", "page", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Render into a buffer so a template error never leaves half a page behind.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("failed to render page", "page", name, "error", fmt.Errorf("execute template: %w", err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to write page", "page", name, "error", err)
	}
}
