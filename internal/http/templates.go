package http

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"investorportal/internal/log"
)

// Page templates, each rendered inside templates/layout.html.
const (
	tmplLanding     = "landing.html"
	tmplDashboard   = "dashboard.html"
	tmplCommitments = "commitments.html"
	tmplError       = "error.html"
)

var pageTemplates = []string{tmplLanding, tmplDashboard, tmplCommitments, tmplError}

func (s *Server) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"digit": s.formatter.Digit,
		"date":  s.formatter.Date,
	}
}

// parseTemplates builds one template set per page so that every page can
// define its own "content" block.
func parseTemplates(fsys fs.FS, funcs template.FuncMap) (map[string]*template.Template, error) {
	out := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		out[name] = t
	}
	return out, nil
}

// render executes the page into a buffer first so a failing template never
// leaves a half-written page behind.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := s.templates[name]
	if !ok {
		s.logger.ErrorContext(r.Context(), "Template not found",
			log.FieldTemplate, name,
			log.FieldOperation, log.OpRender)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.events.LogError(r.Context(), "Template execution failed", err, log.ComponentTemplate, log.OpRender,
			log.NewFields().WithTemplate(name))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
