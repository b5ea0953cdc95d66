package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"net/http"
	"strings"

	"mmpstats/internal/formatter"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names; each maps to templates/<name>.html rendered inside layout.html.
var pageNames = []string{"timeline", "other", "hall", "participants", "participant", "error"}

type pages struct {
	byName map[string]*template.Template
}

var funcs = template.FuncMap{
	"count": formatter.Count,
	"join":  strings.Join,
	"asset": func(url string) string { return "/" + strings.TrimPrefix(url, "/") },
}

func parsePages() (*pages, error) {
	p := &pages{byName: make(map[string]*template.Template, len(pageNames))}

	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}

		p.byName[name] = t
	}

	return p, nil
}

// view is the data handed to every page template.
type view struct {
	Data  any
	Title string
	Nav   string
}

func (s *Server) renderHTML(w http.ResponseWriter, r *http.Request, status int, page string, v view) {
	t, ok := s.pages.byName[page]
	if !ok {
		s.logger.Error("unknown page", "page", page, "request_id", RequestID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		s.logger.Error("template failed", "page", page, "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	if r.Method != http.MethodHead {
		_, _ = buf.WriteTo(w)
	}
}

func (s *Server) renderJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("json encoding failed", "error", err, "request_id", RequestID(r.Context()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

type errorView struct {
	Message string
	Status  int
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, asJSON bool, status int, message string) {
	if asJSON {
		s.renderJSON(w, r, status, errorBody{Error: message})

		return
	}

	s.renderHTML(w, r, status, "error", view{
		Title: http.StatusText(status),
		Data:  errorView{Message: message, Status: status},
	})
}
