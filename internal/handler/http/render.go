package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"dashboard",
	"employees",
	"employee_form",
	"employee_detail",
	"employee_delete",
	"attendance",
	"error",
}

// Renderer executes the console pages inside the shared layout.
type Renderer struct {
	appName string
	pages   map[string]*template.Template
}

func NewRenderer(appName string) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).ParseFS(templateFS,
			"templates/layout.html",
			"templates/filters.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{appName: appName, pages: pages}, nil
}

type layoutData struct {
	AppName string
	Title   string
	Nav     string
	Notice  *notice.Notice
	Data    any
}

// Page describes one render: which template, the nav entry and the page model.
type Page struct {
	Name   string
	Title  string
	Nav    string
	Notice *notice.Notice
	Data   any
}

// Render writes p with status. A notice already moved into the request
// context is shown unless p carries its own.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, p Page) {
	tmpl, ok := rd.pages[p.Name]
	if !ok {
		slog.Error("unknown page template", "page", p.Name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	n := p.Notice
	if n == nil {
		if ctxNotice, found := notice.FromContext(r.Context()); found {
			n = &ctxNotice
		}
	}

	var buf bytes.Buffer
	err := tmpl.ExecuteTemplate(&buf, "layout", layoutData{
		AppName: rd.appName,
		Title:   p.Title,
		Nav:     p.Nav,
		Notice:  n,
		Data:    p.Data,
	})
	if err != nil {
		slog.Error("failed to render page", "page", p.Name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

type errorPage struct {
	Heading string
	Message string
}

func (rd *Renderer) RenderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rd.Render(w, r, status, Page{
		Name:  "error",
		Title: http.StatusText(status),
		Data:  errorPage{Heading: http.StatusText(status), Message: message},
	})
}
