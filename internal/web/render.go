// AngelaMos | 2026
// render.go

package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/carterperez-dev/surveys/internal/core"
	"github.com/carterperez-dev/surveys/internal/middleware"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageNames = []string{
	"login",
	"panel",
	"register",
	"survey_new",
	"questions",
	"respond",
	"results",
}

// Page is the value every template receives.
type Page struct {
	AppName string
	Title   string
	User    *core.Identity
	Flashes []Flash
	Data    any
}

type Renderer struct {
	pages   map[string]*template.Template
	flasher *Flasher
	appName string
	logger  *slog.Logger
}

func NewRenderer(appName string, flasher *Flasher, logger *slog.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"ago": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return humanize.Time(t)
		},
		"mean": func(v float64) string {
			return fmt.Sprintf("%.2f", v)
		},
		"json": func(v any) (string, error) {
			b, err := json.Marshal(v)
			return string(b), err
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("layout.html").Funcs(funcs).ParseFS(
			templatesFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{
		pages:   pages,
		flasher: flasher,
		appName: appName,
		logger:  logger,
	}, nil
}

// Render writes a full page. Pending flash cookies are consumed and shown
// together with any inline messages.
func (rd *Renderer) Render(
	w http.ResponseWriter,
	r *http.Request,
	name, title string,
	data any,
	inline ...Flash,
) {
	tmpl, ok := rd.pages[name]
	if !ok {
		rd.Error(w, r, fmt.Errorf("render: unknown page %q", name))
		return
	}

	page := Page{
		AppName: rd.appName,
		Title:   title,
		User:    middleware.GetIdentity(r.Context()),
		Flashes: append(rd.flasher.Pop(w, r), inline...),
		Data:    data,
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		rd.Error(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort response write
	_, _ = buf.WriteTo(w)
}

func (rd *Renderer) FlashRedirect(
	w http.ResponseWriter,
	r *http.Request,
	url, kind, message string,
) {
	rd.flasher.Set(w, kind, message)
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// Error logs an unexpected failure and answers with a bare 500 page.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	core.SetSpanError(r.Context(), err)
	rd.logger.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", chimw.GetReqID(r.Context()),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
