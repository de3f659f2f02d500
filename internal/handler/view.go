// Package handler contains the HTTP handlers of the restaurant directory.
//
// WHAT IS A HANDLER?
// In Go, an HTTP handler is anything that implements the http.Handler interface:
//
//	type Handler interface {
//	    ServeHTTP(ResponseWriter, *Request)
//	}
//
// Chi's router accepts plain http.HandlerFunc values, so every handler here
// is a method with the (w, r) signature.
//
// HANDLER RESPONSIBILITIES:
// 1. Parse the incoming HTTP request (form fields, query params, URL params)
// 2. Call the service layer
// 3. Map the outcome to a response: a rendered page, a redirect, or JSON
//
// Handlers are the single place where errors become responses. Services
// return apperror values; handlers decide what the user sees.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/pagination"
	"github.com/sakif/restaurant-directory/internal/session"
)

// Page names. Each is a file "<name>.html" defining a "content" block that
// base.html wraps.
const (
	pageIndex      = "index"
	pageAbout      = "about"
	pageRegister   = "register"
	pageLogin      = "login"
	pageSearch     = "test"
	pageLookup     = "getRestaurants"
	pageAdd        = "addRestaurant"
	pageUpdate     = "updateRestaurant"
	pageRestaurant = "restaurant"
)

var pages = []string{
	pageIndex, pageAbout, pageRegister, pageLogin, pageSearch,
	pageLookup, pageAdd, pageUpdate, pageRestaurant,
}

// viewData is what every page template receives. Pages read only the
// fields they need; the rest stay zero.
type viewData struct {
	Title       string
	User        *model.User // the signed-in user, for the nav bar
	Errors      []string    // form errors, listed above the content
	Message     string      // one-line status ("Restaurant added successfully!")
	Restaurant  *model.Restaurant
	Restaurants []model.Restaurant
	Results     *pagination.Page[model.Restaurant]
}

// SessionLoader is the part of session.Manager the views need.
type SessionLoader interface {
	Load(r *http.Request) (*session.Session, error)
}

// View holds one parsed template set per page.
//
// TEMPLATE COMPOSITION:
// Every page is parsed together with base.html, so base can call
// {{template "content" .}} and each page fills it in. Parsing a separate set
// per page keeps the "content" definitions from overwriting one another.
// All sets are parsed once at startup and reused for every request.
type View struct {
	pages    map[string]*template.Template
	sessions SessionLoader
	logger   *slog.Logger
}

var funcs = template.FuncMap{
	// date renders a grade date the way the date input expects it.
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(dateLayout)
	},
	"deref": func(p *int) int {
		if p == nil {
			return 0
		}
		return *p
	},
}

// NewView parses every page from fsys (see web.Templates).
func NewView(fsys fs.FS, sessions SessionLoader, logger *slog.Logger) (*View, error) {
	v := &View{
		pages:    make(map[string]*template.Template, len(pages)),
		sessions: sessions,
		logger:   logger,
	}

	for _, name := range pages {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, "base.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing page %s: %w", name, err)
		}
		v.pages[name] = tmpl
	}

	return v, nil
}

// render executes a page into a buffer first, so a template error still
// produces a clean 500 instead of half a page.
func (v *View) render(w http.ResponseWriter, r *http.Request, status int, page string, data viewData) {
	tmpl, ok := v.pages[page]
	if !ok {
		v.logger.Error("unknown page", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data.User == nil {
		data.User = v.sessionUser(r)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		v.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// sessionUser returns the signed-in user for the nav bar, or nil.
// A session store failure only costs the greeting, so it's logged and ignored.
func (v *View) sessionUser(r *http.Request) *model.User {
	if v.sessions == nil {
		return nil
	}
	s, err := v.sessions.Load(r)
	if err != nil {
		v.logger.Warn("loading session for view", slog.String("error", err.Error()))
		return nil
	}
	if !s.IsAuth {
		return nil
	}
	return s.User
}
