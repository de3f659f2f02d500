package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/restaurant-directory/internal/model"
	"github.com/sakif/restaurant-directory/internal/session"
	"github.com/sakif/restaurant-directory/web"
)

type fixedSession struct {
	s   *session.Session
	err error
}

func (f fixedSession) Load(*http.Request) (*session.Session, error) { return f.s, f.err }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewView_ParsesEveryPage(t *testing.T) {
	v, err := NewView(web.Templates(), nil, discardLogger())
	require.NoError(t, err)
	assert.Len(t, v.pages, len(pages))
}

func TestNewView_MissingPage(t *testing.T) {
	fsys := fstest.MapFS{
		"base.html": {Data: []byte(`{{define "base"}}{{template "content" .}}{{end}}`)},
	}
	_, err := NewView(fsys, nil, discardLogger())
	assert.Error(t, err)
}

func TestRender_NavShowsSessionUser(t *testing.T) {
	signedIn := fixedSession{s: &session.Session{IsAuth: true, User: &model.User{FirstName: "Ada"}}}
	v, err := NewView(web.Templates(), signedIn, discardLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	v.render(rr, httptest.NewRequest(http.MethodGet, "/about", nil), http.StatusOK, pageAbout, viewData{Title: "About Us"})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "Signed in as Ada")
}

func TestRender_SessionFailureOnlyCostsTheGreeting(t *testing.T) {
	v, err := NewView(web.Templates(), fixedSession{err: errors.New("store down")}, discardLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	v.render(rr, httptest.NewRequest(http.MethodGet, "/login", nil), http.StatusOK, pageLogin, viewData{
		Title:  "Login",
		Errors: []string{"Empty Fields"},
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "<li>Empty Fields</li>")
	assert.NotContains(t, rr.Body.String(), "Signed in")
}

func TestRender_UnknownPage(t *testing.T) {
	v, err := NewView(web.Templates(), nil, discardLogger())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	v.render(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, "nope", viewData{})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
