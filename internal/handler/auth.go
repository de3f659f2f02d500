package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/restaurant-directory/internal/apperror"
	"github.com/sakif/restaurant-directory/internal/service"
	"github.com/sakif/restaurant-directory/internal/session"
)

// AuthHandler manages registration, login, and logout.
//
// HANDLER RESPONSIBILITIES:
//   - HandleShowRegister / HandleRegister → create an account
//   - HandleShowLogin / HandleLogin       → check credentials, establish the session
//   - HandleLogout                        → destroy the session
//
// DEPENDENCY CHAIN:
//   - auth     *service.AuthService → registration and credential checks
//   - sessions *session.Manager     → the "sid" cookie and its stored record
//   - view     *View                → form rendering
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Manager
	view     *View
	logger   *slog.Logger
}

// NewAuthHandler creates an AuthHandler. All dependencies are injected here.
func NewAuthHandler(
	auth *service.AuthService,
	sessions *session.Manager,
	view *View,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		sessions: sessions,
		view:     view,
		logger:   logger,
	}
}

// HandleShowRegister renders the empty register form.
//
// HTTP: GET /register
func (h *AuthHandler) HandleShowRegister(w http.ResponseWriter, r *http.Request) {
	h.view.render(w, r, http.StatusOK, pageRegister, viewData{Title: "Register"})
}

// HandleRegister creates an account and sends the browser on to login.
//
// HTTP: POST /register
//
// A rejected form is re-rendered with every message the service produced.
// Storage failures are logged and become a 500.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.render(w, r, http.StatusBadRequest, pageRegister, viewData{
			Title:  "Register",
			Errors: []string{"Invalid form submission"},
		})
		return
	}

	_, err := h.auth.Register(r.Context(), service.RegisterInput{
		FirstName: r.PostForm.Get("firstName"),
		LastName:  r.PostForm.Get("lastName"),
		Email:     r.PostForm.Get("email"),
		Password:  r.PostForm.Get("password"),
	})
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) {
			h.view.render(w, r, http.StatusOK, pageRegister, viewData{
				Title:  "Register",
				Errors: apperror.Messages(err),
			})
			return
		}
		serverError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleShowLogin renders the empty login form.
//
// HTTP: GET /login
func (h *AuthHandler) HandleShowLogin(w http.ResponseWriter, r *http.Request) {
	h.view.render(w, r, http.StatusOK, pageLogin, viewData{Title: "Login"})
}

// HandleLogin checks credentials and establishes the session.
//
// HTTP: POST /login
//
// FLOW:
//  1. Service checks the form and the credentials
//  2. Renew the session so the pre-login id is discarded
//  3. Store isAuth, the user, and the token; set the cookie
//  4. Redirect home, which is behind the token gate
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.view.render(w, r, http.StatusBadRequest, pageLogin, viewData{
			Title:  "Login",
			Errors: []string{"Invalid form submission"},
		})
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	})
	if err != nil {
		if errors.Is(err, apperror.ErrValidation) || errors.Is(err, apperror.ErrUnauthorized) {
			h.view.render(w, r, http.StatusOK, pageLogin, viewData{
				Title:  "Login",
				Errors: apperror.Messages(err),
			})
			return
		}
		serverError(w, r, h.logger, err)
		return
	}

	sess, err := h.sessions.Renew(r)
	if err != nil {
		serverError(w, r, h.logger, err)
		return
	}
	sess.IsAuth = true
	sess.User = result.User
	sess.Token = result.Token

	if err := h.sessions.Save(w, r, sess); err != nil {
		serverError(w, r, h.logger, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleLogout destroys the session and returns to the login page.
//
// HTTP: POST /logout
//
// A store failure while deleting is logged but the cookie is still expired
// and the redirect still happens: the user asked to be logged out.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(w, r); err != nil {
		h.logger.Error("logout: destroying session", slog.String("error", err.Error()))
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
