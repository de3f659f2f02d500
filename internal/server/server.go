// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer. It connects storage, services,
// handlers, middleware, and routes, and decides:
// - Which storage backend serves the repositories and sessions
// - Which URL patterns map to which handler functions
// - Which routes sit behind a session gate
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// main.go builds a Config from the environment, then:
//
//	Server.New() creates: backend (sqlite or mongodb)
//	                      → AuthService, RestaurantService
//	                      → session.Manager → View → handlers → routes
//
// This is the "composition root" pattern: all dependencies are wired in one
// place rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/restaurant-directory/internal/auth"
	"github.com/sakif/restaurant-directory/internal/handler"
	"github.com/sakif/restaurant-directory/internal/middleware"
	"github.com/sakif/restaurant-directory/internal/repository"
	mongoRepo "github.com/sakif/restaurant-directory/internal/repository/mongodb"
	sqliteRepo "github.com/sakif/restaurant-directory/internal/repository/sqlite"
	"github.com/sakif/restaurant-directory/internal/service"
	"github.com/sakif/restaurant-directory/internal/session"
	"github.com/sakif/restaurant-directory/web"
)

// Session backends selectable with Config.SessionBackend.
const (
	SessionsInMemory = "memory" // process-local map, lost on restart
	SessionsInStore  = "store"  // the same database as the restaurants
)

// LoginPath is where both session gates send rejected requests.
const LoginPath = "/login"

// Config holds server configuration.
type Config struct {
	Port int

	// Storage. MongoURI selects MongoDB when set; otherwise DBPath is opened
	// with SQLite (":memory:" works for tests).
	DBPath        string
	MongoURI      string
	MongoDatabase string

	// SessionBackend is SessionsInMemory or SessionsInStore (the default).
	SessionBackend string
	// SecureCookies marks the session cookie HTTPS-only.
	SecureCookies bool

	JWTSecret string
	// TokenTTL of 0 issues tokens with no expiry.
	TokenTTL time.Duration
	// BcryptCost of 0 means auth.DefaultCost.
	BcryptCost int

	// Templates overrides the embedded page templates. Nil means web.Templates().
	Templates fs.FS
}

// backend is one storage choice: the repositories, the session store, and
// how to release it.
type backend struct {
	name        string
	restaurants repository.RestaurantRepository
	users       repository.UserRepository
	sessions    session.Store
	close       func() error
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the storage connection. Start closes it during graceful
// shutdown; callers that never Start (tests) call Close.
type Server struct {
	router  *chi.Mux
	config  Config
	logger  *slog.Logger
	backend *backend
}

// New creates a Server: opens storage, builds the services, and registers
// routes.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
	}
	passwords, err := auth.NewHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("creating password hasher: %w", err)
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		backend: b,
	}

	if err := s.setupRoutes(tokens, passwords); err != nil {
		b.close() // Clean up storage if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// openBackend connects to MongoDB when a URI is configured, SQLite otherwise.
func openBackend(ctx context.Context, cfg Config) (*backend, error) {
	var b *backend

	if cfg.MongoURI != "" {
		db, err := mongoRepo.New(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, fmt.Errorf("opening mongodb: %w", err)
		}
		b = &backend{
			name:        "mongodb",
			restaurants: db,
			users:       db.Users(),
			sessions:    db.Sessions(),
			close:       db.Close,
		}
	} else {
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		b = &backend{
			name:        "sqlite",
			restaurants: db,
			users:       db.Users(),
			sessions:    db.Sessions(),
			close:       db.Close,
		}
	}

	switch cfg.SessionBackend {
	case "", SessionsInStore:
	case SessionsInMemory:
		b.sessions = session.NewMemoryStore()
	default:
		b.close()
		return nil, fmt.Errorf("unknown session backend %q (want %q or %q)",
			cfg.SessionBackend, SessionsInMemory, SessionsInStore)
	}

	return b, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET       /                      → first restaurants          [token gate]
// GET       /about                 → about page
// GET/POST  /register              → create account
// GET/POST  /login                 → sign in
// POST      /logout                → sign out                   [session gate]
// GET       /api/restaurants       → search form
// GET       /api/restaurants/find  → paginated, filtered listing
// GET/POST  /getRestaurants        → lookup by id
// GET/POST  /addRestaurants        → create                     [session gate]
// GET       /updateResturant/{id}  → edit form
// POST      /updateResturant[/{id}]→ apply update
// GET       /deleteResturant/{id}  → delete
// GET       /findResturant/{id}    → detail
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID must run before Logger so the log line carries the id
// 2. RealIP extracts the client IP from proxy headers
// 3. Recoverer catches panics and returns 500 instead of crashing
func (s *Server) setupRoutes(tokens *auth.TokenService, passwords *auth.Hasher) error {
	// === Global Middleware ===
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	// === Services ===
	// The services only see repository interfaces, never the concrete backend.
	authService := service.NewAuthService(s.backend.users, tokens, passwords, s.logger)
	restaurantService := service.NewRestaurantService(s.backend.restaurants, s.logger)

	// === Sessions and views ===
	sessions := session.NewManager(s.backend.sessions, s.config.SecureCookies)

	templates := s.config.Templates
	if templates == nil {
		templates = web.Templates()
	}
	view, err := handler.NewView(templates, sessions, s.logger)
	if err != nil {
		return fmt.Errorf("parsing templates: %w", err)
	}

	authHandler := handler.NewAuthHandler(authService, sessions, view, s.logger)
	restaurantHandler := handler.NewRestaurantHandler(restaurantService, authService, view, s.logger)

	requireSession := auth.RequireSession(sessions, LoginPath)
	requireToken := auth.RequireToken(sessions, tokens, LoginPath)

	// === Public routes ===
	s.router.Get("/about", restaurantHandler.HandleAbout)

	s.router.Get("/register", authHandler.HandleShowRegister)
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Get(LoginPath, authHandler.HandleShowLogin)
	s.router.Post(LoginPath, authHandler.HandleLogin)

	s.router.Route("/api/restaurants", func(r chi.Router) {
		r.Get("/", restaurantHandler.HandleSearchPage)
		r.Get("/find", restaurantHandler.HandleFind)
	})

	s.router.Get("/getRestaurants", restaurantHandler.HandleShowLookup)
	s.router.Post("/getRestaurants", restaurantHandler.HandleLookup)

	s.router.Get("/updateResturant/{id}", restaurantHandler.HandleShowUpdate)
	s.router.Post("/updateResturant", restaurantHandler.HandleUpdate)
	s.router.Post("/updateResturant/{id}", restaurantHandler.HandleUpdate)
	s.router.Get("/deleteResturant/{id}", restaurantHandler.HandleDelete)
	s.router.Get("/findResturant/{id}", restaurantHandler.HandleDetail)

	// === Gated routes ===
	// A rejected request is redirected before the handler runs at all.
	s.router.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/addRestaurants", restaurantHandler.HandleShowAdd)
		r.Post("/addRestaurants", restaurantHandler.HandleAdd)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.With(requireToken).Get("/", restaurantHandler.HandleIndex)

	s.router.NotFound(restaurantHandler.HandleNotFound)

	return nil
}

// Handler exposes the router, so tests can drive the whole stack with
// httptest without opening a port.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the storage backend.
func (s *Server) Close() error {
	return s.backend.close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the storage backend (flushes SQLite's WAL, or disconnects from MongoDB)
func (s *Server) Start() error {
	defer func() {
		if err := s.Close(); err != nil {
			s.logger.Error("closing storage", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("backend", s.backend.name),
			slog.String("sessions", sessionBackendName(s.config.SessionBackend)),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

func sessionBackendName(name string) string {
	if name == "" {
		return SessionsInStore
	}
	return name
}
