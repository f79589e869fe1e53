// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the composition root — the one place where the whole
// dependency chain is assembled:
//
//	sqlite.DB + mongodb.Mongo + TokenService + PasswordService
//	  → AuthService → AuthHandler, ProfileHandler
//	LandingService → LandingHandler
//
// Each layer only receives what it needs: the service gets repository
// interfaces (not concrete stores), the handlers get services (not
// repositories). Nothing below this package constructs its own
// dependencies, which is what lets every layer be tested with fakes.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/hackhub/internal/auth"
	"github.com/sakif/hackhub/internal/handler"
	"github.com/sakif/hackhub/internal/middleware"
	mongoRepo "github.com/sakif/hackhub/internal/repository/mongodb"
	sqliteRepo "github.com/sakif/hackhub/internal/repository/sqlite"
	"github.com/sakif/hackhub/internal/service"
)

// Config holds everything the server needs from the environment. Loaded in
// main.go; a struct (instead of loose parameters) keeps the signature
// stable as options accumulate.
type Config struct {
	Port   int
	DBPath string // SQLite identity store

	MongoURI string // profile document store
	MongoDB  string // database name within the Mongo deployment

	JWTSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	GithubClientID     string
	GithubClientSecret string
	GithubCallbackURL  string

	// NextEventAt is the countdown target for the landing page.
	NextEventAt time.Time
}

// Server owns the router and the two store connections. Both are closed
// during graceful shutdown; SQLite needs the close to flush its WAL, Mongo
// to drain its connection pool.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
	mongo  *mongoRepo.Mongo
}

// New wires the full dependency chain and returns a ready-to-start server.
// Both stores are connected (and pinged) here so a misconfigured deployment
// fails at startup, not on the first request.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("server: JWT secret must be configured")
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening identity store: %w", err)
	}

	mongo, err := mongoRepo.New(ctx, cfg.MongoURI, cfg.MongoDB, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting document store: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
		mongo:  mongo,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		mongo.Close(context.Background())
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST  /api/auth/register             → create password account
//	POST  /api/auth/login                → password login
//	GET   /auth/{provider}/login         → start OAuth flow (google, github)
//	GET   /auth/{provider}/callback      → finish OAuth flow
//	POST  /auth/logout                   → clear session cookie
//	GET   /api/session                   → who am I (never 401)
//	GET   /api/me                        → current account        [auth]
//	PATCH /api/me/profile                → merge profile update   [auth]
//	GET   /api/users/{id}                → public profile read
//	GET   /api/landing                   → full landing payload
//	GET   /api/landing/hackathons        → featured list, ?track= filter
//	GET   /api/landing/countdown         → countdown snapshot
//	GET   /api/landing/countdown/stream  → countdown over SSE
//	GET   /healthz                       → liveness probe
//
// Middleware order matters: RequestID first so the logger can include it,
// Recoverer before the handlers so a panic becomes a 500 with a log line
// instead of a dead connection.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	authService := service.NewAuthService(s.db, s.mongo.Profiles(), tokens, passwords, s.logger)
	landingService := service.NewLandingService(s.config.NextEventAt)

	// Providers are optional — an unconfigured one simply is not
	// registered, and its routes answer 404.
	var providers []*auth.Provider
	if s.config.GoogleClientID != "" {
		providers = append(providers, auth.NewGoogleProvider(
			s.config.GoogleClientID, s.config.GoogleClientSecret, s.config.GoogleCallbackURL))
	} else {
		s.logger.Warn("Google OAuth not configured — google login disabled")
	}
	if s.config.GithubClientID != "" {
		providers = append(providers, auth.NewGithubProvider(
			s.config.GithubClientID, s.config.GithubClientSecret, s.config.GithubCallbackURL))
	} else {
		s.logger.Warn("GitHub OAuth not configured — github login disabled")
	}

	authHandler := handler.NewAuthHandler(authService, providers, s.logger)
	profileHandler := handler.NewProfileHandler(authService, s.logger)
	landingHandler := handler.NewLandingHandler(landingService, s.logger)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Browser-facing OAuth flow lives outside /api — these are redirects,
	// not JSON endpoints.
	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/{provider}/login", authHandler.HandleProviderLogin)
		r.Get("/{provider}/callback", authHandler.HandleProviderCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		r.With(auth.OptionalAuth(tokens)).Get("/session", authHandler.HandleSession)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Patch("/me/profile", profileHandler.HandleUpdateProfile)
		})

		r.Get("/users/{id}", profileHandler.HandleGetUser)

		r.Get("/landing", landingHandler.HandleLanding)
		r.Get("/landing/hackathons", landingHandler.HandleHackathons)
		r.Get("/landing/countdown", landingHandler.HandleCountdown)
		r.Get("/landing/countdown/stream", landingHandler.HandleCountdownStream)
	})

	return nil
}

// Router exposes the configured route tree, mainly for tests that want to
// drive the server with httptest without binding a port.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30
// seconds to finish, close both stores.
//
// WriteTimeout is generous because the countdown SSE stream holds its
// response open; 15s would cut every stream short.
func (s *Server) Start() error {
	defer s.db.Close()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mongo.Close(ctx); err != nil {
			s.logger.Error("closing document store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("identityStore", s.config.DBPath),
			slog.String("documentStore", s.config.MongoDB),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
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
