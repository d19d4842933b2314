// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer: it connects the store, services,
// handlers, middleware and routes. It decides:
//   - Which backend holds the data (SQLite or MongoDB)
//   - Which URL patterns map to which handler functions
//   - What middleware runs on which routes
//   - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// main.go loads config.Config and builds the logger, then:
//
//	server.New() creates: store → services → handlers → routes
//
// This is the "composition root" pattern: every dependency is wired in one
// place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sakif/bible-study/internal/assistant/openai"
	"github.com/sakif/bible-study/internal/auth"
	"github.com/sakif/bible-study/internal/config"
	"github.com/sakif/bible-study/internal/handler"
	"github.com/sakif/bible-study/internal/middleware"
	"github.com/sakif/bible-study/internal/repository"
	mongoRepo "github.com/sakif/bible-study/internal/repository/mongo"
	sqliteRepo "github.com/sakif/bible-study/internal/repository/sqlite"
	"github.com/sakif/bible-study/internal/service"
)

const (
	// storeConnectTimeout bounds the initial MongoDB connect and ping.
	storeConnectTimeout = 10 * time.Second
	shutdownTimeout     = 30 * time.Second
)

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the store. Start closes it after the HTTP server has
// drained, so in-flight requests never see a closed database.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	store  repository.Store
}

// New opens the configured store and wires every layer on top of it.
//
// Each layer only receives what it needs:
//   - Services get repository interfaces (not the concrete backend)
//   - Handlers get services (not repositories)
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, err := openStore(cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		store:  store,
	}

	if err := s.setupRoutes(); err != nil {
		store.Close() // Clean up the store if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// openStore picks the backend named by cfg.Driver.
func openStore(cfg config.DatabaseConfig, logger *slog.Logger) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		ctx, cancel := context.WithTimeout(context.Background(), storeConnectTimeout)
		defer cancel()
		store, err := mongoRepo.New(ctx, cfg.MongoURL, cfg.Name)
		if err != nil {
			return nil, fmt.Errorf("opening mongo store: %w", err)
		}
		logger.Info("store opened", slog.String("driver", cfg.Driver), slog.String("database", cfg.Name))
		return store, nil

	default:
		if cfg.Path != ":memory:" {
			// 0755 = owner can read/write/execute, others can read/execute.
			if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		db, err := sqliteRepo.New(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		logger.Info("store opened", slog.String("driver", config.DriverSQLite), slog.String("path", cfg.Path))
		return db, nil
	}
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /                                → API banner
// GET    /health                          → liveness probe
// GET    /metrics                         → Prometheus metrics
// POST   /api/auth/register               → create account
// POST   /api/auth/login                  → issue bearer token
// GET    /api/auth/me                     → current user            [auth]
// GET    /api/bible/books                 → the 66 books
// GET    /api/notes, POST /api/notes      → list / create notes     [auth]
// PUT    /api/notes/{id}, DELETE ...      → update / delete note    [auth]
// GET    /api/highlights, POST, DELETE    → verse highlights        [auth]
// GET    /api/bookmarks, POST, DELETE     → verse bookmarks         [auth]
// GET    /api/friends                     → accepted friends        [auth]
// GET    /api/friends/requests            → pending incoming        [auth]
// POST   /api/friends/request             → send request by email   [auth]
// GET    /api/reminders, POST             → list / create reminders [auth]
// POST   /api/reminders/{id}/complete     → mark done               [auth]
// GET    /api/chats, POST                 → list / open chats       [auth]
// GET    /api/chats/{id}/messages, POST   → read / send messages    [auth]
// POST   /api/chatbot/ask                 → ask the assistant       [auth]
// POST   /api/chatbot/explain-verse       → explain a passage       [auth]
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns a unique ID to each request (for tracing)
// 2. RealIP: extracts real client IP from proxy headers
// 3. Logger: logs each request with timing info and the request ID
// 4. Metrics: counts requests per route pattern
// 5. Recoverer: catches panics and returns 500 instead of crashing
// 6. CORS: answers preflight requests before they reach a handler
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(middleware.Metrics())
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.Server.CORSOrigins))

	// === Services ===
	tokens, err := auth.NewTokenService(s.config.Auth.SecretKey, s.config.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	authService := service.NewAuthService(s.store.Users(), tokens, auth.NewPasswordService(), s.logger)

	completer := openai.New(openai.Config{
		APIKey:  s.config.Assistant.APIKey,
		BaseURL: s.config.Assistant.BaseURL,
		Model:   s.config.Assistant.Model,
		Timeout: s.config.Assistant.Timeout,
	}, s.logger)
	if s.config.Assistant.APIKey == "" {
		s.logger.Warn("OPENAI_API_KEY not set; the chat assistant will answer with an apology")
	}

	// === Handlers ===
	healthHandler := handler.NewHealthHandler()
	authHandler := handler.NewAuthHandler(authService, s.logger)
	noteHandler := handler.NewNoteHandler(service.NewNoteService(s.store.Notes(), s.logger), s.logger)
	highlightHandler := handler.NewHighlightHandler(service.NewHighlightService(s.store.Highlights(), s.logger), s.logger)
	bookmarkHandler := handler.NewBookmarkHandler(service.NewBookmarkService(s.store.Bookmarks(), s.logger), s.logger)
	friendHandler := handler.NewFriendHandler(service.NewFriendService(s.store.Users(), s.store.Friends(), s.logger), s.logger)
	reminderHandler := handler.NewReminderHandler(service.NewReminderService(s.store.Reminders(), s.logger), s.logger)
	chatHandler := handler.NewChatHandler(service.NewChatService(s.store.Chats(), s.logger), s.logger)
	chatbotHandler := handler.NewChatbotHandler(service.NewChatbotService(completer, s.logger), s.logger)

	// === Public Routes ===
	s.router.Get("/", healthHandler.HandleRoot)
	s.router.Get("/health", healthHandler.HandleHealth)
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Get("/bible/books", healthHandler.HandleBooks)

		// === Protected Routes ===
		// RequireAuth resolves the bearer token to a user, or answers 401.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(authService))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Route("/notes", func(r chi.Router) {
				r.Get("/", noteHandler.HandleList)
				r.Post("/", noteHandler.HandleCreate)
				r.Put("/{id}", noteHandler.HandleUpdate)
				r.Delete("/{id}", noteHandler.HandleDelete)
			})

			r.Route("/highlights", func(r chi.Router) {
				r.Get("/", highlightHandler.HandleList)
				r.Post("/", highlightHandler.HandleCreate)
				r.Delete("/{id}", highlightHandler.HandleDelete)
			})

			r.Route("/bookmarks", func(r chi.Router) {
				r.Get("/", bookmarkHandler.HandleList)
				r.Post("/", bookmarkHandler.HandleCreate)
				r.Delete("/{id}", bookmarkHandler.HandleDelete)
			})

			r.Route("/friends", func(r chi.Router) {
				r.Get("/", friendHandler.HandleList)
				r.Get("/requests", friendHandler.HandleRequests)
				r.Post("/request", friendHandler.HandleSendRequest)
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Get("/", reminderHandler.HandleList)
				r.Post("/", reminderHandler.HandleCreate)
				r.Post("/{id}/complete", reminderHandler.HandleComplete)
			})

			r.Route("/chats", func(r chi.Router) {
				r.Get("/", chatHandler.HandleList)
				r.Post("/", chatHandler.HandleCreate)
				r.Get("/{id}/messages", chatHandler.HandleMessages)
				r.Post("/{id}/messages", chatHandler.HandleSend)
			})

			r.Route("/chatbot", func(r chi.Router) {
				r.Post("/ask", chatbotHandler.HandleAsk)
				r.Post("/explain-verse", chatbotHandler.HandleExplainVerse)
			})
		})
	})

	return nil
}

// Handler exposes the router, for tests and for embedding in another server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the store. Start calls it on shutdown; callers that never
// Start (tests) call it themselves.
func (s *Server) Close() error {
	return s.store.Close()
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the store (flushes the SQLite WAL, or disconnects from MongoDB)
func (s *Server) Start() error {
	defer func() {
		if err := s.Close(); err != nil {
			s.logger.Error("closing store", slog.String("error", err.Error()))
		}
	}()

	// The write timeout leaves room for a slow completion call.
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Server.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: s.config.Assistant.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Server.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Server.Port)),
			slog.String("driver", s.config.Database.Driver),
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

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
