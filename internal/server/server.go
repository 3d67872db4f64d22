// Package server is the composition root: it wires a repository backend,
// the store, the effects layer and the HTTP facade together, and owns
// startup and graceful shutdown.
//
// Dependency chain:
//
//	cmd/server reads config → server.New builds
//	    repositories (memory or sqlite)
//	    → store (single sequential reducer loop)
//	    → effects (subscribed before any intent can be dispatched)
//	    → handlers (dispatch intents, read views)
//
// Nothing in the chain is ambient; every component receives its
// dependencies explicitly.
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

	"github.com/sakif/orderdesk/internal/effects"
	"github.com/sakif/orderdesk/internal/handler"
	"github.com/sakif/orderdesk/internal/middleware"
	"github.com/sakif/orderdesk/internal/repository"
	"github.com/sakif/orderdesk/internal/repository/memory"
	sqliteRepo "github.com/sakif/orderdesk/internal/repository/sqlite"
	"github.com/sakif/orderdesk/internal/store"
)

// Backend names accepted in Config.Backend.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds server configuration.
type Config struct {
	Port    int
	Backend string        // BackendMemory (default) or BackendSQLite
	DBPath  string        // sqlite only; ":memory:" when empty
	Latency time.Duration // memory backend only; simulated call latency
}

// Server bundles the running core and its HTTP surface.
type Server struct {
	router  *chi.Mux
	config  Config
	logger  *slog.Logger
	store   *store.Store
	effects *effects.Effects
	stop    context.CancelFunc
	db      *sqliteRepo.DB // nil for the memory backend
}

// New assembles the whole application. The store's reducer loop and the
// effect families are running by the time New returns, so dispatching may
// begin immediately.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	var (
		users  repository.UserRepository
		orders repository.OrderRepository
		db     *sqliteRepo.DB
	)

	switch cfg.Backend {
	case BackendSQLite:
		dbPath := cfg.DBPath
		if dbPath == "" {
			dbPath = ":memory:"
		}
		var err error
		db, err = sqliteRepo.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}

		userDB := sqliteRepo.NewUserDB(db)
		orderDB := sqliteRepo.NewOrderDB(db)
		if err := userDB.Seed(memory.SeedUsers()); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding users: %w", err)
		}
		if err := orderDB.Seed(memory.SeedOrders()); err != nil {
			db.Close()
			return nil, fmt.Errorf("seeding orders: %w", err)
		}
		users, orders = userDB, orderDB

	case BackendMemory, "":
		users = memory.NewUserRepo(cfg.Latency)
		orders = memory.NewOrderRepo(cfg.Latency)

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	st := store.New(logger)
	st.Start()

	ctx, cancel := context.WithCancel(context.Background())
	eff := effects.New(st, users, orders, effects.LogNotifier{Logger: logger}, logger)
	eff.Run(ctx)

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		store:   st,
		effects: eff,
		stop:    cancel,
		db:      db,
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	userHandler := handler.NewUserHandler(s.store, s.logger)
	orderHandler := handler.NewOrderHandler(s.store, s.logger)
	selectionHandler := handler.NewSelectionHandler(s.store, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/users", userHandler.HandleList)
		r.Post("/users/load", userHandler.HandleLoad)
		r.Post("/users", userHandler.HandleCreate)
		r.Put("/users/{id}", userHandler.HandleUpdate)
		r.Delete("/users/{id}", userHandler.HandleDelete)

		r.Get("/orders", orderHandler.HandleList)
		r.Post("/orders/load", orderHandler.HandleLoad)
		r.Post("/orders", orderHandler.HandleCreate)
		r.Put("/orders/{id}", orderHandler.HandleUpdate)
		r.Delete("/orders/{id}", orderHandler.HandleDelete)

		r.Get("/selection", selectionHandler.HandleGet)
		r.Put("/selection", selectionHandler.HandleSet)
	})
}

// Router exposes the HTTP handler, mostly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Shutdown stops the effects layer, the store, and the database, in that
// order: effects first so no new intents are produced, then the store loop,
// then the storage the workers were talking to.
func (s *Server) Shutdown() {
	s.stop()
	s.effects.Wait()
	s.store.Stop()
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Error("closing database", slog.String("error", err.Error()))
		}
	}
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts everything
// down gracefully.
func (s *Server) Start() error {
	defer s.Shutdown()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.Int("port", s.config.Port), slog.String("backend", s.backendName()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		s.logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

func (s *Server) backendName() string {
	if s.config.Backend == "" {
		return BackendMemory
	}
	return s.config.Backend
}
