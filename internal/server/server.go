// Package server wires the diary together: it opens the database, loads the
// Store, builds the handlers and owns the HTTP server's lifecycle.
//
// DEPENDENCY INJECTION FLOW:
//
//	config.Config → sqlite.DB → service.Store → handler.*Handler → chi routes
//
// Everything is assembled here (the composition root) so that main.go only
// reads configuration and calls Start.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/diary/internal/config"
	"github.com/sakif/diary/internal/handler"
	"github.com/sakif/diary/internal/middleware"
	sqliteRepo "github.com/sakif/diary/internal/repository/sqlite"
	"github.com/sakif/diary/internal/service"
)

// shutdownTimeout bounds how long in-flight requests get after a signal.
const shutdownTimeout = 30 * time.Second

// Server owns the database connection, the Store and the autosaver. All
// three are released by Close, which Start calls on the way out.
type Server struct {
	router    *chi.Mux
	config    *config.Config
	logger    *slog.Logger
	db        *sqliteRepo.DB
	store     *service.Store
	autosaver *service.AutoSaver
}

// New opens the database at cfg.DBPath, loads every record into the Store
// and registers the routes. Nothing is listening until Start is called.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store := service.NewStore(db, logger)
	if err := store.Load(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("loading store: %w", err)
	}

	s := &Server{
		router:    chi.NewRouter(),
		config:    cfg,
		logger:    logger,
		db:        db,
		store:     store,
		autosaver: service.NewAutoSaver(cfg.AutoSaveDelay, logger),
	}
	s.setupRoutes()
	return s, nil
}

// Handler returns the root HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Store returns the Store the server reads and writes through.
func (s *Server) Store() *service.Store {
	return s.store
}

// setupRoutes registers middleware and the /api route table.
//
// MIDDLEWARE ORDER MATTERS:
// 1. RequestID: assigns an id to each request, picked up by Logger
// 2. RealIP: extracts the client IP from proxy headers
// 3. Recoverer: turns a panic into a 500 instead of crashing
// 4. Logger: one structured line per request
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	entries := handler.NewEntryHandler(s.store, s.autosaver, s.logger)
	images := handler.NewImageHandler(s.store, s.logger)
	tags := handler.NewTagHandler(s.store, s.logger)
	templates := handler.NewTemplateHandler(s.store, s.logger)
	browse := handler.NewBrowseHandler(s.store, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Get("/", entries.HandleList)
			r.Post("/", entries.HandleCreate)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", entries.HandleGet)
				r.Put("/", entries.HandleUpdate)
				r.Delete("/", entries.HandleDelete)
				r.Put("/autosave", entries.HandleAutosave)
				r.Post("/pin", entries.HandleTogglePin)
				r.Get("/images", images.HandleListForEntry)
				r.Post("/images", images.HandleUpload)
			})
		})

		r.Get("/images/{id}", images.HandleGet)
		r.Delete("/images/{id}", images.HandleDelete)

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.HandleList)
			r.Post("/", tags.HandleCreate)
			r.Put("/{id}", tags.HandleUpdate)
			r.Delete("/{id}", tags.HandleDelete)
			r.Get("/{id}/descendants", tags.HandleDescendants)
			r.Get("/{id}/entries", tags.HandleEntries)
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", templates.HandleList)
			r.Post("/", templates.HandleCreate)
			r.Get("/{id}", templates.HandleGet)
			r.Put("/{id}", templates.HandleUpdate)
			r.Delete("/{id}", templates.HandleDelete)
			r.Post("/{id}/apply", templates.HandleApply)
		})

		r.Post("/search", browse.HandleSearch)
		r.Get("/calendar/{year}/{month}", browse.HandleCalendar)
		r.Get("/links/date/{date}", browse.HandleDateLink)
		r.Get("/links/entry/{id}", browse.HandleEntryLink)
		r.Get("/links/tag/{id}", browse.HandleTagLink)
	})
}

// Close writes any pending autosaves, stops the autosaver and closes the
// database. It is safe to call once; Start calls it itself.
func (s *Server) Close() error {
	flushErr := s.autosaver.Flush()
	if flushErr != nil {
		s.logger.Error("pending autosaves failed", slog.String("error", flushErr.Error()))
	}
	s.autosaver.Close()
	return errors.Join(flushErr, s.db.Close())
}

// Start listens on the configured port and blocks until SIGINT/SIGTERM or
// a listener error.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new connections
// 2. Wait for in-flight requests (30s)
// 3. Flush pending autosaves so the last edits are not lost
// 4. Close the database (flushes WAL, releases the file lock)
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:         ":" + s.config.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("port", s.config.Port),
			slog.String("url", "http://localhost:"+s.config.Port),
			slog.String("database", s.config.DBPath),
			slog.Duration("autosave_delay", s.config.AutoSaveDelay),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			runErr = fmt.Errorf("graceful shutdown failed: %w", err)
		} else {
			s.logger.Info("server stopped gracefully")
		}
	}

	if err := s.Close(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("closing: %w", err))
	}
	return runErr
}
