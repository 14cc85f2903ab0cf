package main

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/retail-calculator/internal/config"
	"github.com/Simplici0/retail-calculator/internal/db"
	"github.com/Simplici0/retail-calculator/internal/format"
	"github.com/Simplici0/retail-calculator/internal/logging"
	"github.com/Simplici0/retail-calculator/internal/migrations"
	"github.com/Simplici0/retail-calculator/internal/pricing"
	"github.com/Simplici0/retail-calculator/internal/rates"
	"github.com/Simplici0/retail-calculator/internal/seed"
	"github.com/Simplici0/retail-calculator/web"
)

const shutdownTimeout = 10 * time.Second

type server struct {
	db        *sql.DB
	logger    *zap.Logger
	schedule  *pricing.Schedule
	forms     *formStore
	templates *template.Template
}

type baseViewData struct {
	ErrorMessage string
}

func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(ctx, database); err != nil {
		logger.Fatal("failed to run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(ctx, database, pricing.Default())
	if err != nil {
		logger.Fatal("failed to seed rate tables", zap.Error(err))
	}
	if stats.Inserts > 0 {
		logger.Info("seeded rate tables", zap.Int("inserts", stats.Inserts))
	}

	schedule, err := rates.Load(ctx, database)
	if err != nil {
		logger.Fatal("failed to load pricing schedule", zap.Error(err))
	}

	if cfg.FormCookieSecret == "" {
		logger.Warn("FORM_COOKIE_SECRET is not set; saved forms are lost on restart")
	}
	forms := newFormStore([]byte(cfg.FormCookieSecret), !cfg.IsDev())

	srv, err := newServer(database, logger, schedule, forms)
	if err != nil {
		logger.Fatal("failed to build server", zap.Error(err))
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", httpServer.Addr), zap.String("env", cfg.Env))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server stopped", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newServer(database *sql.DB, logger *zap.Logger, schedule *pricing.Schedule, forms *formStore) (*server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	templates, err := template.New("").Funcs(template.FuncMap{
		"currency": format.Currency,
		"percent":  format.Percent,
	}).ParseFS(web.Templates(), "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	return &server{
		db:        database,
		logger:    logger,
		schedule:  schedule,
		forms:     forms,
		templates: templates,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(logging.Middleware(s.logger))
	r.Use(chimw.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/", s.handleCalculatorForm)
	r.Post("/calculate", s.handleCalculate)
	r.Post("/form/state", s.handleFormState)
	r.Get("/healthz", s.handleHealth)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.PingContext(r.Context()); err != nil {
			s.logger.Error("health check failed", zap.Error(err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *server) renderTemplate(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, page, data); err != nil {
		s.logger.Error("failed to render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
