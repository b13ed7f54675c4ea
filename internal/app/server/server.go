package server

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/directory"
	"perfeval/internal/domain/submission"
	"perfeval/internal/domain/template"
	"perfeval/internal/platform/config"
	"perfeval/internal/platform/metrics"
	"perfeval/internal/transport/http/api"
	authhandler "perfeval/internal/transport/http/handlers/auth"
	directoryhandler "perfeval/internal/transport/http/handlers/directory"
	portalhandler "perfeval/internal/transport/http/handlers/portal"
	reportshandler "perfeval/internal/transport/http/handlers/reports"
	submissionshandler "perfeval/internal/transport/http/handlers/submissions"
	templateshandler "perfeval/internal/transport/http/handlers/templates"
	"perfeval/internal/transport/http/middleware"
)

// App wires stores, services and the HTTP router around one database pool.
type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

func New(pool *pgxpool.Pool, cfg config.Config) *App {
	gate := auth.NewService(auth.NewStore(pool), cfg.JWTSecret, cfg.SessionTTL)
	employees := directory.NewService(directory.NewStore(pool))
	templates := template.NewService(template.NewStore(pool))
	submissions := submission.NewService(submission.NewStore(pool))

	collector := metrics.New()

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metricsz", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(gate)
		authHandler.RegisterRoutes(r)

		portalHandler := portalhandler.NewHandler(gate, employees, templates, submissions)
		portalHandler.RegisterRoutes(r, gate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(gate))

			directoryhandler.NewHandler(employees).RegisterRoutes(r)
			templateshandler.NewHandler(templates).RegisterRoutes(r)
			submissionshandler.NewHandler(submissions).RegisterRoutes(r)
			reportshandler.NewHandler(employees, templates, submissions).RegisterRoutes(r)
			portalHandler.RegisterAdminRoutes(r)
		})
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{Config: cfg, DB: pool, Router: router, Metrics: collector}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
