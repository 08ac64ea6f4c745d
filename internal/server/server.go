// Package server serves the dashboard, table and form pages over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goliatone/go-theme"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-formkit/components/datatable"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/page"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/html"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Handoff receives the values of a successful submit together with the
// receipt id shown in logs.
type Handoff func(ctx context.Context, receipt string, values form.Values) error

// Option configures a Server.
type Option func(*Server)

func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithRenderer replaces the default html renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

func WithTheme(cfg *theme.RendererConfig) Option {
	return func(s *Server) {
		s.theme = cfg
	}
}

// WithStore shares a record store with the server. The table page and the
// JSON API both read and delete through it.
func WithStore(store *datatable.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSchema replaces the create-item schema served at /items/new.
func WithSchema(sc *schema.Schema, title, description string) Option {
	return func(s *Server) {
		if sc == nil {
			return
		}
		s.schema = sc
		s.formTitle = title
		s.formDescription = description
	}
}

func WithDashboard(d page.Dashboard) Option {
	return func(s *Server) {
		s.dashboard = d
	}
}

func WithHandoff(fn Handoff) Option {
	return func(s *Server) {
		s.handoff = fn
	}
}

// WithRegistry registers metrics on reg and serves it at /metrics.
func WithRegistry(reg *prometheus.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.registry = reg
		}
	}
}

func WithShutdownGrace(d time.Duration) Option {
	return func(s *Server) {
		s.grace = d
	}
}

// WithVersion adds a hidden version field to every rendered form.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.version = version
	}
}

func WithPageSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server wires pages, the records API, assets and metrics onto a chi router.
type Server struct {
	addr            string
	renderer        render.Renderer
	theme           *theme.RendererConfig
	store           *datatable.Store
	schema          *schema.Schema
	formTitle       string
	formDescription string
	dashboard       page.Dashboard
	handoff         Handoff
	registry        *prometheus.Registry
	grace           time.Duration
	version         string
	pageSize        int
	assets          fs.FS
	logger          *slog.Logger

	metrics *metrics
	router  chi.Router
}

// New builds a Server. Without options it serves the stock pages with the
// html renderer and the embedded sample users.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		addr:            ":8080",
		schema:          page.CreateItemSchema(),
		formTitle:       page.CreateItemTitle,
		formDescription: page.CreateItemDescription,
		dashboard:       page.SampleDashboard(),
		grace:           10 * time.Second,
		pageSize:        50,
		assets:          html.AssetsFS(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	if s.renderer == nil {
		renderer, err := html.New(html.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: html renderer: %w", err)
		}
		s.renderer = renderer
	}
	if s.store == nil {
		store, err := datatable.NewDefaultStore()
		if err != nil {
			return nil, fmt.Errorf("server: load records: %w", err)
		}
		s.store = store
	}
	if s.registry == nil {
		s.registry = prometheus.NewRegistry()
	}
	s.metrics = newMetrics(s.registry)

	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(s.assets)))

	r.Get("/", s.handleDashboard)
	r.Get("/users", s.handleUsers)
	r.Post("/users/{id}", s.handleDeleteUser)
	r.Get("/items/new", s.handleNewItem)
	r.Post("/items/new", s.handleCreateItem)

	if _, err := datatable.RegisterRoutes(r, "/",
		datatable.WithStore(s.store),
		datatable.WithMaxLimit(s.pageSize),
		datatable.WithDefaultLimit(s.pageSize),
	); err != nil {
		return fmt.Errorf("server: register records api: %w", err)
	}

	s.router = r
	return nil
}

// Run serves until ctx is cancelled, then shuts down within the grace period.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down", "grace", s.grace)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info("server shutdown complete")
		return nil
	}
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		if reqID := middleware.GetReqID(r.Context()); reqID != "" {
			ww.Header().Set("X-Request-ID", reqID)
		}
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
