package server

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vango-dev/sitekit/internal/config"
	siteerrors "github.com/vango-dev/sitekit/internal/errors"
	"github.com/vango-dev/sitekit/pkg/dom"
	"github.com/vango-dev/sitekit/pkg/features/validate"
	"github.com/vango-dev/sitekit/pkg/middleware"
	"github.com/vango-dev/sitekit/pkg/page"
)

// Server is the HTTP/WebSocket server for one page.
type Server struct {
	site *config.Config

	mu     sync.RWMutex
	source []byte
	assets fs.FS

	config   *ServerConfig
	router   chi.Router
	upgrader websocket.Upgrader
	sessions *SessionManager

	metrics  *middleware.Metrics
	tracing  *middleware.Tracing
	gatherer prometheus.Gatherer

	httpServer *http.Server
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithServerConfig overrides the settings derived from the site config.
func WithServerConfig(c *ServerConfig) Option {
	return func(s *Server) { s.config = c }
}

// WithMetrics records validation and session metrics.
func WithMetrics(m *middleware.Metrics) Option {
	return func(s *Server) { s.metrics = m }
}

// WithTracing traces requests and form submissions.
func WithTracing(t *middleware.Tracing) Option {
	return func(s *Server) { s.tracing = t }
}

// WithGatherer sets the registry served on /metrics
// (default: prometheus.DefaultGatherer).
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithStaticDir serves the files in dir for paths no route matches.
func WithStaticDir(dir string) Option {
	return func(s *Server) { s.assets = os.DirFS(dir) }
}

// WithAssets serves fsys for paths no route matches.
func WithAssets(fsys fs.FS) Option {
	return func(s *Server) { s.assets = fsys }
}

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server for the page source. The page is mounted once up
// front so broken patterns or selectors fail here rather than per request.
func New(site *config.Config, source []byte, opts ...Option) (*Server, error) {
	if site == nil {
		site = config.New()
	}
	s := &Server{
		site:     site,
		source:   source,
		gatherer: prometheus.DefaultGatherer,
		logger:   slog.Default().With("component", "server"),
	}
	s.config = &ServerConfig{
		Address:        site.DevAddress(),
		ReadTimeout:    site.Session.ReadTimeout.D(),
		MaxMessageSize: site.Session.MaxMessageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.config = s.config.withDefaults()

	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  s.config.ReadBufferSize,
		WriteBufferSize: s.config.WriteBufferSize,
		CheckOrigin:     s.config.CheckOrigin,
	}
	s.sessions = NewSessionManager(s.logger)

	if err := mountCheck(s.site, source, s.logger); err != nil {
		return nil, err
	}

	s.router = s.routes()
	return s, nil
}

// mountCheck mounts source once to surface broken patterns and selectors.
func mountCheck(site *config.Config, source []byte, logger *slog.Logger) error {
	doc, err := dom.Parse(bytes.NewReader(source))
	if err != nil {
		return siteerrors.New("E401").Wrap(err)
	}
	p, err := page.Mount(doc, site, page.WithLogger(logger))
	if err != nil {
		return err
	}
	p.Detach()
	return nil
}

// Reload replaces the page source. A source that fails to mount is
// rejected and the current one kept. Live sessions are told to reload.
func (s *Server) Reload(source []byte) error {
	if err := mountCheck(s.site, source, s.logger); err != nil {
		return err
	}
	s.mu.Lock()
	s.source = source
	s.mu.Unlock()

	n := s.sessions.Broadcast(Reply{Reload: true})
	s.logger.Info("page reloaded", "sessions", n)
	return nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	if s.tracing != nil {
		r.Use(s.tracing.Trace)
	}

	r.Get("/", s.handlePage)
	r.Post("/forms/{index}/validate", s.handleValidate)
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/healthz", s.handleHealth)
	if s.site.MetricsEnabled() {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.NotFound(s.handleStatic)
	return r
}

// observers returns the validation observers for a request or session.
func (s *Server) observers(ctx context.Context) validate.Observer {
	var obs validate.Observers
	if s.metrics != nil {
		obs = append(obs, s.metrics)
	}
	if s.tracing != nil {
		obs = append(obs, s.tracing.WithContext(ctx))
	}
	if len(obs) == 0 {
		return nil
	}
	return obs
}

// newPage parses a fresh document and mounts the page behaviors on it.
func (s *Server) newPage(obs validate.Observer) (*page.Page, error) {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()

	doc, err := dom.Parse(bytes.NewReader(source))
	if err != nil {
		return nil, siteerrors.New("E401").Wrap(err)
	}
	opts := []page.Option{page.WithLogger(s.logger)}
	if obs != nil {
		opts = append(opts, page.WithObserver(obs))
	}
	return page.Mount(doc, s.site, opts...)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Address,
		Handler:           s,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes every live session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.sessions.Shutdown()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager { return s.sessions }

// Config returns the effective server configuration.
func (s *Server) Config() *ServerConfig { return s.config }

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger { return s.logger }

// writeTimeout bounds each live session reply.
const writeTimeout = 10 * time.Second
