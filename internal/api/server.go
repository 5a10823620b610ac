package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options configures Server
type Options struct {
	Addr      string
	URLPrefix string
	StaticDir string
	Version   string
	PageSize  int
	Logger    *zap.Logger
}

// Server serves the key browser API and the static panel
type Server struct {
	store    KeyStore
	version  string
	pageSize int
	logger   *zap.Logger
	metrics  *metrics
	router   chi.Router
	addr     string
}

func NewServer(store KeyStore, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}

	s := &Server{
		store:    store,
		version:  opts.Version,
		pageSize: opts.PageSize,
		logger:   opts.Logger,
		metrics:  newMetrics(),
		addr:     opts.Addr,
	}
	s.router = s.routes(opts.URLPrefix, opts.StaticDir)
	return s
}

// Handler returns the root handler, including the URL prefix
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes(prefix, staticDir string) chi.Router {
	root := chi.NewRouter()
	root.Use(middleware.RequestID)
	root.Use(middleware.RealIP)
	root.Use(s.requestLogger)
	root.Use(middleware.Recoverer)
	root.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	root.Method(http.MethodGet, "/metrics", s.metrics.handler())

	panel := chi.NewRouter()
	panel.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.middleware)
		r.Get("/appVersion", s.adapt(s.getAppVersion))
		r.Get("/servers", s.adapt(s.getServers))
		r.Get("/servers/{server}/keys", s.adapt(s.getKeys))
		r.Delete("/servers/{server}/keys/{key}", s.adapt(s.deleteKey))
	})
	if staticDir != "" {
		panel.Handle("/*", http.StripPrefix(prefix, http.FileServer(http.Dir(staticDir))))
	}

	if prefix == "" {
		root.Mount("/", panel)
	} else {
		root.Mount(prefix, panel)
	}
	return root
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shctx)
	}()

	s.logger.Info("api server listening", zap.String("addr", ln.Addr().String()))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
