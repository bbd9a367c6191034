// Package server serves rendered galleries over HTTP for local preview.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/arcanaland/showcase/internal/catalog"
	"github.com/arcanaland/showcase/internal/config"
	"github.com/arcanaland/showcase/internal/render"
)

const shutdownTimeout = 5 * time.Second

// AssetsPrefix is where the thumbnail directory is mounted.
const AssetsPrefix = "/assets/"

// Options holds runtime options for the preview server.
type Options struct {
	Addr           string
	LibraryPath    string
	DefaultCatalog string
	// AssetsDir is served under AssetsPrefix when set, and rendered pages
	// point their thumbnails there.
	AssetsDir string
	Assets    config.AssetsConfig
	Watch     bool
}

// Server renders catalogs on request and caches the loaded catalogs until
// their files change.
type Server struct {
	opts    Options
	logger  *zap.Logger
	router  chi.Router
	watcher *Watcher

	mu       sync.RWMutex
	catalogs map[string]*catalog.Catalog
}

// New constructs the server and its routes. When opts.Watch is set a file
// watcher is created; it starts with Run.
func New(logger *zap.Logger, opts Options) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.AssetsDir != "" && opts.Assets.ImageBase == "" {
		opts.Assets.ImageBase = AssetsPrefix
	}

	s := &Server{
		opts:     opts,
		logger:   logger,
		catalogs: make(map[string]*catalog.Catalog),
	}

	if opts.Watch {
		w, err := NewWatcher(logger, s.Invalidate)
		if err != nil {
			return nil, fmt.Errorf("create watcher: %w", err)
		}
		if opts.LibraryPath != "" {
			if err := w.Add(opts.LibraryPath); err != nil {
				logger.Warn("Catalog library not watched", zap.String("path", opts.LibraryPath), zap.Error(err))
			}
		}
		s.watcher = w
	}

	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.opts.AssetsDir != "" {
		r.Handle(AssetsPrefix+"*", http.StripPrefix(AssetsPrefix, http.FileServer(http.Dir(s.opts.AssetsDir))))
	}

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		s.servePage(w, s.opts.DefaultCatalog)
	})
	r.Get("/catalogs/{name}", func(w http.ResponseWriter, r *http.Request) {
		s.servePage(w, chi.URLParam(r, "name"))
	})

	return r
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) servePage(w http.ResponseWriter, name string) {
	c, err := s.catalog(name)
	if err != nil {
		s.logger.Warn("Catalog not available", zap.String("catalog", name), zap.Error(err))
		http.Error(w, fmt.Sprintf("catalog not found: %s", name), http.StatusNotFound)
		return
	}

	page, err := render.BuildPage(s.logger, c, s.opts.Assets)
	if err != nil {
		s.logger.Error("Render failed", zap.String("catalog", name), zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	html, err := page.Bytes()
	if err != nil {
		s.logger.Error("Write page failed", zap.String("catalog", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(html)
}

// catalog returns the cached catalog for name, loading it on a miss.
func (s *Server) catalog(name string) (*catalog.Catalog, error) {
	s.mu.RLock()
	c, ok := s.catalogs[name]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}

	c, err := catalog.Open(s.opts.LibraryPath, name)
	if err != nil {
		return nil, err
	}

	if s.watcher != nil && c.Path != "" {
		if err := s.watcher.Add(filepath.Dir(c.Path)); err != nil {
			s.logger.Warn("Catalog not watched", zap.String("path", c.Path), zap.Error(err))
		}
	}

	s.mu.Lock()
	s.catalogs[name] = c
	s.mu.Unlock()

	s.logger.Debug("Catalog loaded", zap.String("catalog", name), zap.Int("items", c.Len()))
	return c, nil
}

// Invalidate drops every cached catalog.
func (s *Server) Invalidate(path string) {
	s.mu.Lock()
	n := len(s.catalogs)
	s.catalogs = make(map[string]*catalog.Catalog)
	s.mu.Unlock()

	s.logger.Info("Catalog cache invalidated", zap.String("path", path), zap.Int("dropped", n))
}

// Cached reports how many catalogs are currently cached.
func (s *Server) Cached() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.catalogs)
}

// Run listens on opts.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	watchCtx, stopWatch := context.WithCancel(ctx)
	var wg sync.WaitGroup
	if s.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.watcher.Run(watchCtx)
		}()
	}
	defer func() {
		stopWatch()
		wg.Wait()
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Preview server listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}

	s.logger.Info("Preview server stopped")
	return nil
}

// Close releases the watcher when Run was never called.
func (s *Server) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []zap.Field{
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
				zap.Int("bytes", ww.BytesWritten()),
			}
			if status >= http.StatusBadRequest {
				logger.Warn("request completed", fields...)
			} else {
				logger.Debug("request completed", fields...)
			}
		})
	}
}
