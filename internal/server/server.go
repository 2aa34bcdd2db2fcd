// Package server wires the portfolio's HTTP surface onto gin.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	g "maragu.dev/gomponents"

	"github.com/Ahmed-3del/portfolio/internal/config"
	"github.com/Ahmed-3del/portfolio/internal/contact"
	"github.com/Ahmed-3del/portfolio/internal/live"
	"github.com/Ahmed-3del/portfolio/internal/logging"
	"github.com/Ahmed-3del/portfolio/internal/store"
	"github.com/Ahmed-3del/portfolio/internal/visitors"
	"github.com/Ahmed-3del/portfolio/web"
)

const (
	shutdownTimeout = 10 * time.Second
	cleanupInterval = 24 * time.Hour
)

type Server struct {
	cfg      *config.Config
	logger   *zap.Logger
	db       *store.DB
	clock    clockwork.Clock
	mailer   contact.Mailer
	contact  *contact.Service
	visitors *visitors.Recorder
	hub      *live.Hub
	admin    *adminAuth
	engine   *gin.Engine
}

type Option func(*Server)

// WithMailer overrides the SMTP relay built from the config.
func WithMailer(m contact.Mailer) Option {
	return func(s *Server) { s.mailer = m }
}

// WithClock drives the typewriter and page dates from c.
func WithClock(c clockwork.Clock) Option {
	return func(s *Server) { s.clock = c }
}

func New(cfg *config.Config, db *store.DB, logger *zap.Logger, opts ...Option) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, db: db, logger: logger, clock: clockwork.NewRealClock()}
	if cfg.SMTP.Enabled() {
		s.mailer = contact.NewSMTPMailer(cfg.SMTP)
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.mailer == nil {
		logger.Warn("SMTP credentials not configured, contact messages will only be stored")
	}

	rec, err := visitors.NewRecorder(db, logger)
	if err != nil {
		return nil, fmt.Errorf("visitor tracking: %w", err)
	}
	s.visitors = rec
	s.contact = contact.NewService(db, s.mailer, logger)
	s.hub = live.NewHub(live.Options{
		Typewriter:     cfg.Typewriter,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Clock:          s.clock,
		Logger:         logger,
	})
	if s.admin, err = newAdminAuth(cfg.Admin, logger); err != nil {
		return nil, err
	}

	if err := s.routes(); err != nil {
		return nil, err
	}
	return s, nil
}

// Handler exposes the gin engine, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() error {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.Middleware(s.logger))
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/live"})))
	r.Use(s.visitors.Middleware())

	static, err := web.StaticFS()
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	r.GET("/", s.handleHome)
	r.GET("/healthz", s.handleHealth)
	r.GET("/privacy", s.handlePrivacy)
	r.POST("/contact", s.handleContact)
	r.GET("/live", s.hub.Handle)

	s.adminRoutes(r)
	s.engine = r
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully and
// unmounts every live session.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + s.cfg.Server.Port,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	go s.cleanupLoop(cleanupCtx)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			s.hub.Close()
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.hub.Close()
	s.visitors.Wait()
	if err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// cleanupLoop enforces visitor retention once at start and then daily.
func (s *Server) cleanupLoop(ctx context.Context) {
	ticker := s.clock.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		if _, err := s.visitors.Cleanup(ctx, s.cfg.Retention); err != nil && ctx.Err() == nil {
			s.logger.Error("visitor cleanup failed", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
	}
}

func render(c *gin.Context, status int, node g.Node) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := node.Render(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
