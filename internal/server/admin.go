package server

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahmed-3del/portfolio/internal/config"
	"github.com/Ahmed-3del/portfolio/internal/contact"
	"github.com/Ahmed-3del/portfolio/internal/page"
	"github.com/Ahmed-3del/portfolio/internal/visitors"
)

const (
	adminCookie        = "admin_token"
	adminCookieMaxAge  = 24 * 60 * 60
	devAdminPassword   = "admin123"
	recentVisitorLimit = 50
	messageListLimit   = 200
)

// adminAuth holds the credentials and the per-process session token.
type adminAuth struct {
	username string
	password string
	token    string
}

// newAdminAuth returns nil when the admin area is disabled, which is the
// case in release mode without a configured password.
func newAdminAuth(cfg config.AdminConfig, logger *zap.Logger) (*adminAuth, error) {
	password := cfg.Password
	if password == "" {
		if gin.Mode() != gin.DebugMode {
			logger.Warn("admin area disabled, set ADMIN_PASSWORD to enable it")
			return nil, nil
		}
		logger.Warn("using default admin password, set ADMIN_PASSWORD")
		password = devAdminPassword
	}
	token, err := visitors.RandomToken()
	if err != nil {
		return nil, err
	}
	logger.Info("admin access available at /admin/login")
	return &adminAuth{username: cfg.Username, password: password, token: token}, nil
}

func (a *adminAuth) check(username, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(username), []byte(a.username))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(a.password))
	return u&p == 1
}

func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (s *Server) adminRoutes(r *gin.Engine) {
	if s.admin == nil {
		return
	}
	r.GET("/admin/login", func(c *gin.Context) {
		render(c, http.StatusOK, page.AdminLogin(""))
	})
	r.POST("/admin/login", s.handleLogin)
	r.GET("/admin/logout", s.handleLogout)

	admin := r.Group("/admin")
	admin.Use(s.admin.middleware())
	admin.GET("/dashboard", s.handleDashboard)
	admin.GET("/messages", s.handleMessages)
	admin.GET("/messages/:id", s.handleMessage)
	admin.DELETE("/messages/:id", s.handleDeleteMessage)
	admin.GET("/api/stats", s.handleStats)
	admin.GET("/export/stats", s.handleExportStats)
	admin.POST("/privacy/cleanup", s.handleCleanup)
}

func (s *Server) handleLogin(c *gin.Context) {
	visitor := s.visitors.HashIP(c.ClientIP())
	if !s.admin.check(c.PostForm("username"), c.PostForm("password")) {
		s.logger.Warn("failed admin login", zap.String("visitor", visitor))
		render(c, http.StatusUnauthorized, page.AdminLogin("Invalid credentials"))
		return
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(adminCookie, s.admin.token, adminCookieMaxAge, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
	s.logger.Info("admin login", zap.String("visitor", visitor))
	c.Redirect(http.StatusFound, "/admin/dashboard")
}

func (s *Server) handleLogout(c *gin.Context) {
	c.SetCookie(adminCookie, "", -1, "/admin", "", gin.Mode() == gin.ReleaseMode, true)
	c.Redirect(http.StatusFound, "/admin/login")
}

// adminStats is the JSON body of /admin/api/stats and the export.
type adminStats struct {
	*visitors.Stats
	Messages        int64 `json:"messages"`
	PendingMessages int64 `json:"pending_messages"`
	LiveSessions    int64 `json:"live_sessions"`
}

func (s *Server) collectStats(c *gin.Context) (*adminStats, error) {
	ctx := c.Request.Context()
	vs, err := s.visitors.Stats(ctx, recentVisitorLimit)
	if err != nil {
		return nil, err
	}
	total, pending, err := s.contact.Counts(ctx)
	if err != nil {
		return nil, err
	}
	return &adminStats{Stats: vs, Messages: total, PendingMessages: pending, LiveSessions: s.hub.Active()}, nil
}

func (s *Server) handleDashboard(c *gin.Context) {
	st, err := s.collectStats(c)
	if err != nil {
		s.logger.Error("loading admin stats", zap.Error(err))
		render(c, http.StatusInternalServerError, page.ContactError("Failed to load statistics"))
		return
	}
	render(c, http.StatusOK, page.AdminDashboard(page.DashboardData{
		Visitors:        st.Stats,
		MessageTotal:    st.Messages,
		MessagesPending: st.PendingMessages,
		Now:             s.clock.Now(),
	}))
}

func (s *Server) handleStats(c *gin.Context) {
	st, err := s.collectStats(c)
	if err != nil {
		s.logger.Error("loading admin stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.JSON(http.StatusOK, st)
}

func (s *Server) handleExportStats(c *gin.Context) {
	st, err := s.collectStats(c)
	if err != nil {
		s.logger.Error("exporting admin stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load statistics"})
		return
	}
	c.Header("Content-Disposition", "attachment; filename=admin-stats.json")
	c.JSON(http.StatusOK, st)
}

func (s *Server) handleMessages(c *gin.Context) {
	msgs, err := s.contact.List(c.Request.Context(), messageListLimit)
	if err != nil {
		s.logger.Error("listing messages", zap.Error(err))
		render(c, http.StatusInternalServerError, page.ContactError("Failed to load messages"))
		return
	}
	render(c, http.StatusOK, page.AdminMessages(msgs, s.clock.Now()))
}

func (s *Server) handleMessage(c *gin.Context) {
	id := c.Param("id")
	m, err := s.contact.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, contact.ErrNotFound):
		render(c, http.StatusNotFound, page.ContactError("Message not found"))
	case err != nil:
		s.logger.Error("loading message", zap.String("id", id), zap.Error(err))
		render(c, http.StatusInternalServerError, page.ContactError("Failed to load message"))
	default:
		render(c, http.StatusOK, page.AdminMessage(m, s.clock.Now()))
	}
}

// handleDeleteMessage answers with an empty body so htmx removes the card.
func (s *Server) handleDeleteMessage(c *gin.Context) {
	id := c.Param("id")
	err := s.contact.Delete(c.Request.Context(), id)
	switch {
	case errors.Is(err, contact.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "message not found"})
	case err != nil:
		s.logger.Error("deleting message", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete message"})
	default:
		s.logger.Info("message deleted", zap.String("id", id))
		c.String(http.StatusOK, "")
	}
}

func (s *Server) handleCleanup(c *gin.Context) {
	n, err := s.visitors.Cleanup(c.Request.Context(), s.cfg.Retention)
	if err != nil {
		s.logger.Error("privacy cleanup", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": n})
}
