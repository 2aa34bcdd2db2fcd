package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Ahmed-3del/portfolio/internal/contact"
	"github.com/Ahmed-3del/portfolio/internal/page"
	"github.com/Ahmed-3del/portfolio/internal/section"
)

const (
	contactThanks  = "Thank you for your message! I'll get back to you soon."
	contactFailed  = "Sorry, there was an error sending your message. Please try again later."
	contactInvalid = "Please fill in your name, a valid email address and a message."
)

func (s *Server) handleHome(c *gin.Context) {
	render(c, http.StatusOK, page.Home(page.FromConfig(s.cfg, section.Home, s.clock.Now())))
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.db.PingContext(c.Request.Context()); err != nil {
		s.logger.Error("health check: database unreachable", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "live_sessions": s.hub.Active()})
}

func (s *Server) handlePrivacy(c *gin.Context) {
	render(c, http.StatusOK, page.Privacy(s.cfg.Retention))
}

// handleContact answers with a fragment swapped into #contact-result.
func (s *Server) handleContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusOK, page.ContactError(contactInvalid))
		return
	}

	msg, err := s.contact.Submit(c.Request.Context(), form)
	switch {
	case err == nil:
		render(c, http.StatusOK, page.ContactSuccess(contactThanks))
	case errors.Is(err, contact.ErrInvalid):
		render(c, http.StatusOK, page.ContactError(contactInvalid))
	case errors.Is(err, contact.ErrDelivery):
		s.logger.Warn("contact message kept for admin review", zap.String("id", msg.ID))
		render(c, http.StatusOK, page.ContactError(contactFailed))
	default:
		s.logger.Error("contact submission failed", zap.Error(err))
		render(c, http.StatusOK, page.ContactError(contactFailed))
	}
}
