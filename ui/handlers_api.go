package ui

import (
	"log"
	"net/http"

	"titanic/internal/errors"
	"titanic/internal/theme"
	"titanic/ui/middleware"

	"github.com/gin-gonic/gin"
)

const themeCookieAge = 365 * 24 * 60 * 60

type pageRequest struct {
	PageID string `json:"page_id" form:"page_id"`
}

// handleModeToggle flips the page between Single and Comparison
func (s *Server) handleModeToggle(c *gin.Context) {
	var req pageRequest
	if err := c.ShouldBind(&req); err != nil || req.PageID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_id is required", "code": errors.CodeInvalidInput})
		return
	}

	page, err := s.pages.Get(req.PageID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	c.JSON(http.StatusOK, page.ToggleMode())
}

// handleThemeToggle flips the visitor's theme. The page_id is optional; when given, charts
// built for that page from now on use the new theme.
func (s *Server) handleThemeToggle(c *gin.Context) {
	var req pageRequest
	_ = c.ShouldBind(&req)

	next := s.themes.Toggle(c.Request.Context(), middleware.Visitor(c), s.resolveTheme(c))

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(theme.CookieName, next.String(), themeCookieAge, "/", "", false, false)

	if req.PageID != "" {
		if page, err := s.pages.Get(req.PageID); err == nil {
			page.SetChartTheme(next.String())
		} else {
			log.Printf("[handleThemeToggle] Ignoring page %q: %v", req.PageID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"theme":      next,
		"label":      next.Label(),
		"root_class": next.RootClass(),
	})
}

// handleSession reports the state of a page session
func (s *Server) handleSession(c *gin.Context) {
	page, err := s.pages.Get(c.Param("id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}
	c.JSON(http.StatusOK, page.Snapshot())
}

// handleBackendHealth proxies the backend's /health for the page's origin
func (s *Server) handleBackendHealth(c *gin.Context) {
	page, err := s.pageFor(c, c.Query("page_id"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
		return
	}

	if err := s.backends(page.Origin).Health(c.Request.Context()); err != nil {
		log.Printf("[handleBackendHealth] Backend at %s unavailable: %v", page.Origin, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"status": "unavailable",
			"origin": page.Origin,
			"error":  errors.Reason(err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "origin": page.Origin})
}
