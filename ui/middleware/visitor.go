package middleware

import (
	"log"
	"net/http"

	"titanic/domain/core"

	"github.com/gin-gonic/gin"
)

const (
	// VisitorCookie identifies the browser across page loads
	VisitorCookie = "visitor_id"

	visitorKey       = "visitor_id"
	visitorCookieAge = 365 * 24 * 60 * 60
)

// EnsureVisitor is middleware that makes sure every request carries a visitor id,
// issuing a new cookie when the browser has none or sent a malformed one
func EnsureVisitor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, _ := c.Cookie(VisitorCookie)
		id, err := core.ParseVisitorID(raw)
		if err != nil {
			if raw != "" {
				log.Printf("[EnsureVisitor] Replacing malformed visitor cookie: %v", err)
			}
			id = core.NewVisitorID()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(VisitorCookie, id.String(), visitorCookieAge, "/", "", false, true)
		}

		c.Set(visitorKey, id)
		c.Next()
	}
}

// Visitor returns the id set by EnsureVisitor, empty when the middleware did not run
func Visitor(c *gin.Context) core.VisitorID {
	if v, ok := c.Get(visitorKey); ok {
		if id, ok := v.(core.VisitorID); ok {
			return id
		}
	}
	return ""
}
