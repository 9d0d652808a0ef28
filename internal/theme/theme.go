// Package theme resolves and toggles the light/dark preference of a visitor.
package theme

import (
	"context"
	"strings"

	"titanic/domain/core"
	"titanic/internal"
	"titanic/ports"
)

// Theme is a light/dark preference
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	// CookieName is where the browser keeps the preference
	CookieName = "theme"
	// HintHeader is the client hint carrying the OS color scheme
	HintHeader = "Sec-CH-Prefers-Color-Scheme"
)

// Parse accepts "light" or "dark", case-insensitively
func Parse(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, true
	case Dark:
		return Dark, true
	}
	return "", false
}

// Toggled returns the opposite theme
func (t Theme) Toggled() Theme {
	if t == Light {
		return Dark
	}
	return Light
}

// Label is the toggle caption: it names what the user switches to
func (t Theme) Label() string {
	if t == Light {
		return "Night"
	}
	return "Day"
}

// RootClass is applied to the document root
func (t Theme) RootClass() string {
	if t == Light {
		return "theme-light"
	}
	return ""
}

func (t Theme) String() string { return string(t) }

// Controller resolves a visitor's theme and persists toggles. Persistence is best effort.
type Controller struct {
	store  ports.ThemeStore
	logger *internal.Logger
}

// NewController creates a controller; store may be nil when no database is configured
func NewController(store ports.ThemeStore) *Controller {
	return &Controller{store: store, logger: internal.DefaultLogger.Named("Theme")}
}

// Resolve picks the stored preference (cookie, then store), else the OS hint, else dark
func (c *Controller) Resolve(ctx context.Context, visitor core.VisitorID, cookie, hint string) Theme {
	if t, ok := Parse(cookie); ok {
		return t
	}
	if t, ok := c.load(ctx, visitor); ok {
		return t
	}
	if t, ok := Parse(hint); ok {
		return t
	}
	return Dark
}

// Toggle flips current and persists the result to the store. The new theme is returned
// even when persisting fails.
func (c *Controller) Toggle(ctx context.Context, visitor core.VisitorID, current Theme) Theme {
	next := current.Toggled()
	if c.store != nil && !visitor.IsEmpty() {
		if err := c.store.Save(ctx, visitor.String(), next.String()); err != nil {
			c.logger.Debug("failed to persist theme for %s: %v", visitor, err)
		}
	}
	return next
}

func (c *Controller) load(ctx context.Context, visitor core.VisitorID) (Theme, bool) {
	if c.store == nil || visitor.IsEmpty() {
		return "", false
	}
	stored, err := c.store.Load(ctx, visitor.String())
	if err != nil {
		c.logger.Debug("failed to load theme for %s: %v", visitor, err)
		return "", false
	}
	return Parse(stored)
}
