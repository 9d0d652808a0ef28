package ports

import "context"

// ThemeStore persists a visitor's theme preference. Load returns "" when nothing is stored.
type ThemeStore interface {
	Load(ctx context.Context, visitorID string) (string, error)
	Save(ctx context.Context, visitorID string, theme string) error
}
