package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// ThemeRepository persists theme preferences per visitor. Queries use ? placeholders rebound
// for the connected driver, so the same repository serves the SQLite fallback.
type ThemeRepository struct {
	db *sqlx.DB
}

// NewThemeRepository creates a new theme repository
func NewThemeRepository(db *sqlx.DB) *ThemeRepository {
	return &ThemeRepository{db: db}
}

// Save saves or updates the theme for a visitor
func (r *ThemeRepository) Save(ctx context.Context, visitorID string, theme string) error {
	query := r.db.Rebind(`
		INSERT INTO theme_preferences (visitor_id, theme, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (visitor_id) DO UPDATE SET
			theme = EXCLUDED.theme,
			updated_at = EXCLUDED.updated_at`)

	if _, err := r.db.ExecContext(ctx, query, visitorID, theme, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save theme preference: %w", err)
	}
	return nil
}

// Load returns the stored theme for a visitor, or "" when none is stored
func (r *ThemeRepository) Load(ctx context.Context, visitorID string) (string, error) {
	query := r.db.Rebind(`SELECT theme FROM theme_preferences WHERE visitor_id = ?`)

	var theme string
	err := r.db.QueryRowContext(ctx, query, visitorID).Scan(&theme)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to load theme preference: %w", err)
	}
	return theme, nil
}
