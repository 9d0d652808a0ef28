package app

import (
	"context"
	"testing"
	"time"

	"titanic/internal/errors"
	"titanic/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRegistryLifecycle(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	registry := NewPageRegistry(time.Hour)
	registry.now = func() time.Time { return now }

	page := registry.Create(testOrigin, "dark")
	assert.Equal(t, 1, registry.Len())

	got, err := registry.Get(page.ID.String())
	require.NoError(t, err)
	assert.Same(t, page, got)

	_, err = registry.Get("not-a-uuid")
	assert.True(t, errors.HasCode(err, errors.CodeInvalidInput))

	_, err = registry.Get(NewPageSession(testOrigin, "dark").ID.String())
	assert.True(t, errors.HasCode(err, errors.CodeNotFound))

	now = now.Add(30 * time.Minute)
	assert.Equal(t, 0, registry.CleanupExpired())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, registry.CleanupExpired())
	assert.Equal(t, 0, registry.Len())
}

func TestPageSessionState(t *testing.T) {
	page := NewPageSession(testOrigin, "dark")

	snap := page.Snapshot()
	assert.Equal(t, "single", snap.Mode.Mode)
	assert.Equal(t, view.Idle(), snap.Controls[FormSingle])
	assert.Equal(t, 0, snap.LiveCharts)
	assert.Nil(t, snap.Chart)

	assert.Equal(t, "comparison", page.ToggleMode().Mode)
	assert.Equal(t, "comparison", page.ModeView().Mode)

	page.SetChartTheme("light")
	assert.Equal(t, "light", page.ChartTheme())
}

func TestPageRegistryRunIgnoresNonPositiveInterval(t *testing.T) {
	registry := NewPageRegistry(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		defer close(done)
		registry.Run(ctx, 0)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}
