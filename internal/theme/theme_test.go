package theme

import (
	"context"
	"errors"
	"testing"

	"titanic/domain/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockThemeStore is a mock implementation of ports.ThemeStore
type MockThemeStore struct {
	mock.Mock
}

func (m *MockThemeStore) Load(ctx context.Context, visitorID string) (string, error) {
	args := m.Called(ctx, visitorID)
	return args.String(0), args.Error(1)
}

func (m *MockThemeStore) Save(ctx context.Context, visitorID string, theme string) error {
	args := m.Called(ctx, visitorID, theme)
	return args.Error(0)
}

func TestThemeAttributes(t *testing.T) {
	assert.Equal(t, "Night", Light.Label())
	assert.Equal(t, "Day", Dark.Label())
	assert.Equal(t, "theme-light", Light.RootClass())
	assert.Empty(t, Dark.RootClass())
	assert.Equal(t, Dark, Light.Toggled())
	assert.Equal(t, Light, Dark.Toggled())

	th, ok := Parse(" LIGHT ")
	assert.True(t, ok)
	assert.Equal(t, Light, th)
	_, ok = Parse("sepia")
	assert.False(t, ok)
}

func TestResolveOrder(t *testing.T) {
	ctx := context.Background()
	visitor := core.NewVisitorID()

	t.Run("cookie wins", func(t *testing.T) {
		store := new(MockThemeStore)
		c := NewController(store)
		assert.Equal(t, Light, c.Resolve(ctx, visitor, "light", "dark"))
		store.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
	})

	t.Run("store before hint", func(t *testing.T) {
		store := new(MockThemeStore)
		store.On("Load", ctx, visitor.String()).Return("light", nil)
		c := NewController(store)
		assert.Equal(t, Light, c.Resolve(ctx, visitor, "", "dark"))
		store.AssertExpectations(t)
	})

	t.Run("hint when nothing stored", func(t *testing.T) {
		store := new(MockThemeStore)
		store.On("Load", ctx, visitor.String()).Return("", nil)
		c := NewController(store)
		assert.Equal(t, Light, c.Resolve(ctx, visitor, "", "light"))
	})

	t.Run("store failure falls through", func(t *testing.T) {
		store := new(MockThemeStore)
		store.On("Load", ctx, visitor.String()).Return("", errors.New("db down"))
		c := NewController(store)
		assert.Equal(t, Dark, c.Resolve(ctx, visitor, "", ""))
	})

	t.Run("dark by default without store", func(t *testing.T) {
		assert.Equal(t, Dark, NewController(nil).Resolve(ctx, visitor, "bogus", ""))
	})
}

func TestTogglePersistsBestEffort(t *testing.T) {
	ctx := context.Background()
	visitor := core.NewVisitorID()

	store := new(MockThemeStore)
	store.On("Save", ctx, visitor.String(), "light").Return(errors.New("quota exceeded"))
	c := NewController(store)

	assert.Equal(t, Light, c.Toggle(ctx, visitor, Dark))
	store.AssertExpectations(t)

	assert.Equal(t, Dark, NewController(nil).Toggle(ctx, visitor, Light))
}
