package app

import (
	"sync"
	"time"

	"titanic/domain/core"
	"titanic/internal/chart"
	"titanic/internal/view"
)

// Form names one of the two prediction forms of the page
type Form string

const (
	FormSingle  Form = "single"
	FormCompare Form = "compare"
)

// PageSession is the controller-local state of one predictor page load. The backend origin is
// fixed when the page is created.
type PageSession struct {
	ID        core.PageID `json:"id"`
	Origin    string      `json:"origin"`
	StartedAt time.Time   `json:"started_at"`

	lastSeen   time.Time
	chartTheme string
	mode       view.ModeState
	controls   map[Form]view.ControlState
	slot       chart.Slot
	mu         sync.RWMutex
}

// PageSnapshot is the externally visible state of a page session
type PageSnapshot struct {
	ID         core.PageID                `json:"id"`
	Origin     string                     `json:"origin"`
	StartedAt  time.Time                  `json:"started_at"`
	Mode       view.ModeView              `json:"mode"`
	Controls   map[Form]view.ControlState `json:"controls"`
	LiveCharts int                        `json:"live_charts"`
	Chart      *chart.Snippet             `json:"chart,omitempty"`
}

// NewPageSession creates the state for a fresh page load in Single mode with idle forms
func NewPageSession(origin, chartTheme string) *PageSession {
	now := time.Now()
	return &PageSession{
		ID:         core.NewPageID(),
		Origin:     origin,
		StartedAt:  now,
		lastSeen:   now,
		chartTheme: chartTheme,
		controls: map[Form]view.ControlState{
			FormSingle:  view.Idle(),
			FormCompare: view.Idle(),
		},
	}
}

// ToggleMode flips between Single and Comparison
func (p *PageSession) ToggleMode() view.ModeView {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode.Toggle()
}

func (p *PageSession) ModeView() view.ModeView {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mode.View()
}

// SetControls records the submit/loading state of a form
func (p *PageSession) SetControls(form Form, state view.ControlState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.controls[form] = state
}

func (p *PageSession) Controls(form Form) view.ControlState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.controls[form]
}

// SetChartTheme changes the theme used for charts built from now on
func (p *PageSession) SetChartTheme(theme string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chartTheme = theme
}

func (p *PageSession) ChartTheme() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.chartTheme
}

// ChartSlot is the page's single comparison chart slot
func (p *PageSession) ChartSlot() *chart.Slot {
	return &p.slot
}

// Snapshot copies the session state for reporting
func (p *PageSession) Snapshot() PageSnapshot {
	p.mu.RLock()
	controls := make(map[Form]view.ControlState, len(p.controls))
	for form, state := range p.controls {
		controls[form] = state
	}
	snap := PageSnapshot{
		ID:        p.ID,
		Origin:    p.Origin,
		StartedAt: p.StartedAt,
		Mode:      p.mode.View(),
		Controls:  controls,
	}
	p.mu.RUnlock()

	snap.LiveCharts = p.slot.Live()
	if current, ok := p.slot.Current(); ok {
		snap.Chart = &current
	}
	return snap
}

func (p *PageSession) touch(now time.Time) {
	p.mu.Lock()
	p.lastSeen = now
	p.mu.Unlock()
}

func (p *PageSession) idleSince(now time.Time) time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return now.Sub(p.lastSeen)
}
