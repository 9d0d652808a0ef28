// Package view holds the view models the predictor page renders, as HTML fragments or JSON.
package view

// Mode is the predictor page layout
type Mode int

const (
	ModeSingle Mode = iota
	ModeComparison
)

func (m Mode) String() string {
	if m == ModeComparison {
		return "comparison"
	}
	return "single"
}

// ModeView is what the page shows for a mode
type ModeView struct {
	Mode           string `json:"mode"`
	Title          string `json:"title"`
	Subtitle       string `json:"subtitle"`
	ToggleLabel    string `json:"toggle_label"`
	ShowSingle     bool   `json:"show_single"`
	ShowComparison bool   `json:"show_comparison"`
}

// ModeState is the two-state layout machine of one page load. The zero value is Single.
type ModeState struct {
	mode Mode
}

// Toggle flips Single and Comparison and returns the new view
func (s *ModeState) Toggle() ModeView {
	if s.mode == ModeSingle {
		s.mode = ModeComparison
	} else {
		s.mode = ModeSingle
	}
	return s.View()
}

func (s *ModeState) Mode() Mode {
	return s.mode
}

// View describes the panels, headings and toggle label for the current mode
func (s *ModeState) View() ModeView {
	return ViewFor(s.mode)
}

// ViewFor describes the page for m
func ViewFor(m Mode) ModeView {
	if m == ModeComparison {
		return ModeView{
			Mode:           m.String(),
			Title:          "Compare Survival Predictions",
			Subtitle:       "Enter details for two people to compare their predicted survival probabilities side by side.",
			ToggleLabel:    "Single Mode",
			ShowComparison: true,
		}
	}
	return ModeView{
		Mode:        m.String(),
		Title:       "Could You Have Survived?",
		Subtitle:    "Enter your details below to see the model's prediction.",
		ToggleLabel: "Comparison Mode",
		ShowSingle:  true,
	}
}
