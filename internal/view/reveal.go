package view

import "titanic/internal/config"

// RevealOptions configures the one-shot reveal-on-scroll observer of the page script
type RevealOptions struct {
	Threshold  float64 `json:"threshold"`
	RootMargin string  `json:"rootMargin"`
}

func RevealFromConfig(cfg config.RevealConfig) RevealOptions {
	return RevealOptions{Threshold: cfg.Threshold, RootMargin: cfg.RootMargin}
}
