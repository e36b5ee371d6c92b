// Package lipgloss renders reviews and venue summaries for the terminal using
// the Lipgloss styling library.
package lipgloss

import "github.com/fwojciec/bouncer"

// Compile-time interface verification.
var _ bouncer.Theme = (*Theme)(nil)

// Theme implements bouncer.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles bouncer.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() bouncer.Styles {
	return t.styles
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: bouncer.Styles{
			Positive: bouncer.ColorPair{Foreground: "#a6e3a1"}, // Green
			Negative: bouncer.ColorPair{Foreground: "#f38ba8"}, // Red
			Mixed:    bouncer.ColorPair{Foreground: "#f9e2af"}, // Yellow
			Title: bouncer.ColorPair{
				Foreground: "#cdd6f4",
				Background: "#313244", // Dark surface
			},
			Label:  bouncer.ColorPair{Foreground: "#89b4fa"}, // Blue
			Muted:  bouncer.ColorPair{Foreground: "#6c7086"},
			Border: bouncer.ColorPair{Foreground: "#45475a"},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		styles: bouncer.Styles{
			Positive: bouncer.ColorPair{Foreground: "#40a02b"},
			Negative: bouncer.ColorPair{Foreground: "#d20f39"},
			Mixed:    bouncer.ColorPair{Foreground: "#df8e1d"},
			Title: bouncer.ColorPair{
				Foreground: "#4c4f69",
				Background: "#e6e9ef", // Light surface
			},
			Label:  bouncer.ColorPair{Foreground: "#1e66f5"},
			Muted:  bouncer.ColorPair{Foreground: "#9ca0b0"},
			Border: bouncer.ColorPair{Foreground: "#bcc0cc"},
		},
	}
}
