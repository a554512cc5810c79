// Package ui provides terminal UI primitives: headless detection and
// spinner/progress reporting with a plain-text fallback.
package ui

// Theme holds the color palette and rendering switches for UI components.
type Theme struct {
	NoColor bool
	Colors  ThemeColors
}

// ThemeColors is the rulekit terminal palette.
type ThemeColors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Muted     string
}

// DefaultTheme returns the standard rulekit theme.
func DefaultTheme() *Theme {
	return &Theme{
		Colors: ThemeColors{
			Primary:   "#7C6AEF",
			Secondary: "#3B82F6",
			Success:   "#10B981",
			Error:     "#EF4444",
			Muted:     "#6B7280",
		},
	}
}
