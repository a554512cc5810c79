package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// CLI output styles for consistent rulekit-themed terminal output.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5B4BC4", Dark: "#7C6AEF"})
	cliBorder  = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}
)

// kvPair is one aligned key/value line in a card.
type kvPair struct {
	key   string
	value string
}

// renderKeyValueLines renders aligned key: value lines.
func renderKeyValueLines(pairs []kvPair) string {
	width := 0
	for _, p := range pairs {
		if len(p.key) > width {
			width = len(p.key)
		}
	}
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(cliMuted.Render(p.key+strings.Repeat(" ", width-len(p.key))+"  ") + p.value)
	}
	return b.String()
}

// renderSuccessCard renders a bordered card with a success title and
// optional detail lines.
func renderSuccessCard(title string, details ...string) string {
	body := cliSuccess.Render("✓ ") + lipgloss.NewStyle().Bold(true).Render(title)
	for _, d := range details {
		if d == "" {
			body += "\n"
			continue
		}
		body += "\n" + d
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder).
		Padding(0, 1).
		Render(body)
}

// renderErrorCard renders a fatal diagnosis plus concrete remediation
// steps; fatal errors always name an exact command to run next.
func renderErrorCard(title string, remediation ...string) string {
	body := cliError.Render("✗ ") + lipgloss.NewStyle().Bold(true).Render(title)
	for _, r := range remediation {
		body += "\n" + cliMuted.Render("→ ") + r
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cliBorder).
		Padding(0, 1).
		Render(body)
}
