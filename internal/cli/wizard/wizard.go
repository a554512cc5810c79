// Package wizard implements the interactive selection flow on top of huh.
// It turns a normalized configuration document into a selection state; all
// real invariants live in the core packages, the wizard only prompts.
package wizard

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/rulekit-dev/rulekit/internal/defs"
	"github.com/rulekit-dev/rulekit/internal/selection"
	"github.com/rulekit-dev/rulekit/pkg/models"
)

// ErrCancelled indicates the user aborted the wizard.
var ErrCancelled = errors.New("wizard: cancelled by user")

// Run prompts for a full selection set against doc and returns the
// resulting state. Each question runs as its own huh.Form; later questions
// depend on earlier answers (frameworks on languages, structures on
// frameworks), so the flow is sequential by construction.
func Run(doc *models.Document) (*selection.State, error) {
	st := selection.NewState()
	theme := newWizardTheme()

	steps := []func(*models.Document, *selection.State, *huh.Theme) error{
		askTools,
		askLanguages,
		askDocumentation,
		askFrameworks,
		askStructures,
		askProcesses,
	}

	for _, step := range steps {
		if err := step(doc, st, theme); err != nil {
			return nil, err
		}
	}

	trimEmptySelections(st)
	return st, nil
}

// ConfirmReuse asks whether to reuse the filtered prior selection state.
func ConfirmReuse(summary string) (bool, error) {
	reuse := true
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Reuse your previous selections?").
			Description(summary).
			Affirmative("Reuse").
			Negative("Start over").
			Value(&reuse),
	))

	if err := runForm(form, newWizardTheme()); err != nil {
		return false, err
	}
	return reuse, nil
}

// runForm applies the theme, runs the form, and maps user aborts to
// ErrCancelled.
func runForm(form *huh.Form, theme *huh.Theme) error {
	if err := form.WithTheme(theme).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("wizard error: %w", err)
	}
	return nil
}

// trimEmptySelections drops map entries that ended up empty so the saved
// record stays minimal.
func trimEmptySelections(st *selection.State) {
	for lang, fws := range st.Frameworks {
		if len(fws) == 0 {
			delete(st.Frameworks, lang)
		}
	}
	for key, structID := range st.Structures {
		if structID == "" {
			delete(st.Structures, key)
		}
	}
	for lang, procs := range st.Processes {
		if len(procs) == 0 {
			delete(st.Processes, lang)
		}
	}
}

// newWizardTheme creates a huh.Theme with rulekit branding.
func newWizardTheme() *huh.Theme {
	t := huh.ThemeBase()

	primary := lipgloss.AdaptiveColor{Light: "#5B4BC4", Dark: "#7C6AEF"}
	green := lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"}
	red := lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"}
	text := lipgloss.AdaptiveColor{Light: "#111827", Dark: "#E5E7EB"}
	muted := lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}
	border := lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#4B5563"}

	t.Focused.Base = t.Focused.Base.BorderForeground(border)
	t.Focused.Title = t.Focused.Title.Foreground(primary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(primary).SetString("▸ ")
	t.Focused.Option = t.Focused.Option.Foreground(text)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(primary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(green)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(green).SetString("◆ ")
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(text)
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(muted).SetString("◇ ")
	t.Focused.FocusedButton = t.Focused.FocusedButton.
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
		Background(primary)
	t.Focused.BlurredButton = t.Focused.BlurredButton.
		Foreground(text).
		Background(lipgloss.AdaptiveColor{Light: "#E5E7EB", Dark: "#374151"})

	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}

// recommendedSuffix marks recommended options in option labels.
func recommendedSuffix(recommended bool) string {
	if recommended {
		return " (recommended)"
	}
	return ""
}

// knownTool reports whether a configured tool id has an output target.
func knownTool(id string) bool {
	_, ok := defs.LookupTarget(id)
	return ok
}
