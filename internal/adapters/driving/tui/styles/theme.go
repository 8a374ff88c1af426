// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the TUI.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Border     lipgloss.Color

	// BadgeText is drawn on top of badge backgrounds.
	BadgeText lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#E07A5F"), // Terracotta
		Secondary:  lipgloss.Color("#81B29A"), // Sage
		Foreground: lipgloss.Color("#F4F1DE"), // Cream
		Muted:      lipgloss.Color("#8D8A7F"), // Stone
		Success:    lipgloss.Color("#A6E3A1"), // Green
		Warning:    lipgloss.Color("#F2CC8F"), // Sand
		Error:      lipgloss.Color("#F38BA8"), // Rose
		Border:     lipgloss.Color("#45475A"), // Border gray
		BadgeText:  lipgloss.Color("#1E1E2E"), // Near black
	}
}

// BadgeKind selects a badge colour.
type BadgeKind int

const (
	// BadgeInfo is a neutral badge, e.g. an ingredient function.
	BadgeInfo BadgeKind = iota
	// BadgeSafe marks a positive flag.
	BadgeSafe
	// BadgeCaution marks a mild concern.
	BadgeCaution
	// BadgeDanger marks a strong concern.
	BadgeDanger
)

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// InputField frames the ingredient textarea.
	InputField lipgloss.Style

	// FocusedField frames whichever pane has focus.
	FocusedField lipgloss.Style

	StatusBar lipgloss.Style
	Help      lipgloss.Style

	badges map[BadgeKind]lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	badge := func(bg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.BadgeText).
			Background(bg).
			Padding(0, 1)
	}

	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Secondary),

		Normal:  lipgloss.NewStyle().Foreground(theme.Foreground),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Error:   lipgloss.NewStyle().Foreground(theme.Error),
		Success: lipgloss.NewStyle().Foreground(theme.Success),
		Warning: lipgloss.NewStyle().Foreground(theme.Warning),

		InputField:   pane,
		FocusedField: pane.BorderForeground(theme.Primary),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(lipgloss.Color("#181825")).
			Padding(0, 1),

		Help: lipgloss.NewStyle().Foreground(theme.Muted),

		badges: map[BadgeKind]lipgloss.Style{
			BadgeInfo:    badge(theme.Secondary),
			BadgeSafe:    badge(theme.Success),
			BadgeCaution: badge(theme.Warning),
			BadgeDanger:  badge(theme.Error),
		},
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Badge renders text as a coloured pill.
func (s *Styles) Badge(kind BadgeKind, text string) string {
	style, ok := s.badges[kind]
	if !ok {
		style = s.badges[BadgeInfo]
	}
	return style.Render(text)
}
