// Package analyzer provides the ingredient analysis view for the TUI.
package analyzer

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/skintelect/skintelect/internal/adapters/driving/tui/components/report"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/components/status"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/keymap"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/messages"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/styles"
	"github.com/skintelect/skintelect/internal/core/domain"
	"github.com/skintelect/skintelect/internal/core/ports/driving"
)

const (
	inputHeight = 6

	// chrome is the number of rows used by the title, spacing and status bar.
	chrome = 6
)

// View is the analyzer screen: an ingredient textarea above a scrollable
// report, with a status bar at the bottom.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     textarea.Model
	results   viewport.Model
	statusbar *status.Bar

	analyzer driving.AnalyzerService
	ctx      context.Context

	// revision increments whenever the input changes. Results computed
	// from an older revision are dropped.
	revision int
	result   *domain.AnalysisResult
	err      error
	focus    messages.Focus

	width  int
	height int
	ready  bool
}

// NewView creates a new analyzer view.
func NewView(s *styles.Styles, km *keymap.KeyMap, analyzer driving.AnalyzerService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	ta := textarea.New()
	ta.Placeholder = "Paste an ingredient list, e.g. Aqua, Glycerin, Niacinamide..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.SetWidth(80)
	ta.SetHeight(inputHeight)
	ta.Focus()

	v := &View{
		styles:    s,
		keymap:    km,
		input:     ta,
		results:   viewport.New(80, 24-inputHeight-chrome),
		statusbar: status.NewBar(s, km),
		analyzer:  analyzer,
		ctx:       context.Background(),
		focus:     messages.FocusInput,
		width:     80,
		height:    24,
	}
	v.refreshResults()
	return v
}

// WithContext sets the context analyses run under.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the analyzer view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.AnalysisCompleted:
		v.handleAnalysisCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	var cmd tea.Cmd
	if v.focus == messages.FocusInput {
		v.input, cmd = v.input.Update(msg)
	} else {
		v.results, cmd = v.results.Update(msg)
	}
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keymap.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keymap.Analyze):
		v.statusbar.SetState(status.StateAnalyzing)
		return v, v.analyze(v.input.Value(), v.revision)

	case key.Matches(msg, v.keymap.Reset):
		v.Reset()
		return v, nil

	case key.Matches(msg, v.keymap.SwitchFocus):
		v.toggleFocus()
		return v, nil
	}

	if v.focus == messages.FocusResults {
		var cmd tea.Cmd
		v.results, cmd = v.results.Update(msg)
		return v, cmd
	}

	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if v.input.Value() != before {
		v.revision++
	}
	return v, cmd
}

// analyze runs the analysis off the update loop.
func (v *View) analyze(input string, revision int) tea.Cmd {
	analyzer := v.analyzer
	ctx := v.ctx
	return func() tea.Msg {
		if analyzer == nil {
			return messages.ErrorOccurred{Err: ErrNoAnalyzer}
		}
		result, err := analyzer.Analyze(ctx, input)
		return messages.AnalysisCompleted{Revision: revision, Result: result, Err: err}
	}
}

func (v *View) handleAnalysisCompleted(msg messages.AnalysisCompleted) {
	if msg.Revision != v.revision {
		return
	}
	if msg.Err != nil {
		v.setError(msg.Err)
		return
	}

	v.err = nil
	v.result = msg.Result
	v.statusbar.SetState(status.StateResults)
	if msg.Result != nil {
		v.statusbar.SetCounts(msg.Result.Summary.Recognized, msg.Result.Summary.Total)
	}
	v.refreshResults()
	v.results.GotoTop()
}

func (v *View) setError(err error) {
	v.err = err
	message, ok := domain.ValidationMessage(err)
	if !ok {
		message = "Analysis failed: " + err.Error()
	}
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(message)
}

func (v *View) toggleFocus() {
	if v.focus == messages.FocusInput {
		v.focus = messages.FocusResults
		v.input.Blur()
	} else {
		v.focus = messages.FocusInput
		v.input.Focus()
	}
	v.statusbar.SetFocus(v.focus)
}

// Reset clears the input and the report and returns focus to the input.
func (v *View) Reset() {
	v.input.Reset()
	v.revision++
	v.result = nil
	v.err = nil
	v.statusbar.Clear()
	if v.focus != messages.FocusInput {
		v.toggleFocus()
	}
	v.refreshResults()
}

func (v *View) refreshResults() {
	v.results.SetContent(report.Render(v.styles, v.result, v.results.Width))
}

// View renders the analyzer view.
func (v *View) View() string {
	inputStyle := v.styles.InputField
	if v.focus == messages.FocusInput {
		inputStyle = v.styles.FocusedField
	}

	sections := []string{
		v.styles.Title.Render("Skintelect") + "  " + v.styles.Subtitle.Render("ingredient analyzer"),
		"",
		inputStyle.Render(v.input.View()),
		"",
		v.results.View(),
		v.statusbar.View(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width - 2)
	v.results.Width = width
	v.results.Height = max(height-inputHeight-chrome, 3)
	v.statusbar.SetWidth(width)
	v.refreshResults()
}

// Input returns the current input text.
func (v *View) Input() string {
	return v.input.Value()
}

// SetInput replaces the input text.
func (v *View) SetInput(s string) {
	v.input.SetValue(s)
	v.revision++
}

// Revision returns the current input revision.
func (v *View) Revision() int {
	return v.revision
}

// Result returns the report being shown, if any.
func (v *View) Result() *domain.AnalysisResult {
	return v.result
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Focus returns the pane that receives key input.
func (v *View) Focus() messages.Focus {
	return v.focus
}

// StatusBar returns the status bar.
func (v *View) StatusBar() *status.Bar {
	return v.statusbar
}

// Ready returns whether the view has received its dimensions.
func (v *View) Ready() bool {
	return v.ready
}
