package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/skintelect/skintelect/internal/adapters/driving/tui/keymap"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/messages"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/styles"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/views/analyzer"
	"github.com/skintelect/skintelect/internal/core/domain"
)

// App hosts the analyzer screen. It owns terminal size and the quit
// message; everything else is forwarded to the view.
type App struct {
	ports    *Ports
	ctx      context.Context
	styles   *styles.Styles
	analyzer *analyzer.View

	width, height int
	ready         bool // set by the first WindowSizeMsg
}

var _ tea.Model = (*App)(nil)

// NewApp fails when ports has no analyzer.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	return &App{
		ports:    ports,
		ctx:      context.Background(),
		styles:   s,
		analyzer: analyzer.NewView(s, keymap.DefaultKeyMap(), ports.Analyzer),
	}, nil
}

// WithContext sets the context analyses run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.analyzer.WithContext(ctx)
	return a
}

// WithInput prefills the ingredient textarea.
func (a *App) WithInput(text string) *App {
	if text != "" {
		a.analyzer.SetInput(text)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("skintelect - Ingredient Analyzer"),
		a.analyzer.Init(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.analyzer, cmd = a.analyzer.Update(msg)
	return a, cmd
}

func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.analyzer.View()
}

// Result returns the analysis currently displayed.
func (a *App) Result() *domain.AnalysisResult {
	return a.analyzer.Result()
}

// Err returns the error shown in the status bar, if any.
func (a *App) Err() error {
	return a.analyzer.Err()
}

// Ready reports whether the terminal size is known.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sizes the app without a WindowSizeMsg.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.analyzer.SetDimensions(width, height)
}
