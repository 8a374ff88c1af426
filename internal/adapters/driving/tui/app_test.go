package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/adapters/driving/tui/messages"
	"github.com/skintelect/skintelect/internal/core/domain"
)

// MockAnalyzer implements driving.AnalyzerService for testing.
type MockAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, input string) (*domain.AnalysisResult, error)
}

func (m *MockAnalyzer) Analyze(ctx context.Context, input string) (*domain.AnalysisResult, error) {
	if m.AnalyzeFunc != nil {
		return m.AnalyzeFunc(ctx, input)
	}
	return &domain.AnalysisResult{
		Ingredients: []domain.AnalyzedIngredient{{OriginalText: input, Position: 1}},
		Summary:     domain.AnalysisSummary{Total: 1, Unrecognized: 1, IsFungalAcneSafe: true},
	}, nil
}

func newTestPorts() *Ports {
	return &Ports{Analyzer: &MockAnalyzer{}}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(newTestPorts())

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	tests := []struct {
		name  string
		ports *Ports
		want  error
	}{
		{"nil ports", nil, ErrInvalidPorts},
		{"missing analyzer", &Ports{}, ErrMissingAnalyzer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, err := NewApp(tt.ports)

			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, app)
		})
	}
}

func TestApp_Init(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	assert.NotNil(t, app.Init())
}

func TestApp_WindowSize(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Nil(t, cmd)
	assert.Same(t, app, model)
	assert.True(t, app.Ready())
	assert.Contains(t, app.View(), "ingredient analyzer")
}

func TestApp_AnalyzeRoundTrip(t *testing.T) {
	app, _ := NewApp(newTestPorts())
	app.WithInput("Unobtainium")
	app.SetDimensions(100, 30)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	_, _ = app.Update(cmd())

	require.NotNil(t, app.Result())
	assert.NoError(t, app.Err())
	assert.Contains(t, app.View(), "0 of 1 recognized")
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_WithContext(t *testing.T) {
	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")
	var seen context.Context
	ports := &Ports{Analyzer: &MockAnalyzer{
		AnalyzeFunc: func(ctx context.Context, _ string) (*domain.AnalysisResult, error) {
			seen = ctx
			return &domain.AnalysisResult{}, nil
		},
	}}
	app, _ := NewApp(ports)

	result := app.WithContext(ctx)
	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	cmd()

	assert.Same(t, app, result)
	require.NotNil(t, seen)
	assert.Equal(t, "value", seen.Value(contextKey("key")))
}

func TestApp_WithInputEmptyIsNoop(t *testing.T) {
	app, _ := NewApp(newTestPorts())

	app.WithInput("")

	assert.Equal(t, 0, app.analyzer.Revision())
}
