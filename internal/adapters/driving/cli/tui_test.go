package cli

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/adapters/driving/tui"
)

type fakeProgram struct {
	model tea.Model
	err   error
}

func (p *fakeProgram) Run() (tea.Model, error) {
	return p.model, p.err
}

func withFakeProgram(t *testing.T, err error) *fakeProgram {
	t.Helper()
	fake := &fakeProgram{err: err}
	original := newProgram
	newProgram = func(m tea.Model, _ ...tea.ProgramOption) program {
		fake.model = m
		return fake
	}
	t.Cleanup(func() { newProgram = original })
	return fake
}

func TestTUICmd_RunsApp(t *testing.T) {
	setupServices(t)
	fake := withFakeProgram(t, nil)

	_, err := execute(t, "", "tui", "Aqua,", "Glycerin")

	require.NoError(t, err)
	assert.IsType(t, &tui.App{}, fake.model)
}

func TestTUICmd_ProgramError(t *testing.T) {
	setupServices(t)
	withFakeProgram(t, errors.New("no tty"))

	_, err := execute(t, "", "tui")

	assert.ErrorContains(t, err, "TUI error: no tty")
}

func TestTUICmd_RequiresAnalyzer(t *testing.T) {
	withFakeProgram(t, nil)

	_, err := execute(t, "", "tui")

	assert.ErrorIs(t, err, tui.ErrMissingAnalyzer)
}
