package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skintelect/skintelect/internal/adapters/driving/tui/keymap"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/messages"
	"github.com/skintelect/skintelect/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	bar := NewBar(styles.DefaultStyles(), keymap.DefaultKeyMap())

	require.NotNil(t, bar)
	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*Bar)
		want  string
	}{
		{"ready", func(*Bar) {}, "Ready"},
		{"analyzing", func(b *Bar) { b.SetState(StateAnalyzing) }, "Analyzing..."},
		{"error with message", func(b *Bar) {
			b.SetState(StateError)
			b.SetMessage("Please enter an ingredient list to analyze.")
		}, "Please enter an ingredient list to analyze."},
		{"error without message", func(b *Bar) { b.SetState(StateError) }, "Error"},
		{"results", func(b *Bar) {
			b.SetState(StateResults)
			b.SetCounts(3, 4)
		}, "3 of 4 recognized"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(200)
			tt.setup(bar)
			assert.Contains(t, bar.View(), tt.want)
		})
	}
}

func TestStatusBar_HintsFollowFocus(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(200)

	assert.Contains(t, bar.View(), "ctrl+s: analyze")
	assert.Equal(t, "ctrl+s", bar.Hints()[0].Help().Key)

	bar.SetFocus(messages.FocusResults)
	assert.Contains(t, bar.View(), "scroll down")
	assert.NotContains(t, bar.View(), "ctrl+s: analyze")
}

func TestStatusBar_NarrowWidthStillRenders(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetWidth(10)

	assert.NotEmpty(t, bar.View())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("boom")
	bar.SetCounts(1, 2)

	bar.Clear()

	assert.Equal(t, StateReady, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Contains(t, bar.View(), "Ready")
}
