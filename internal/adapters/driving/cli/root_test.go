package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skintelect/skintelect/internal/logger"
)

func TestConfigDirFromArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"absent", []string{"analyze", "aqua"}, ""},
		{"separate value", []string{"--config", "/tmp/cfg", "serve"}, "/tmp/cfg"},
		{"equals form", []string{"serve", "--config=/etc/skintelect"}, "/etc/skintelect"},
		{"missing value", []string{"serve", "--config"}, ""},
		{"after terminator", []string{"analyze", "--", "--config", "x"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigDirFromArgs(tt.args))
		})
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	t.Cleanup(func() { logger.SetVerbose(false) })

	_, err := execute(t, "", "--verbose", "version")

	assert.NoError(t, err)
	assert.True(t, logger.IsVerbose())
}

func TestRootCmd_RegistersCommands(t *testing.T) {
	want := []string{"analyze", "ingredient", "product", "seed", "serve", "mcp", "tui", "settings", "version"}
	var got []string
	for _, c := range rootCmd.Commands() {
		got = append(got, c.Name())
	}

	for _, name := range want {
		assert.Contains(t, got, name)
	}
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	original := version
	t.Cleanup(func() { version = original })

	SetVersion("1.2.3")
	SetVersion("")

	assert.Equal(t, "1.2.3", version)
}

func TestCommands_RequireServices(t *testing.T) {
	for _, args := range [][]string{
		{"analyze", "aqua"},
		{"ingredient", "get", "water"},
		{"product", "get", "x"},
		{"product", "offers", "x"},
		{"seed"},
		{"settings", "list"},
	} {
		_, err := execute(t, "", args...)

		assert.ErrorIs(t, err, errNotConfigured, "args %v", args)
	}
}
