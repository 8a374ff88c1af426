package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/skintelect/skintelect/internal/adapters/driving/mcp"
)

func TestMCPPorts(t *testing.T) {
	setupServices(t)

	ports := mcpPorts()

	assert.NoError(t, ports.Validate())
	assert.Equal(t, affiliateService, ports.Affiliate)
}

func TestMCPCmd_RequiresServices(t *testing.T) {
	_, err := execute(t, "", "mcp")

	assert.ErrorIs(t, err, mcp.ErrMissingAnalyzer)
}

func TestMCPCmd_HTTPFlag(t *testing.T) {
	flag := mcpCmd.Flags().Lookup("http")

	if assert.NotNil(t, flag) {
		assert.Equal(t, "", flag.DefValue)
	}
}
