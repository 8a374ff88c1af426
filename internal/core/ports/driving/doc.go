// Package driving lists what the CLI, HTTP API, MCP server and TUI may ask
// of the core. internal/core/services implements every interface here.
package driving
