package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skintelect/skintelect/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can analyze
ingredient lists and browse the catalog.

By default the server communicates over stdio using JSON-RPC. Use --http
to serve streamable HTTP instead, for MCP Inspector or remote access.

Examples:
  # Stdio mode (default)
  skintelect mcp

  # HTTP mode
  skintelect mcp --http localhost:8081

Assistant configuration:
  {
    "mcpServers": {
      "skintelect": {
        "command": "/path/to/skintelect",
        "args": ["mcp"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve streamable HTTP on this address instead of stdio")
	rootCmd.AddCommand(mcpCmd)
}

func mcpPorts() *mcp.Ports {
	return &mcp.Ports{
		Analyzer:    analyzerService,
		Ingredients: ingredientService,
		Products:    productService,
		Affiliate:   affiliateService,
	}
}

func runMCP(cmd *cobra.Command, _ []string) error {
	server, err := mcp.NewServer(mcpPorts())
	if err != nil {
		return err
	}

	if mcpHTTPAddr != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on http://%s\n", mcpHTTPAddr)
		return server.RunHTTP(cmd.Context(), mcpHTTPAddr)
	}

	return server.Run(cmd.Context())
}
