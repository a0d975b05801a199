package cli

import (
	"github.com/spf13/cobra"

	"github.com/areflesh/text-annot/internal/adapters/driving/mcp"
	"github.com/areflesh/text-annot/internal/logger"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Serve annotation tools for one file over stdio",
	Long: `Start a Model Context Protocol server for one text file, so an AI
assistant can read sentences, move between them and save annotations.

The server communicates over stdio using JSON-RPC, or over streamable
HTTP when --http is given.

Tools:
  current_sentence  The sentence under the cursor
  navigate          Move: next, prev, next_unannotated or caption
  save_annotation   Save a triple for the current sentence
  progress          Annotated and total sentence counts

Resources:
  textannot://export              The export JSON
  textannot://captions/{caption}  One caption with its sentences

Example configuration:
  {
    "mcpServers": {
      "textannot": {
        "command": "/path/to/textannot",
        "args": ["mcp", "serve", "/path/to/captions.txt"]
      }
    }
  }`,
	Args: cobra.ExactArgs(1),
	RunE: runMCPServe,
}

var flagMCPHTTP string

func init() {
	mcpServeCmd.Flags().StringVar(&flagMCPHTTP, "http", "", "Listen on this address (e.g. localhost:8080) instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, args []string) error {
	session, err := openSession(cmd, args[0])
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Session: session})
	if err != nil {
		return err
	}

	if flagMCPHTTP != "" {
		logger.Info("MCP server listening on %s", flagMCPHTTP)
		return server.RunHTTP(cmd.Context(), flagMCPHTTP)
	}
	return server.Run(cmd.Context())
}
