package mcp

import (
	"context"
	"fmt"
	"strings"

	"popdict/internal/notebook"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func getNotebookHandler(nb *notebook.Store) func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries := nb.Entries()
		if len(entries) == 0 {
			return mcp.NewToolResultText("The notebook is empty."), nil
		}

		var lines []string
		for _, e := range entries {
			line := fmt.Sprintf("%s — %s", e.Term, e.Definition)
			if note := e.UsageNote; note != nil && *note != "" {
				line += fmt.Sprintf(" (note: %s)", *note)
			}
			lines = append(lines, line)
		}

		return mcp.NewToolResultText(fmt.Sprintf("Found %d saved entries:\n%s", len(entries), strings.Join(lines, "\n"))), nil
	}
}

// NewServer creates a read-only MCP surface over the notebook so an external
// assistant can see the user's saved vocabulary.
func NewServer(nb *notebook.Store) *server.StreamableHTTPServer {
	mcpServer := server.NewMCPServer("PopDict", "1.0.0")

	tool := mcp.NewTool("get_notebook",
		mcp.WithDescription("List the dictionary entries saved in the user's notebook, newest first."),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	mcpServer.AddTool(tool, getNotebookHandler(nb))

	return server.NewStreamableHTTPServer(mcpServer, server.WithStateLess(true))
}
