package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/nahcub/call-bot/internal/extract"
	"github.com/nahcub/call-bot/internal/session"
)

// handleExtractFields runs one extraction pass over the utterance.
func (s *Server) handleExtractFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	utterance, err := request.RequireString("utterance")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: utterance"), nil
	}

	upd := extract.ExtractFields(utterance)
	if upd.Empty() {
		return mcp.NewToolResultText("{}"), nil
	}

	data, err := json.Marshal(upd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding update: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleOrderContent renders a field state into the order template.
func (s *Server) handleOrderContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fieldsJSON, err := request.RequireString("fields")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: fields"), nil
	}

	var fields session.FieldState
	if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid fields JSON: %v", err)), nil
	}

	return mcp.NewToolResultText(session.OrderContent(fields)), nil
}
