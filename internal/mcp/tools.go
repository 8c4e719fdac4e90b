package mcp

import "github.com/mark3labs/mcp-go/mcp"

// extractFieldsTool defines the extract_fields MCP tool.
var extractFieldsTool = mcp.NewTool("extract_fields",
	mcp.WithDescription("Extract structured call-order fields (purpose, venue query, time, party size, phone numbers) from a natural-language utterance. Returns only the fields the utterance mentioned."),
	mcp.WithString("utterance",
		mcp.Required(),
		mcp.Description("The user's chat message"),
	),
)

// orderContentTool defines the order_content MCP tool.
var orderContentTool = mcp.NewTool("order_content",
	mcp.WithDescription("Render collected order fields into the fixed 4-line summary handed to the call-placement agent."),
	mcp.WithString("fields",
		mcp.Required(),
		mcp.Description("JSON object with the collected fields (purpose, query, time, people, callbackNumber, businessNumber)"),
	),
)
