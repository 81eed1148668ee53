package messages

// MCP server messages.
const (
	// MCPServeFailedFmt formats stdio server failures.
	MCPServeFailedFmt  = "run MCP server: %w"
	MCPServiceRequired = "MCP server requires an app service"
	MCPRunnerRequired  = "MCP server runner is nil"
	MCPAppRequired     = "app is required"
)
