package types

// ExecuteRequest represents a tool execution request
type ExecuteRequest struct {
	ToolID string                 `json:"tool_id" binding:"required"`
	Params map[string]interface{} `json:"params" binding:"required"`
}

// DiscoverRequest represents a service discovery request
type DiscoverRequest struct {
	Message string `json:"message" binding:"required"`
	Limit   int    `json:"limit"`
}
