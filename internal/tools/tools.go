package tools

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openfoodshare/foodgate/internal/gateway"
	"github.com/openfoodshare/foodgate/internal/state"
)

// queryTimeout bounds every store round-trip issued by a tool handler.
const queryTimeout = 30 * time.Second

// RegisterTools wires the gateway tool set onto the MCP server. Mutation
// tools are withheld in read-only mode.
func RegisterTools(s *mcp.Server, gw *gateway.Gateway, readOnly bool) {
	// Reports and KPIs
	GetListReportsTool().Register(s)
	GetRunReportTool(gw).Register(s)
	GetKPIsTool(gw).Register(s)
	// Ad-hoc reads and views
	GetReadQueryTool(gw).Register(s)
	GetListFoodListingsTool(gw).Register(s)
	GetListClaimsTool(gw).Register(s)
	// Ops
	GetTestConnectionTool(gw).Register(s)
	GetCacheStatsTool(gw).Register(s)
	// Mutations (only if not read-only)
	if !readOnly {
		GetAddFoodListingTool(gw).Register(s)
		GetImportFoodListingsTool(gw).Register(s)
		GetUpdateFoodQuantityTool(gw).Register(s)
		GetDeleteFoodListingTool(gw).Register(s)
		GetCreateClaimTool(gw).Register(s)
		GetUpdateClaimStatusTool(gw).Register(s)
		GetDeleteClaimTool(gw).Register(s)
	}
}

// sessionGateway resolves the gateway for the default session, seeding the
// session from gw on first use.
func sessionGateway(gw *gateway.Gateway) (*gateway.Gateway, error) {
	sess := state.GetOrCreateSession("default", gw)
	if sess == nil || sess.Gateway == nil {
		return nil, fmt.Errorf("no active gateway in session")
	}
	return sess.Gateway, nil
}

// textResult marshals output into the tool result's text content.
func textResult(output any) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("JSON marshal error: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonBytes)},
		},
	}, nil
}
