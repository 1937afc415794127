package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openfoodshare/foodgate/internal/gateway"
)

type TestConnectionInput struct{}

type TestConnectionOutput struct {
	Success bool   `json:"success" jsonschema_description:"Whether the store answered"`
	Message string `json:"message" jsonschema_description:"Test result message"`
}

func GetTestConnectionTool(gw *gateway.Gateway) *ToolDefinition[TestConnectionInput, TestConnectionOutput] {
	return NewToolDefinition[TestConnectionInput, TestConnectionOutput](
		"test_connection",
		"Verify the store is reachable with the configured credentials.",
		func(ctx context.Context, req *mcp.CallToolRequest, input TestConnectionInput) (*mcp.CallToolResult, TestConnectionOutput, error) {
			return testConnectionHandler(ctx, req, input, gw)
		},
	)
}

func testConnectionHandler(ctx context.Context, req *mcp.CallToolRequest, input TestConnectionInput, gw *gateway.Gateway) (*mcp.CallToolResult, TestConnectionOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, TestConnectionOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	output := TestConnectionOutput{Success: true, Message: "connection test successful"}
	if err := gw.Ping(ctx); err != nil {
		output = TestConnectionOutput{
			Success: false,
			Message: fmt.Sprintf("connection test failed: %v", err),
		}
	}

	result, err := textResult(output)
	if err != nil {
		return nil, TestConnectionOutput{}, err
	}
	return result, output, nil
}

type CacheStatsInput struct{}

type CacheStatsOutput struct {
	Stats   gateway.CacheStats `json:"stats" jsonschema_description:"Read-cache hit/miss/eviction counters"`
	Message string             `json:"message" jsonschema_description:"Completion message"`
}

func GetCacheStatsTool(gw *gateway.Gateway) *ToolDefinition[CacheStatsInput, CacheStatsOutput] {
	return NewToolDefinition[CacheStatsInput, CacheStatsOutput](
		"cache_stats",
		"Report read-cache effectiveness counters.",
		func(ctx context.Context, req *mcp.CallToolRequest, input CacheStatsInput) (*mcp.CallToolResult, CacheStatsOutput, error) {
			return cacheStatsHandler(ctx, req, input, gw)
		},
	)
}

func cacheStatsHandler(ctx context.Context, req *mcp.CallToolRequest, input CacheStatsInput, gw *gateway.Gateway) (*mcp.CallToolResult, CacheStatsOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, CacheStatsOutput{}, err
	}

	output := CacheStatsOutput{
		Stats:   gw.CacheStats(),
		Message: "cache stats collected",
	}

	result, err := textResult(output)
	if err != nil {
		return nil, CacheStatsOutput{}, err
	}
	return result, output, nil
}
