package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openfoodshare/foodgate/internal/gateway"
)

type ReadQueryInput struct {
	Query  string `json:"query" jsonschema:"required" jsonschema_description:"SELECT SQL query with positional placeholders ($1, $2, ...)"`
	Params []any  `json:"params,omitempty" jsonschema_description:"Positional bind parameters, in order"`
}

type ReadQueryOutput struct {
	Columns []string `json:"columns" jsonschema_description:"Result column names in order"`
	Rows    [][]any  `json:"rows" jsonschema_description:"Result rows in column order"`
	Message string   `json:"message" jsonschema_description:"Completion message"`
}

func GetReadQueryTool(gw *gateway.Gateway) *ToolDefinition[ReadQueryInput, ReadQueryOutput] {
	return NewToolDefinition[ReadQueryInput, ReadQueryOutput](
		"read_query",
		"Execute an ad-hoc SELECT through the cached read path. Values must be bound via params, never spliced into the query text.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ReadQueryInput) (*mcp.CallToolResult, ReadQueryOutput, error) {
			return readQueryHandler(ctx, req, input, gw)
		},
	)
}

func readQueryHandler(ctx context.Context, req *mcp.CallToolRequest, input ReadQueryInput, gw *gateway.Gateway) (*mcp.CallToolResult, ReadQueryOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, ReadQueryOutput{}, err
	}

	queryLower := strings.ToLower(strings.TrimSpace(input.Query))
	if !strings.HasPrefix(queryLower, "select") {
		return nil, ReadQueryOutput{}, fmt.Errorf("only SELECT queries are allowed here; use the mutation tools for writes")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	table, err := gw.Read(ctx, input.Query, input.Params...)
	if err != nil {
		return nil, ReadQueryOutput{}, fmt.Errorf("query execution error: %v", err)
	}

	message := fmt.Sprintf("SELECT completed (%d rows)", len(table.Rows))
	if table.Empty() {
		message = "SELECT completed: no rows matched"
	}

	output := ReadQueryOutput{
		Columns: table.Columns,
		Rows:    table.Rows,
		Message: message,
	}

	result, err := textResult(output)
	if err != nil {
		return nil, ReadQueryOutput{}, err
	}
	return result, output, nil
}
