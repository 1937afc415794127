package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openfoodshare/foodgate/internal/gateway"
)

// Recent-first views capped at 500 rows, matching the interactive browse
// screens this gateway backs.
const (
	listFoodListingsQuery = `SELECT * FROM food_listings ORDER BY "Food_ID" DESC LIMIT 500;`
	listClaimsQuery       = `SELECT * FROM claims ORDER BY "Claim_ID" DESC LIMIT 500;`
)

type ListFoodListingsInput struct{}

type ListFoodListingsOutput struct {
	Columns []string `json:"columns" jsonschema_description:"Result column names in order"`
	Rows    [][]any  `json:"rows" jsonschema_description:"Food listings, most recent first"`
	Message string   `json:"message" jsonschema_description:"Completion message"`
}

func GetListFoodListingsTool(gw *gateway.Gateway) *ToolDefinition[ListFoodListingsInput, ListFoodListingsOutput] {
	return NewToolDefinition[ListFoodListingsInput, ListFoodListingsOutput](
		"list_food_listings",
		"View the most recent food listings (up to 500).",
		func(ctx context.Context, req *mcp.CallToolRequest, input ListFoodListingsInput) (*mcp.CallToolResult, ListFoodListingsOutput, error) {
			return listFoodListingsHandler(ctx, req, input, gw)
		},
	)
}

func listFoodListingsHandler(ctx context.Context, req *mcp.CallToolRequest, input ListFoodListingsInput, gw *gateway.Gateway) (*mcp.CallToolResult, ListFoodListingsOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, ListFoodListingsOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	table, err := gw.Read(ctx, listFoodListingsQuery)
	if err != nil {
		return nil, ListFoodListingsOutput{}, fmt.Errorf("query execution error: %v", err)
	}

	output := ListFoodListingsOutput{
		Columns: table.Columns,
		Rows:    table.Rows,
		Message: fmt.Sprintf("%d food listings returned", len(table.Rows)),
	}

	result, err := textResult(output)
	if err != nil {
		return nil, ListFoodListingsOutput{}, err
	}
	return result, output, nil
}

type ListClaimsInput struct{}

type ListClaimsOutput struct {
	Columns []string `json:"columns" jsonschema_description:"Result column names in order"`
	Rows    [][]any  `json:"rows" jsonschema_description:"Claims, most recent first"`
	Message string   `json:"message" jsonschema_description:"Completion message"`
}

func GetListClaimsTool(gw *gateway.Gateway) *ToolDefinition[ListClaimsInput, ListClaimsOutput] {
	return NewToolDefinition[ListClaimsInput, ListClaimsOutput](
		"list_claims",
		"View the most recent claims (up to 500).",
		func(ctx context.Context, req *mcp.CallToolRequest, input ListClaimsInput) (*mcp.CallToolResult, ListClaimsOutput, error) {
			return listClaimsHandler(ctx, req, input, gw)
		},
	)
}

func listClaimsHandler(ctx context.Context, req *mcp.CallToolRequest, input ListClaimsInput, gw *gateway.Gateway) (*mcp.CallToolResult, ListClaimsOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, ListClaimsOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	table, err := gw.Read(ctx, listClaimsQuery)
	if err != nil {
		return nil, ListClaimsOutput{}, fmt.Errorf("query execution error: %v", err)
	}

	output := ListClaimsOutput{
		Columns: table.Columns,
		Rows:    table.Rows,
		Message: fmt.Sprintf("%d claims returned", len(table.Rows)),
	}

	result, err := textResult(output)
	if err != nil {
		return nil, ListClaimsOutput{}, err
	}
	return result, output, nil
}
