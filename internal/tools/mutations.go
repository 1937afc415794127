package tools

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/openfoodshare/foodgate/internal/gateway"
	"github.com/openfoodshare/foodgate/internal/models"
)

// Write statement templates. All caller values are bound positionally; the
// store enforces nothing beyond its own constraints, so referential
// integrity (e.g. not deleting a listing a claim still references) is the
// caller's responsibility.
const (
	insertFoodListingStmt = `
		INSERT INTO food_listings
		("Food_Name","Quantity","Expiry_Date","Provider_ID","Provider_Type","Location","Food_Type","Meal_Type")
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8);`
	updateFoodQuantityStmt = `UPDATE food_listings SET "Quantity"=$1 WHERE "Food_ID"=$2;`
	deleteFoodListingStmt  = `DELETE FROM food_listings WHERE "Food_ID"=$1;`
	insertClaimStmt        = `INSERT INTO claims ("Food_ID","Receiver_ID","Status") VALUES ($1,$2,$3);`
	updateClaimStatusStmt  = `UPDATE claims SET "Status"=$1 WHERE "Claim_ID"=$2;`
	deleteClaimStmt        = `DELETE FROM claims WHERE "Claim_ID"=$1;`
)

type MutationOutput struct {
	RowsAffected int64  `json:"rows_affected" jsonschema_description:"Number of rows the write touched"`
	Message      string `json:"message" jsonschema_description:"Completion message"`
}

type FoodListingInput struct {
	FoodName     string `json:"food_name" jsonschema:"required" jsonschema_description:"Name of the food item"`
	Quantity     int    `json:"quantity" jsonschema:"required" jsonschema_description:"Available quantity (non-negative)"`
	ExpiryDate   string `json:"expiry_date" jsonschema:"required" jsonschema_description:"Expiry date, YYYY-MM-DD"`
	ProviderID   int    `json:"provider_id" jsonschema:"required" jsonschema_description:"Identifier of an existing provider"`
	ProviderType string `json:"provider_type" jsonschema:"required" jsonschema_description:"Provider type (e.g. Restaurant)"`
	Location     string `json:"location" jsonschema:"required" jsonschema_description:"Pickup location"`
	FoodType     string `json:"food_type" jsonschema:"required" jsonschema_description:"Food type (e.g. Vegetarian)"`
	MealType     string `json:"meal_type" jsonschema:"required" jsonschema_description:"Meal type (e.g. Lunch)"`
}

func (in FoodListingInput) validate() error {
	if in.FoodName == "" {
		return fmt.Errorf("food_name is required")
	}
	if in.Quantity < 0 {
		return fmt.Errorf("quantity must be non-negative")
	}
	if in.ProviderID <= 0 {
		return fmt.Errorf("provider_id must be positive")
	}
	return nil
}

func (in FoodListingInput) params() []any {
	return []any{
		in.FoodName, in.Quantity, in.ExpiryDate, in.ProviderID,
		in.ProviderType, in.Location, in.FoodType, in.MealType,
	}
}

func GetAddFoodListingTool(gw *gateway.Gateway) *ToolDefinition[FoodListingInput, MutationOutput] {
	return NewToolDefinition[FoodListingInput, MutationOutput](
		"add_food_listing",
		"Create a new food listing.",
		func(ctx context.Context, req *mcp.CallToolRequest, input FoodListingInput) (*mcp.CallToolResult, MutationOutput, error) {
			return addFoodListingHandler(ctx, req, input, gw)
		},
	)
}

func addFoodListingHandler(ctx context.Context, req *mcp.CallToolRequest, input FoodListingInput, gw *gateway.Gateway) (*mcp.CallToolResult, MutationOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, MutationOutput{}, err
	}
	if err := input.validate(); err != nil {
		return nil, MutationOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := gw.Write(ctx, insertFoodListingStmt, input.params()...)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("insert error: %v", err)
	}

	return mutationResult(affected, "food listing added")
}

type ImportFoodListingsInput struct {
	Listings []FoodListingInput `json:"listings" jsonschema:"required" jsonschema_description:"Food listings to insert in one transaction"`
}

func GetImportFoodListingsTool(gw *gateway.Gateway) *ToolDefinition[ImportFoodListingsInput, MutationOutput] {
	return NewToolDefinition[ImportFoodListingsInput, MutationOutput](
		"import_food_listings",
		"Insert several food listings in a single transaction; any failure rolls back the whole batch.",
		func(ctx context.Context, req *mcp.CallToolRequest, input ImportFoodListingsInput) (*mcp.CallToolResult, MutationOutput, error) {
			return importFoodListingsHandler(ctx, req, input, gw)
		},
	)
}

func importFoodListingsHandler(ctx context.Context, req *mcp.CallToolRequest, input ImportFoodListingsInput, gw *gateway.Gateway) (*mcp.CallToolResult, MutationOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, MutationOutput{}, err
	}
	if len(input.Listings) == 0 {
		return nil, MutationOutput{}, fmt.Errorf("listings must not be empty")
	}

	batch := make([][]any, 0, len(input.Listings))
	for i, listing := range input.Listings {
		if err := listing.validate(); err != nil {
			return nil, MutationOutput{}, fmt.Errorf("listing %d: %v", i+1, err)
		}
		batch = append(batch, listing.params())
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := gw.WriteBatch(ctx, insertFoodListingStmt, batch)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("batch insert error: %v", err)
	}

	return mutationResult(affected, fmt.Sprintf("%d food listings imported", len(batch)))
}

type UpdateFoodQuantityInput struct {
	FoodID   int `json:"food_id" jsonschema:"required" jsonschema_description:"Identifier of the listing to update"`
	Quantity int `json:"quantity" jsonschema:"required" jsonschema_description:"New quantity (non-negative)"`
}

func GetUpdateFoodQuantityTool(gw *gateway.Gateway) *ToolDefinition[UpdateFoodQuantityInput, MutationOutput] {
	return NewToolDefinition[UpdateFoodQuantityInput, MutationOutput](
		"update_food_quantity",
		"Set the quantity of a food listing by identifier.",
		func(ctx context.Context, req *mcp.CallToolRequest, input UpdateFoodQuantityInput) (*mcp.CallToolResult, MutationOutput, error) {
			return updateFoodQuantityHandler(ctx, req, input, gw)
		},
	)
}

func updateFoodQuantityHandler(ctx context.Context, req *mcp.CallToolRequest, input UpdateFoodQuantityInput, gw *gateway.Gateway) (*mcp.CallToolResult, MutationOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, MutationOutput{}, err
	}
	if input.Quantity < 0 {
		return nil, MutationOutput{}, fmt.Errorf("quantity must be non-negative")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := gw.Write(ctx, updateFoodQuantityStmt, input.Quantity, input.FoodID)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("update error: %v", err)
	}

	return mutationResult(affected, "quantity updated")
}

type DeleteFoodListingInput struct {
	FoodID int `json:"food_id" jsonschema:"required" jsonschema_description:"Identifier of the listing to delete"`
}

func GetDeleteFoodListingTool(gw *gateway.Gateway) *ToolDefinition[DeleteFoodListingInput, MutationOutput] {
	return NewToolDefinition[DeleteFoodListingInput, MutationOutput](
		"delete_food_listing",
		"Delete a food listing by identifier. Claims referencing it are not cascaded.",
		func(ctx context.Context, req *mcp.CallToolRequest, input DeleteFoodListingInput) (*mcp.CallToolResult, MutationOutput, error) {
			return deleteFoodListingHandler(ctx, req, input, gw)
		},
	)
}

func deleteFoodListingHandler(ctx context.Context, req *mcp.CallToolRequest, input DeleteFoodListingInput, gw *gateway.Gateway) (*mcp.CallToolResult, MutationOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, MutationOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := gw.Write(ctx, deleteFoodListingStmt, input.FoodID)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("delete error: %v", err)
	}

	return mutationResult(affected, "food listing deleted")
}

type CreateClaimInput struct {
	FoodID     int    `json:"food_id" jsonschema:"required" jsonschema_description:"Identifier of an existing food listing"`
	ReceiverID int    `json:"receiver_id" jsonschema:"required" jsonschema_description:"Identifier of an existing receiver"`
	Status     string `json:"status" jsonschema:"required" jsonschema_description:"Claim status: Pending, Completed, or Cancelled"`
}

func GetCreateClaimTool(gw *gateway.Gateway) *ToolDefinition[CreateClaimInput, MutationOutput] {
	return NewToolDefinition[CreateClaimInput, MutationOutput](
		"create_claim",
		"Create a claim of a food listing by a receiver.",
		func(ctx context.Context, req *mcp.CallToolRequest, input CreateClaimInput) (*mcp.CallToolResult, MutationOutput, error) {
			return createClaimHandler(ctx, req, input, gw)
		},
	)
}

func createClaimHandler(ctx context.Context, req *mcp.CallToolRequest, input CreateClaimInput, gw *gateway.Gateway) (*mcp.CallToolResult, MutationOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, MutationOutput{}, err
	}
	if !models.ValidStatus(input.Status) {
		return nil, MutationOutput{}, fmt.Errorf("status must be one of Pending, Completed, Cancelled")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := gw.Write(ctx, insertClaimStmt, input.FoodID, input.ReceiverID, input.Status)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("insert error: %v", err)
	}

	return mutationResult(affected, "claim created")
}

type UpdateClaimStatusInput struct {
	ClaimID int    `json:"claim_id" jsonschema:"required" jsonschema_description:"Identifier of the claim to update"`
	Status  string `json:"status" jsonschema:"required" jsonschema_description:"New status: Pending, Completed, or Cancelled"`
}

func GetUpdateClaimStatusTool(gw *gateway.Gateway) *ToolDefinition[UpdateClaimStatusInput, MutationOutput] {
	return NewToolDefinition[UpdateClaimStatusInput, MutationOutput](
		"update_claim_status",
		"Set the status of a claim by identifier.",
		func(ctx context.Context, req *mcp.CallToolRequest, input UpdateClaimStatusInput) (*mcp.CallToolResult, MutationOutput, error) {
			return updateClaimStatusHandler(ctx, req, input, gw)
		},
	)
}

func updateClaimStatusHandler(ctx context.Context, req *mcp.CallToolRequest, input UpdateClaimStatusInput, gw *gateway.Gateway) (*mcp.CallToolResult, MutationOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, MutationOutput{}, err
	}
	if !models.ValidStatus(input.Status) {
		return nil, MutationOutput{}, fmt.Errorf("status must be one of Pending, Completed, Cancelled")
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := gw.Write(ctx, updateClaimStatusStmt, input.Status, input.ClaimID)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("update error: %v", err)
	}

	return mutationResult(affected, "claim status updated")
}

type DeleteClaimInput struct {
	ClaimID int `json:"claim_id" jsonschema:"required" jsonschema_description:"Identifier of the claim to delete"`
}

func GetDeleteClaimTool(gw *gateway.Gateway) *ToolDefinition[DeleteClaimInput, MutationOutput] {
	return NewToolDefinition[DeleteClaimInput, MutationOutput](
		"delete_claim",
		"Delete a claim by identifier.",
		func(ctx context.Context, req *mcp.CallToolRequest, input DeleteClaimInput) (*mcp.CallToolResult, MutationOutput, error) {
			return deleteClaimHandler(ctx, req, input, gw)
		},
	)
}

func deleteClaimHandler(ctx context.Context, req *mcp.CallToolRequest, input DeleteClaimInput, gw *gateway.Gateway) (*mcp.CallToolResult, MutationOutput, error) {
	gw, err := sessionGateway(gw)
	if err != nil {
		return nil, MutationOutput{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	affected, err := gw.Write(ctx, deleteClaimStmt, input.ClaimID)
	if err != nil {
		return nil, MutationOutput{}, fmt.Errorf("delete error: %v", err)
	}

	return mutationResult(affected, "claim deleted")
}

func mutationResult(affected int64, action string) (*mcp.CallToolResult, MutationOutput, error) {
	output := MutationOutput{
		RowsAffected: affected,
		Message:      fmt.Sprintf("%s (%d rows affected)", action, affected),
	}
	result, err := textResult(output)
	if err != nil {
		return nil, MutationOutput{}, err
	}
	return result, output, nil
}
