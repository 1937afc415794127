package reports

import (
	"context"
	"fmt"

	"github.com/openfoodshare/foodgate/internal/gateway"
	"github.com/openfoodshare/foodgate/pkg/tabular"
)

// Template is one fixed analytical query. SQL is postgres dialect against
// the CSV-imported schema, whose column names are quoted and capitalized.
// Params is the number of positional bind parameters the template takes.
type Template struct {
	Name   string
	Title  string
	SQL    string
	Params int
}

// Catalog holds the fifteen insight queries. Descending aggregate orders
// carry a secondary ascending key on the grouped column so equal aggregates
// rank the same way on every run.
var Catalog = []Template{
	{
		Name:  "providers_receivers_by_city",
		Title: "How many food providers and receivers are there in each city?",
		SQL: `
			SELECT "City",
			       COUNT(DISTINCT "Provider_ID") AS total_providers,
			       COUNT(DISTINCT "Receiver_ID") AS total_receivers
			FROM (
			    SELECT "City", "Provider_ID", NULL::int AS "Receiver_ID" FROM providers
			    UNION ALL
			    SELECT "City", NULL::int, "Receiver_ID" FROM receivers
			) t
			GROUP BY "City"
			ORDER BY "City";`,
	},
	{
		Name:  "top_provider_type_by_quantity",
		Title: "Which type of food provider contributes the most food (by total quantity)?",
		SQL: `
			SELECT "Provider_Type", SUM("Quantity") AS total_quantity
			FROM food_listings
			GROUP BY "Provider_Type"
			ORDER BY total_quantity DESC, "Provider_Type" ASC
			LIMIT 1;`,
	},
	{
		Name:  "provider_contacts_by_city",
		Title: "Contact info of providers in a specific city",
		SQL: `
			SELECT "Name", "Type", "Contact", "Address"
			FROM providers
			WHERE ($1::text IS NULL) OR ("City" = $1);`,
		Params: 1,
	},
	{
		Name:  "top_receivers_by_claims",
		Title: "Which receivers have claimed the most food?",
		SQL: `
			SELECT r."Name", r."City", COUNT(c."Claim_ID") AS total_claims
			FROM claims c
			JOIN receivers r ON c."Receiver_ID" = r."Receiver_ID"
			GROUP BY r."Name", r."City"
			ORDER BY total_claims DESC, r."Name" ASC
			LIMIT 5;`,
	},
	{
		Name:  "total_food_available",
		Title: "Total quantity of food available from all providers",
		SQL:   `SELECT SUM("Quantity") AS total_food_available FROM food_listings;`,
	},
	{
		Name:  "top_city_by_listings",
		Title: "Which city has the highest number of food listings?",
		SQL: `
			SELECT p."City", COUNT(f."Food_ID") AS total_listings
			FROM food_listings f
			JOIN providers p ON f."Provider_ID" = p."Provider_ID"
			GROUP BY p."City"
			ORDER BY total_listings DESC, p."City" ASC
			LIMIT 1;`,
	},
	{
		Name:  "food_type_counts",
		Title: "Most commonly available food types",
		SQL: `
			SELECT "Food_Type", COUNT("Food_ID") AS total_items
			FROM food_listings
			GROUP BY "Food_Type"
			ORDER BY total_items DESC, "Food_Type" ASC;`,
	},
	{
		Name:  "claims_per_food_item",
		Title: "How many food claims have been made for each food item?",
		SQL: `
			SELECT f."Food_Name", COUNT(c."Claim_ID") AS total_claims
			FROM claims c
			JOIN food_listings f ON c."Food_ID" = f."Food_ID"
			GROUP BY f."Food_Name"
			ORDER BY total_claims DESC, f."Food_Name" ASC;`,
	},
	{
		Name:  "top_provider_by_completed_claims",
		Title: "Which provider has the highest number of successful claims?",
		SQL: `
			SELECT p."Name", COUNT(c."Claim_ID") AS successful_claims
			FROM claims c
			JOIN food_listings f ON c."Food_ID" = f."Food_ID"
			JOIN providers p ON f."Provider_ID" = p."Provider_ID"
			WHERE c."Status" = 'Completed'
			GROUP BY p."Name"
			ORDER BY successful_claims DESC, p."Name" ASC
			LIMIT 1;`,
	},
	{
		Name:  "claim_status_percentages",
		Title: "Percentage of claims by status",
		SQL: `
			SELECT "Status",
			       COUNT(*) * 100.0 / SUM(COUNT(*)) OVER () AS percentage
			FROM claims
			GROUP BY "Status"
			ORDER BY percentage DESC, "Status" ASC;`,
	},
	{
		Name:  "avg_quantity_claimed_per_receiver",
		Title: "Average quantity of food claimed per receiver",
		SQL: `
			SELECT r."Name", ROUND(AVG(f."Quantity"), 2) AS avg_quantity_claimed
			FROM claims c
			JOIN food_listings f ON c."Food_ID" = f."Food_ID"
			JOIN receivers r ON c."Receiver_ID" = r."Receiver_ID"
			GROUP BY r."Name"
			ORDER BY avg_quantity_claimed DESC, r."Name" ASC;`,
	},
	{
		Name:  "meal_type_claim_counts",
		Title: "Which meal type is claimed the most?",
		SQL: `
			SELECT f."Meal_Type", COUNT(c."Claim_ID") AS total_claims
			FROM claims c
			JOIN food_listings f ON c."Food_ID" = f."Food_ID"
			GROUP BY f."Meal_Type"
			ORDER BY total_claims DESC, f."Meal_Type" ASC;`,
	},
	{
		Name:  "quantity_donated_per_provider",
		Title: "Total quantity of food donated by each provider",
		SQL: `
			SELECT p."Name", SUM(f."Quantity") AS total_donated
			FROM food_listings f
			JOIN providers p ON f."Provider_ID" = p."Provider_ID"
			GROUP BY p."Name"
			ORDER BY total_donated DESC, p."Name" ASC;`,
	},
	{
		Name:  "top_city_by_completed_claims",
		Title: "Which city has the highest number of successful claims?",
		SQL: `
			SELECT r."City", COUNT(c."Claim_ID") AS successful_claims
			FROM claims c
			JOIN receivers r ON c."Receiver_ID" = r."Receiver_ID"
			WHERE c."Status" = 'Completed'
			GROUP BY r."City"
			ORDER BY successful_claims DESC, r."City" ASC
			LIMIT 1;`,
	},
	{
		Name:  "nearest_expiry_listing",
		Title: "Which food item is closest to expiry but still available?",
		SQL: fmt.Sprintf(`
			SELECT "Food_Name", "Expiry_Date", "Quantity"
			FROM food_listings
			WHERE %s > CURRENT_DATE
			ORDER BY %s ASC, "Food_ID" ASC
			LIMIT 1;`, dateExpr("Expiry_Date"), dateExpr("Expiry_Date")),
	},
}

// Lookup finds a template by name.
func Lookup(name string) (Template, bool) {
	for _, tpl := range Catalog {
		if tpl.Name == name {
			return tpl, true
		}
	}
	return Template{}, false
}

// Names lists the catalog in its fixed order.
func Names() []string {
	names := make([]string, len(Catalog))
	for i, tpl := range Catalog {
		names[i] = tpl.Name
	}
	return names
}

// Run executes a catalog template through the gateway's cached read path.
// Parameter arity is checked before the store is touched.
func Run(ctx context.Context, gw *gateway.Gateway, name string, params ...any) (*tabular.Table, error) {
	tpl, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown report %q", name)
	}
	if len(params) != tpl.Params {
		return nil, fmt.Errorf("report %q takes %d parameter(s), got %d", name, tpl.Params, len(params))
	}
	return gw.Read(ctx, tpl.SQL, params...)
}
