package reports

import (
	"context"
	"math"

	"github.com/openfoodshare/foodgate/internal/gateway"
	"github.com/openfoodshare/foodgate/internal/models"
	"github.com/openfoodshare/foodgate/pkg/tabular"
)

// KPISet is the dashboard summary derived client-side from the raw tables
// rather than stored as a query template.
type KPISet struct {
	TotalFoodQuantity int64   `json:"total_food_quantity"`
	TotalClaims       int     `json:"total_claims"`
	CompletedClaims   int     `json:"completed_claims"`
	SuccessRate       float64 `json:"success_rate"`
	TotalProviders    int     `json:"total_providers"`
	TotalReceivers    int     `json:"total_receivers"`
}

const (
	foodListingsQuery = `SELECT * FROM food_listings;`
	claimsQuery       = `SELECT * FROM claims;`
	providersQuery    = `SELECT * FROM providers;`
	receiversQuery    = `SELECT * FROM receivers;`
)

// ComputeKPIs loads the four raw tables through the cached read path and
// derives the summary metrics from them.
func ComputeKPIs(ctx context.Context, gw *gateway.Gateway) (*KPISet, error) {
	food, err := gw.Read(ctx, foodListingsQuery)
	if err != nil {
		return nil, err
	}
	claims, err := gw.Read(ctx, claimsQuery)
	if err != nil {
		return nil, err
	}
	providers, err := gw.Read(ctx, providersQuery)
	if err != nil {
		return nil, err
	}
	receivers, err := gw.Read(ctx, receiversQuery)
	if err != nil {
		return nil, err
	}

	k := kpisFromTables(food, claims, providers, receivers)
	return &k, nil
}

// kpisFromTables is the pure computation over already-fetched tables.
func kpisFromTables(food, claims, providers, receivers *tabular.Table) KPISet {
	var k KPISet

	if qi := food.ColumnIndex("Quantity"); qi >= 0 {
		for _, row := range food.Rows {
			k.TotalFoodQuantity += tabular.Int64(row[qi]) // NULL counts as zero
		}
	}

	k.TotalClaims = len(claims.Rows)
	if si := claims.ColumnIndex("Status"); si >= 0 {
		for _, row := range claims.Rows {
			if tabular.String(row[si]) == models.StatusCompleted {
				k.CompletedClaims++
			}
		}
	}

	// Zero claims is a valid state, not a division error.
	if k.TotalClaims > 0 {
		k.SuccessRate = round2(100 * float64(k.CompletedClaims) / float64(k.TotalClaims))
	}

	k.TotalProviders = distinctCount(providers, "Provider_ID")
	k.TotalReceivers = distinctCount(receivers, "Receiver_ID")

	return k
}

func distinctCount(t *tabular.Table, column string) int {
	idx := t.ColumnIndex(column)
	if idx < 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(t.Rows))
	for _, row := range t.Rows {
		if row[idx] == nil {
			continue
		}
		seen[tabular.String(row[idx])] = struct{}{}
	}
	return len(seen)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
