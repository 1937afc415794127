package reports

import (
	"context"
	"strings"
	"testing"
)

func TestCatalogHasFifteenTemplates(t *testing.T) {
	if len(Catalog) != 15 {
		t.Fatalf("expected 15 templates, got %d", len(Catalog))
	}

	seen := make(map[string]struct{})
	for _, tpl := range Catalog {
		if tpl.Name == "" || tpl.Title == "" || tpl.SQL == "" {
			t.Errorf("template %+v has empty fields", tpl)
		}
		if _, dup := seen[tpl.Name]; dup {
			t.Errorf("duplicate template name %q", tpl.Name)
		}
		seen[tpl.Name] = struct{}{}
	}
}

func TestLookup(t *testing.T) {
	tpl, ok := Lookup("claim_status_percentages")
	if !ok {
		t.Fatal("expected claim_status_percentages to exist")
	}
	if !strings.Contains(tpl.SQL, "COUNT(*) * 100.0 / SUM(COUNT(*)) OVER ()") {
		t.Errorf("percentage computation changed: %s", tpl.SQL)
	}

	if _, ok := Lookup("no_such_report"); ok {
		t.Error("expected miss for unknown name")
	}
}

func TestNamesMatchesCatalogOrder(t *testing.T) {
	names := Names()
	if len(names) != len(Catalog) {
		t.Fatalf("expected %d names, got %d", len(Catalog), len(names))
	}
	if names[0] != "providers_receivers_by_city" || names[14] != "nearest_expiry_listing" {
		t.Errorf("catalog order changed: first=%s last=%s", names[0], names[14])
	}
}

func TestCityFilterIsASingleParameterizedPredicate(t *testing.T) {
	tpl, ok := Lookup("provider_contacts_by_city")
	if !ok {
		t.Fatal("expected provider_contacts_by_city to exist")
	}
	if tpl.Params != 1 {
		t.Errorf("expected 1 parameter, got %d", tpl.Params)
	}
	if !strings.Contains(tpl.SQL, `($1::text IS NULL) OR ("City" = $1)`) {
		t.Errorf("city filter must be one predicate handling both cases: %s", tpl.SQL)
	}
}

func TestOnlyCityFilterTakesParameters(t *testing.T) {
	for _, tpl := range Catalog {
		want := 0
		if tpl.Name == "provider_contacts_by_city" {
			want = 1
		}
		if tpl.Params != want {
			t.Errorf("%s: expected %d params, got %d", tpl.Name, want, tpl.Params)
		}
		// Parameter arity must match the placeholders in the text.
		if got := strings.Count(tpl.SQL, "$1") > 0; got != (want == 1) {
			t.Errorf("%s: placeholder presence does not match Params", tpl.Name)
		}
	}
}

func TestNearestExpiryUsesDateCast(t *testing.T) {
	tpl, ok := Lookup("nearest_expiry_listing")
	if !ok {
		t.Fatal("expected nearest_expiry_listing to exist")
	}
	if !strings.Contains(tpl.SQL, `"Expiry_Date"::date > CURRENT_DATE`) {
		t.Errorf("expected future-expiry filter via date cast: %s", tpl.SQL)
	}
	if !strings.Contains(tpl.SQL, `"Expiry_Date"::date ASC`) || !strings.Contains(tpl.SQL, "LIMIT 1") {
		t.Errorf("expected ascending order with a single-row limit: %s", tpl.SQL)
	}
}

func TestDescendingOrdersCarrySecondaryKey(t *testing.T) {
	for _, tpl := range Catalog {
		if !strings.Contains(tpl.SQL, "DESC") {
			continue
		}
		if !strings.Contains(tpl.SQL, "ASC") {
			t.Errorf("%s: descending aggregate order lacks a deterministic secondary key", tpl.Name)
		}
	}
}

func TestRunRejectsUnknownReport(t *testing.T) {
	if _, err := Run(context.Background(), nil, "no_such_report"); err == nil {
		t.Error("expected error for unknown report")
	}
}

func TestRunRejectsWrongArity(t *testing.T) {
	// Arity is checked before the gateway is touched.
	if _, err := Run(context.Background(), nil, "total_food_available", "extra"); err == nil {
		t.Error("expected error for surplus parameter")
	}
	if _, err := Run(context.Background(), nil, "provider_contacts_by_city"); err == nil {
		t.Error("expected error for missing parameter")
	}
}

func TestDateExprQuotesColumn(t *testing.T) {
	if got := dateExpr("Expiry_Date"); got != `"Expiry_Date"::date` {
		t.Errorf("dateExpr = %q", got)
	}
}
