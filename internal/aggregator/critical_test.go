package aggregator

import (
	"reflect"
	"testing"

	"redflag-aggregator/internal/store"
	"redflag-aggregator/internal/types"
)

func TestExtractTopCriticalFiltersAndOrders(t *testing.T) {
	cfg := store.Default()

	flags := []types.RedFlag{
		mkFlag("liquidity", types.SeverityCritical, types.CategoryLiquidity),
		mkFlag("working_capital", types.SeverityRed, types.CategoryWorkingCapital),
		mkFlag("governance", types.SeverityCritical, types.CategoryGovernanceFraud),
		mkFlag("borrowings", types.SeverityCritical, types.CategoryLeverage),
	}

	issues := ExtractTopCritical(flags, cfg)
	if len(issues) != 3 {
		t.Fatalf("expected 3 critical issues, got %d", len(issues))
	}

	wantOrder := []types.RiskCategory{
		types.CategoryGovernanceFraud,
		types.CategoryLeverage,
		types.CategoryLiquidity,
	}
	for i, want := range wantOrder {
		if issues[i].Category != want {
			t.Errorf("position %d: expected %s, got %s", i, want, issues[i].Category)
		}
	}
}

func TestExtractTopCriticalModuleTiebreak(t *testing.T) {
	cfg := store.Default()

	flags := []types.RedFlag{
		mkFlag("zeta", types.SeverityCritical, types.CategoryLeverage),
		mkFlag("alpha", types.SeverityCritical, types.CategoryLeverage),
	}
	issues := ExtractTopCritical(flags, cfg)
	if issues[0].Module != "alpha" || issues[1].Module != "zeta" {
		t.Errorf("expected module-name tiebreak, got %s then %s", issues[0].Module, issues[1].Module)
	}
}

func TestExtractTopCriticalTruncatesToLimit(t *testing.T) {
	cfg := store.Default()

	var flags []types.RedFlag
	for i := 0; i < 25; i++ {
		flags = append(flags, mkFlag("governance", types.SeverityCritical, types.CategoryGovernanceFraud))
	}
	issues := ExtractTopCritical(flags, cfg)
	if len(issues) != cfg.TopCriticalLimit {
		t.Errorf("expected truncation to %d, got %d", cfg.TopCriticalLimit, len(issues))
	}
}

func TestExtractTopCriticalEmptyIsNonNil(t *testing.T) {
	issues := ExtractTopCritical(nil, store.Default())
	if issues == nil {
		t.Error("expected empty slice, not nil, so JSON output is [] and not null")
	}
	if len(issues) != 0 {
		t.Errorf("expected no issues, got %d", len(issues))
	}
}

func TestExtractTopCriticalSortIsIdempotent(t *testing.T) {
	cfg := store.Default()

	flags := []types.RedFlag{
		mkFlag("liquidity", types.SeverityCritical, types.CategoryLiquidity),
		mkFlag("governance", types.SeverityCritical, types.CategoryGovernanceFraud),
		mkFlag("earnings", types.SeverityCritical, types.CategoryEarningsQuality),
		mkFlag("borrowings", types.SeverityCritical, types.CategoryLeverage),
	}

	first := ExtractTopCritical(flags, cfg)

	// Feed the ordered output back through extraction: already sorted, stable.
	var again []types.RedFlag
	for _, issue := range first {
		again = append(again, mkFlag(issue.Module, types.SeverityCritical, issue.Category))
	}
	second := ExtractTopCritical(again, cfg)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-sorting sorted output changed the order:\nfirst:  %v\nsecond: %v", first, second)
	}
}
