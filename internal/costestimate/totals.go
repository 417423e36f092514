package costestimate

import (
	"go-procurement/internal/config"
	"go-procurement/internal/shared/money"

	"github.com/shopspring/decimal"
)

// ItemTotals is the aggregate of an estimate's line items.
type ItemTotals struct {
	Sum   decimal.Decimal
	Count int64
}

// ResolveOmittedTotal decides the estimate total when an update leaves
// total_cost out.
func ResolveOmittedTotal(policy config.TotalPolicy, stored decimal.Decimal, items ItemTotals) decimal.Decimal {
	switch policy {
	case config.Recompute:
		return money.Round(items.Sum)
	case config.PreserveWhenEmpty:
		if items.Count == 0 {
			return stored
		}
		return money.Round(items.Sum)
	default:
		return stored
	}
}

// AddLineTotal applies a newly created item incrementally to the stored total.
func AddLineTotal(stored, lineTotal decimal.Decimal) decimal.Decimal {
	return money.Sum(stored, lineTotal)
}
