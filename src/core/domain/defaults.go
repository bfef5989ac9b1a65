package domain

import "time"

// LowStockThreshold is the stock level below which a product counts as low stock.
// Entities, repositories and dashboard aggregations all read this value.
const LowStockThreshold = 10

// DefaultCurrency is applied when a caller does not name a currency.
const DefaultCurrency = "USD"

// Field length limits.
const (
	MaxCategoryNameLength = 100
	MaxProductNameLength  = 200
)

// now is the clock used to stamp entities. Tests replace it.
var now = func() time.Time {
	return time.Now().UTC()
}
