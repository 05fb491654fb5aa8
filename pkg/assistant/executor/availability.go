package executor

type Tier string

const (
	TierInStock    Tier = "in_stock"
	TierLowStock   Tier = "low_stock"
	TierOutOfStock Tier = "out_of_stock"
)

const lowStockThreshold = 10

type Availability struct {
	Tier  Tier
	Count int64
}

// AvailabilityFor buckets an unsold unit count.
func AvailabilityFor(count int64) Availability {
	switch {
	case count > lowStockThreshold:
		return Availability{Tier: TierInStock, Count: count}
	case count > 0:
		return Availability{Tier: TierLowStock, Count: count}
	default:
		return Availability{Tier: TierOutOfStock, Count: 0}
	}
}
