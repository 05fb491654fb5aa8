package contract

import (
	"context"

	"stylista-be/internal/entity"
)

type InventoryRepository interface {
	// CountUnsold returns one row per product id that has unsold units.
	// Products without stock are absent.
	CountUnsold(ctx context.Context, productIds []int64) ([]entity.ProductCount, error)
	CreateBulk(ctx context.Context, items []*entity.InventoryItem) error
}
