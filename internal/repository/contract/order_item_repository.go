package contract

import (
	"context"
	"time"

	"stylista-be/internal/entity"
	"stylista-be/internal/repository/specification"
)

type OrderItemRepository interface {
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error)
	// TrendingProducts ranks products by order lines created since the
	// given time, most ordered first. category narrows by substring when set.
	TrendingProducts(ctx context.Context, since time.Time, category string, limit int) ([]entity.ProductCount, error)
	// FavoriteCategories ranks the categories a shopper ordered from.
	FavoriteCategories(ctx context.Context, shopperId int64, limit int) ([]entity.CategoryCount, error)
	CreateBulk(ctx context.Context, items []*entity.OrderItem) error
}
