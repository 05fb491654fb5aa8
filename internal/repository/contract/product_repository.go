package contract

import (
	"context"

	"stylista-be/internal/entity"
	"stylista-be/internal/repository/specification"
)

type ProductRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Product, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Product, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// TopCategories ranks categories by number of products.
	TopCategories(ctx context.Context, limit int) ([]entity.CategoryCount, error)
	CreateBulk(ctx context.Context, products []*entity.Product) error
}
