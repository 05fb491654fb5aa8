package contract

import (
	"context"

	"stylista-be/internal/entity"
	"stylista-be/internal/repository/specification"
)

type ShopperRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shopper, error)
	CreateBulk(ctx context.Context, shoppers []*entity.Shopper) error
}
