package implementation

import (
	"context"
	"errors"

	"stylista-be/internal/entity"
	"stylista-be/internal/mapper"
	"stylista-be/internal/model"
	"stylista-be/internal/repository/contract"
	"stylista-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopperRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewShopperRepository(db *gorm.DB) contract.ShopperRepository {
	return &ShopperRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *ShopperRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Shopper, error) {
	var m model.Shopper
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ShopperToEntity(&m), nil
}

func (r *ShopperRepositoryImpl) CreateBulk(ctx context.Context, shoppers []*entity.Shopper) error {
	if len(shoppers) == 0 {
		return nil
	}
	models := make([]*model.Shopper, len(shoppers))
	for i, s := range shoppers {
		models[i] = r.mapper.ShopperToModel(s)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, seedBatchSize).Error
}
