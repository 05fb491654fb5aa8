package implementation

import (
	"context"

	"stylista-be/internal/entity"
	"stylista-be/internal/mapper"
	"stylista-be/internal/model"
	"stylista-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewInventoryRepository(db *gorm.DB) contract.InventoryRepository {
	return &InventoryRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *InventoryRepositoryImpl) CountUnsold(ctx context.Context, productIds []int64) ([]entity.ProductCount, error) {
	if len(productIds) == 0 {
		return []entity.ProductCount{}, nil
	}
	var rows []entity.ProductCount
	err := r.db.WithContext(ctx).Model(&model.InventoryItem{}).
		Select("product_id, COUNT(*) AS count").
		Where("product_id IN ?", productIds).
		Where("sold_at IS NULL").
		Group("product_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *InventoryRepositoryImpl) CreateBulk(ctx context.Context, items []*entity.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.InventoryItem, len(items))
	for i, it := range items {
		models[i] = r.mapper.InventoryItemToModel(it)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, seedBatchSize).Error
}
