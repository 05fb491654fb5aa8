package implementation

import (
	"context"
	"time"

	"stylista-be/internal/entity"
	"stylista-be/internal/mapper"
	"stylista-be/internal/model"
	"stylista-be/internal/repository/contract"
	"stylista-be/internal/repository/specification"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CatalogMapper
}

func NewOrderItemRepository(db *gorm.DB) contract.OrderItemRepository {
	return &OrderItemRepositoryImpl{
		db:     db,
		mapper: mapper.NewCatalogMapper(),
	}
}

func (r *OrderItemRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.OrderItem, error) {
	var models []*model.OrderItem
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.OrderItem, len(models))
	for i, m := range models {
		entities[i] = r.mapper.OrderItemToEntity(m)
	}
	return entities, nil
}

func (r *OrderItemRepositoryImpl) TrendingProducts(ctx context.Context, since time.Time, category string, limit int) ([]entity.ProductCount, error) {
	query := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("order_items.product_id AS product_id, COUNT(*) AS count").
		Where("order_items.created_at >= ?", since)

	if category != "" {
		query = query.
			Joins("JOIN products ON products.id = order_items.product_id").
			Where("products.category ILIKE ?", specification.LikePattern(category))
	}

	var rows []entity.ProductCount
	err := query.
		Group("order_items.product_id").
		Order("count DESC, order_items.product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrderItemRepositoryImpl) FavoriteCategories(ctx context.Context, shopperId int64, limit int) ([]entity.CategoryCount, error) {
	var rows []entity.CategoryCount
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("products.category AS category, COUNT(*) AS count").
		Joins("JOIN products ON products.id = order_items.product_id").
		Where("order_items.user_id = ?", shopperId).
		Group("products.category").
		Order("count DESC, products.category ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *OrderItemRepositoryImpl) CreateBulk(ctx context.Context, items []*entity.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]*model.OrderItem, len(items))
	for i, it := range items {
		models[i] = r.mapper.OrderItemToModel(it)
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(models, seedBatchSize).Error
}
