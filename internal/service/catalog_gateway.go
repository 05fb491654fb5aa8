package service

import (
	"context"
	"time"

	"stylista-be/internal/entity"
	"stylista-be/internal/repository/cache"
	"stylista-be/internal/repository/scope"
	"stylista-be/internal/repository/specification"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/pkg/assistant/executor"
)

// catalogGateway is the GORM-backed executor.Catalog. Every call opens its
// own unit of work; catalog reads are not transactional with each other.
type catalogGateway struct {
	uowFactory unitofwork.RepositoryFactory
	trending   *cache.TrendingCache
}

func NewCatalogGateway(uowFactory unitofwork.RepositoryFactory, trending *cache.TrendingCache) executor.Catalog {
	return &catalogGateway{uowFactory: uowFactory, trending: trending}
}

// CriteriaSpecs translates a product filter into query specifications. It is
// shared with the product search endpoint.
func CriteriaSpecs(c executor.Criteria) []specification.Specification {
	var specs []specification.Specification
	if len(c.Categories) > 0 {
		specs = append(specs, specification.CategoryLike{Categories: c.Categories})
	}
	if c.Brand != "" {
		specs = append(specs, specification.BrandLike{Brand: c.Brand})
	}
	if c.Department != "" {
		specs = append(specs, specification.ByDepartment{Department: c.Department})
	}
	if c.MinPrice != nil {
		specs = append(specs, specification.PriceAtLeast{Min: *c.MinPrice})
	}
	if c.MaxPrice != nil {
		specs = append(specs, specification.PriceAtMost{Max: *c.MaxPrice})
	}
	if c.Query != "" {
		specs = append(specs, specification.ProductText{Query: c.Query})
	}
	return specs
}

func (g *catalogGateway) SearchProducts(ctx context.Context, c executor.Criteria) ([]executor.Product, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	specs := append(CriteriaSpecs(c),
		specification.Scope(scope.OrderByPriceAsc),
		specification.Pagination{Limit: c.Limit},
	)
	products, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return toCatalogProducts(products), nil
}

func (g *catalogGateway) ProductsByIDs(ctx context.Context, ids []int64) ([]executor.Product, error) {
	if len(ids) == 0 {
		return []executor.Product{}, nil
	}
	uow := g.uowFactory.NewUnitOfWork(ctx)

	products, err := uow.ProductRepository().FindAll(ctx, specification.ByNumericIDs{IDs: ids})
	if err != nil {
		return nil, err
	}
	return toCatalogProducts(products), nil
}

func (g *catalogGateway) TrendingProductIDs(ctx context.Context, q executor.TrendQuery) ([]int64, error) {
	days := int(time.Since(q.Since).Hours()/24 + 0.5)
	key := cache.Key(q.Category, days, q.Limit)
	if ids, ok := g.trending.Get(ctx, key); ok {
		return ids, nil
	}

	uow := g.uowFactory.NewUnitOfWork(ctx)
	rows, err := uow.OrderItemRepository().TrendingProducts(ctx, q.Since, q.Category, q.Limit)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(rows))
	for i, r := range rows {
		ids[i] = r.ProductId
	}
	g.trending.Set(ctx, key, ids)
	return ids, nil
}

func (g *catalogGateway) RecommendationPool(ctx context.Context, q executor.PoolQuery) ([]executor.Product, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if len(q.Categories) > 0 {
		specs = append(specs, specification.CategoryIn{Categories: q.Categories})
	}
	if q.Department != "" {
		specs = append(specs, specification.ByDepartment{Department: q.Department})
	}
	specs = append(specs, specification.RandomOrder{}, specification.Pagination{Limit: q.Limit})

	products, err := uow.ProductRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return toCatalogProducts(products), nil
}

func (g *catalogGateway) CountUnsold(ctx context.Context, ids []int64) (map[int64]int64, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.InventoryRepository().CountUnsold(ctx, ids)
	if err != nil {
		return nil, err
	}
	counts := make(map[int64]int64, len(rows))
	for _, r := range rows {
		counts[r.ProductId] = r.Count
	}
	return counts, nil
}

func (g *catalogGateway) FindProduct(ctx context.Context, id int64) (*executor.Product, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	product, err := uow.ProductRepository().FindOne(ctx, specification.ByNumericID{ID: id})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, executor.ErrProductNotFound
	}
	p := toCatalogProduct(product)
	return &p, nil
}

func (g *catalogGateway) RecentOrders(ctx context.Context, shopperID int64, since time.Time, limit int) ([]executor.OrderLine, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	items, err := uow.OrderItemRepository().FindAll(ctx,
		specification.OrderedBy{ShopperID: shopperID},
		specification.CreatedSince{Since: since},
		specification.WithProduct{},
		specification.Scope(scope.OrderByCreatedDesc),
		specification.Pagination{Limit: limit},
	)
	if err != nil {
		return nil, err
	}

	lines := make([]executor.OrderLine, 0, len(items))
	for _, it := range items {
		line := executor.OrderLine{
			OrderID:   it.OrderId,
			Status:    it.Status,
			SalePrice: it.SalePrice,
		}
		if it.CreatedAt != nil {
			line.CreatedAt = *it.CreatedAt
		}
		if it.Product != nil {
			line.Product = toCatalogProduct(it.Product)
			if line.SalePrice == 0 {
				line.SalePrice = it.Product.RetailPrice
			}
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (g *catalogGateway) FavoriteCategories(ctx context.Context, shopperID int64, limit int) ([]string, error) {
	uow := g.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.OrderItemRepository().FavoriteCategories(ctx, shopperID, limit)
	if err != nil {
		return nil, err
	}
	categories := make([]string, len(rows))
	for i, r := range rows {
		categories[i] = r.Category
	}
	return categories, nil
}

func toCatalogProduct(p *entity.Product) executor.Product {
	return executor.Product{
		ID:         p.Id,
		Name:       p.Name,
		Brand:      p.Brand,
		Category:   p.Category,
		Department: p.Department,
		SKU:        p.Sku,
		Price:      p.RetailPrice,
	}
}

func toCatalogProducts(products []*entity.Product) []executor.Product {
	out := make([]executor.Product, len(products))
	for i, p := range products {
		out[i] = toCatalogProduct(p)
	}
	return out
}
