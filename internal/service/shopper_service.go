package service

import (
	"context"
	"math"
	"sort"

	"stylista-be/internal/dto"
	"stylista-be/internal/entity"
	"stylista-be/internal/pkg/logger"
	"stylista-be/internal/repository/memory"
	"stylista-be/internal/repository/scope"
	"stylista-be/internal/repository/specification"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/pkg/assistant/executor"
)

const (
	preferenceOrderWindow   = 50
	preferenceTopN          = 5
	preferenceRecommendSize = 6
)

type IShopperService interface {
	// ShopperContext loads the catalog shopper behind the token. It returns
	// nil when there is none; lookup failures are logged, never returned.
	ShopperContext(ctx context.Context, shopperId *int64) *executor.Shopper
	GetPreferences(ctx context.Context, shopperId *int64) (*dto.ShopperPreferencesResponse, error)
}

type shopperService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ShopperCache
	logger     logger.ILogger
}

func NewShopperService(uowFactory unitofwork.RepositoryFactory, cache *memory.ShopperCache, logger logger.ILogger) IShopperService {
	return &shopperService{
		uowFactory: uowFactory,
		cache:      cache,
		logger:     logger,
	}
}

func (s *shopperService) ShopperContext(ctx context.Context, shopperId *int64) *executor.Shopper {
	if shopperId == nil {
		return nil
	}
	if shopper, ok := s.cache.Get(*shopperId); ok {
		return toExecutorShopper(shopper)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	shopper, err := uow.ShopperRepository().FindOne(ctx, specification.ByNumericID{ID: *shopperId})
	if err != nil {
		s.logger.Warn("SHOPPER", "Failed to load shopper context", map[string]interface{}{
			"shopper_id": *shopperId,
			"error":      err.Error(),
		})
		return &executor.Shopper{ID: *shopperId}
	}
	if shopper == nil {
		return nil
	}
	s.cache.Save(shopper)
	return toExecutorShopper(shopper)
}

// GetPreferences infers tastes from the shopper's most recent order lines
// and suggests unseen products from the favourite category.
func (s *shopperService) GetPreferences(ctx context.Context, shopperId *int64) (*dto.ShopperPreferencesResponse, error) {
	empty := &dto.ShopperPreferencesResponse{
		Message:         "No order history found",
		Preferences:     &dto.ShopperPreferences{FavoriteCategories: []dto.NamedCount{}, FavoriteBrands: []dto.NamedCount{}},
		Recommendations: []dto.ProductResponse{},
	}
	if shopperId == nil {
		return empty, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	orders, err := uow.OrderItemRepository().FindAll(ctx,
		specification.OrderedBy{ShopperID: *shopperId},
		specification.WithProduct{},
		specification.Scope(scope.OrderByCreatedDesc),
		specification.Pagination{Limit: preferenceOrderWindow},
	)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return empty, nil
	}

	prefs := summarizeOrders(orders)

	var recommendations []dto.ProductResponse
	if len(prefs.FavoriteCategories) > 0 {
		bought := make([]int64, 0, len(orders))
		for _, o := range orders {
			bought = append(bought, o.ProductId)
		}
		products, err := uow.ProductRepository().FindAll(ctx,
			specification.CategoryIn{Categories: []string{prefs.FavoriteCategories[0].Name}},
			specification.ExcludeIDs{IDs: bought},
			specification.RandomOrder{},
			specification.Pagination{Limit: preferenceRecommendSize},
		)
		if err != nil {
			return nil, err
		}
		recommendations = toProductResponses(products)
	}
	if recommendations == nil {
		recommendations = []dto.ProductResponse{}
	}

	return &dto.ShopperPreferencesResponse{
		Preferences:     prefs,
		Recommendations: recommendations,
	}, nil
}

// summarizeOrders skips order lines whose product no longer exists but
// still counts them in TotalOrders.
func summarizeOrders(orders []*entity.OrderItem) *dto.ShopperPreferences {
	categories := map[string]int{}
	brands := map[string]int{}
	priceRange := dto.PriceRange{Min: math.Inf(1)}
	var spent float64

	for _, o := range orders {
		if o.Product == nil {
			continue
		}
		categories[o.Product.Category]++
		brands[o.Product.Brand]++
		price := o.Product.RetailPrice
		priceRange.Min = math.Min(priceRange.Min, price)
		priceRange.Max = math.Max(priceRange.Max, price)
		spent += price
	}

	if math.IsInf(priceRange.Min, 1) {
		priceRange.Min = 0
	}
	priceRange.Avg = spent / float64(len(orders))

	return &dto.ShopperPreferences{
		FavoriteCategories: topCounts(categories, preferenceTopN),
		FavoriteBrands:     topCounts(brands, preferenceTopN),
		PriceRange:         priceRange,
		TotalOrders:        len(orders),
		TotalSpent:         spent,
	}
}

// topCounts orders by count, then name, so ties are stable.
func topCounts(counts map[string]int, n int) []dto.NamedCount {
	out := make([]dto.NamedCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, dto.NamedCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func toExecutorShopper(s *entity.Shopper) *executor.Shopper {
	return &executor.Shopper{
		ID:      s.Id,
		Age:     s.Age,
		Gender:  s.Gender,
		City:    s.City,
		Country: s.Country,
	}
}
