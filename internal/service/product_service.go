package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stylista-be/internal/dto"
	"stylista-be/internal/entity"
	"stylista-be/internal/pkg/serverutils"
	"stylista-be/internal/repository/scope"
	"stylista-be/internal/repository/specification"
	"stylista-be/internal/repository/unitofwork"
	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/executor"
	"stylista-be/pkg/assistant/response"
	"stylista-be/pkg/assistant/vocabulary"
)

const (
	defaultSearchLimit   = 20
	defaultTrendingLimit = 10
	defaultTrendingDays  = 30
	suggestionCount      = 5
)

var ErrProductNotFound = fmt.Errorf("product %w", serverutils.ErrNotFound)

type IProductService interface {
	Search(ctx context.Context, request *dto.SearchProductsRequest) (*dto.SearchProductsResponse, error)
	Trending(ctx context.Context, request *dto.TrendingProductsRequest) (*dto.TrendingProductsResponse, error)
	Availability(ctx context.Context, productId int64) (*dto.AvailabilityResponse, error)
}

type productService struct {
	uowFactory unitofwork.RepositoryFactory
	catalog    executor.Catalog
	vocab      *vocabulary.Vocabulary
	now        func() time.Time
}

func NewProductService(uowFactory unitofwork.RepositoryFactory, catalog executor.Catalog, vocab *vocabulary.Vocabulary) IProductService {
	return &productService{
		uowFactory: uowFactory,
		catalog:    catalog,
		vocab:      vocab,
		now:        time.Now,
	}
}

// Search filters like the assistant's search but returns the total match
// count and, when nothing matches, the most stocked categories.
func (s *productService) Search(ctx context.Context, request *dto.SearchProductsRequest) (*dto.SearchProductsResponse, error) {
	if request.MinPrice != nil && request.MaxPrice != nil && *request.MinPrice > *request.MaxPrice {
		return nil, fmt.Errorf("%w: min_price is greater than max_price", serverutils.ErrBadRequest)
	}

	limit := request.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	criteria := executor.Criteria{
		Department: s.vocab.Department(request.Department),
		MinPrice:   request.MinPrice,
		MaxPrice:   request.MaxPrice,
		Query:      strings.TrimSpace(request.Query),
	}
	if !vocabulary.IsWildcard(request.Category) {
		criteria.Categories = []string{s.vocab.Normalize(request.Category)}
	}
	if !vocabulary.IsWildcard(request.Brand) {
		criteria.Brand = strings.TrimSpace(request.Brand)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := CriteriaSpecs(criteria)

	total, err := uow.ProductRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	products, err := uow.ProductRepository().FindAll(ctx, append(specs,
		specification.Scope(scope.OrderByPriceAsc),
		specification.Pagination{Limit: limit},
	)...)
	if err != nil {
		return nil, err
	}

	suggestions := []string{}
	if total == 0 {
		top, err := uow.ProductRepository().TopCategories(ctx, suggestionCount)
		if err != nil {
			return nil, err
		}
		for _, c := range top {
			suggestions = append(suggestions, c.Category)
		}
	}

	return &dto.SearchProductsResponse{
		Products:   toProductResponses(products),
		TotalCount: total,
		SearchParams: dto.SearchParams{
			Category:   request.Category,
			Brand:      request.Brand,
			Department: request.Department,
			MinPrice:   request.MinPrice,
			MaxPrice:   request.MaxPrice,
			Query:      request.Query,
		},
		Suggestions: suggestions,
	}, nil
}

// Trending accepts the timeframe as days ("14") or as a phrase ("last
// month"), the same way the assistant reads it.
func (s *productService) Trending(ctx context.Context, request *dto.TrendingProductsRequest) (*dto.TrendingProductsResponse, error) {
	limit := request.Limit
	if limit <= 0 {
		limit = defaultTrendingLimit
	}
	days := action.ParseTimeframeDays(request.Timeframe, defaultTrendingDays)

	category := ""
	if !vocabulary.IsWildcard(request.Category) {
		category = s.vocab.Normalize(request.Category)
	}

	ids, err := s.catalog.TrendingProductIDs(ctx, executor.TrendQuery{
		Since:    s.now().AddDate(0, 0, -days),
		Category: category,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	products, err := s.catalog.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]executor.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	ranked := make([]dto.ProductResponse, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ranked = append(ranked, catalogProductResponse(p))
		}
	}

	return &dto.TrendingProductsResponse{
		TrendingProducts: ranked,
		Timeframe:        fmt.Sprintf("%d days", days),
		Category:         category,
		TotalTrending:    len(ranked),
	}, nil
}

func (s *productService) Availability(ctx context.Context, productId int64) (*dto.AvailabilityResponse, error) {
	product, err := s.catalog.FindProduct(ctx, productId)
	if err != nil {
		if errors.Is(err, executor.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	counts, err := s.catalog.CountUnsold(ctx, []int64{productId})
	if err != nil {
		return nil, err
	}
	availability := executor.AvailabilityFor(counts[productId])

	return &dto.AvailabilityResponse{
		ProductId:    product.ID,
		Name:         product.Name,
		Availability: string(availability.Tier),
		InStockCount: availability.Count,
		Message:      response.AvailabilityText(availability),
	}, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		Id:          p.Id,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Department:  p.Department,
		Sku:         p.Sku,
		RetailPrice: p.RetailPrice,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, len(products))
	for i, p := range products {
		out[i] = toProductResponse(p)
	}
	return out
}

// catalogProductResponse includes stock only when the product was enriched
// with availability.
func catalogProductResponse(p executor.Product) dto.ProductResponse {
	r := dto.ProductResponse{
		Id:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Department:  p.Department,
		Sku:         p.SKU,
		RetailPrice: p.Price,
	}
	if p.Availability.Tier != "" {
		count := p.Availability.Count
		r.Availability = string(p.Availability.Tier)
		r.InStockCount = &count
	}
	return r
}
