package executor

import (
	"context"
	"errors"
	"math/rand"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylista-be/internal/pkg/logger"
	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/lexical"
	"stylista-be/pkg/assistant/vocabulary"
)

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakeCatalog struct {
	products  []Product
	unsold    map[int64]int64
	trending  []int64
	favorites []string
	orders    []OrderLine

	failSearch bool
	failTrends bool

	lastCriteria *Criteria
	lastTrend    *TrendQuery
	lastPool     *PoolQuery
	poolCalls    int
}

func (f *fakeCatalog) SearchProducts(_ context.Context, c Criteria) ([]Product, error) {
	f.lastCriteria = &c
	if f.failSearch {
		return nil, errors.New("db down")
	}
	var out []Product
	for _, p := range f.products {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	if c.Limit > 0 && len(out) > c.Limit {
		out = out[:c.Limit]
	}
	return out, nil
}

func matches(p Product, c Criteria) bool {
	contains := func(s, sub string) bool { return strings.Contains(strings.ToLower(s), strings.ToLower(sub)) }
	if len(c.Categories) > 0 {
		hit := false
		for _, cat := range c.Categories {
			hit = hit || contains(p.Category, cat)
		}
		if !hit {
			return false
		}
	}
	if c.Brand != "" && !contains(p.Brand, c.Brand) {
		return false
	}
	if c.Department != "" && p.Department != c.Department {
		return false
	}
	if c.MinPrice != nil && p.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && p.Price > *c.MaxPrice {
		return false
	}
	if c.Query != "" && !contains(p.Name, c.Query) && !contains(p.Brand, c.Query) && !contains(p.Category, c.Query) {
		return false
	}
	return true
}

func (f *fakeCatalog) ProductsByIDs(_ context.Context, ids []int64) ([]Product, error) {
	want := map[int64]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var out []Product
	for _, p := range f.products {
		if want[p.ID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) TrendingProductIDs(_ context.Context, q TrendQuery) ([]int64, error) {
	f.lastTrend = &q
	if f.failTrends {
		return nil, errors.New("timeout")
	}
	return f.trending, nil
}

func (f *fakeCatalog) RecommendationPool(_ context.Context, q PoolQuery) ([]Product, error) {
	f.lastPool = &q
	f.poolCalls++
	var out []Product
	for _, p := range f.products {
		if matches(p, Criteria{Categories: q.Categories, Department: q.Department}) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeCatalog) CountUnsold(_ context.Context, ids []int64) (map[int64]int64, error) {
	out := map[int64]int64{}
	for _, id := range ids {
		if n, ok := f.unsold[id]; ok {
			out[id] = n
		}
	}
	return out, nil
}

func (f *fakeCatalog) FindProduct(_ context.Context, id int64) (*Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, ErrProductNotFound
}

func (f *fakeCatalog) RecentOrders(_ context.Context, _ int64, since time.Time, limit int) ([]OrderLine, error) {
	var out []OrderLine
	for _, o := range f.orders {
		if o.CreatedAt.After(since) {
			out = append(out, o)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeCatalog) FavoriteCategories(context.Context, int64, int) ([]string, error) {
	return f.favorites, nil
}

func seedCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: []Product{
			{ID: 1, Name: "Trail Fleece", Brand: "Columbia", Category: "Active", Department: "Men", Price: 64.5},
			{ID: 2, Name: "Running Tights", Brand: "Columbia", Category: "Active", Department: "Women", Price: 38},
			{ID: 3, Name: "Rain Shell", Brand: "Columbia", Category: "Outerwear & Coats", Department: "Women", Price: 120},
			{ID: 4, Name: "511 Slim", Brand: "Levi's", Category: "Jeans", Department: "Men", Price: 49.99},
			{ID: 5, Name: "Wrap Dress", Brand: "Lucky Brand", Category: "Dresses", Department: "Women", Price: 79},
			{ID: 6, Name: "Slip Dress", Brand: "Calvin Klein", Category: "Dresses", Department: "Women", Price: 99},
			{ID: 7, Name: "Wool Suit", Brand: "Dockers", Category: "Suits & Sport Coats", Department: "Women", Price: 240},
			{ID: 8, Name: "Lace Bralette", Brand: "Hanes", Category: "Intimates", Department: "Women", Price: 18},
		},
		unsold: map[int64]int64{1: 15, 2: 3, 4: 40, 5: 1, 6: 11, 7: 2, 8: 25},
	}
}

func newExecutor(c Catalog, seed int64) *Executor {
	v := vocabulary.Default()
	opts := DefaultOptions()
	opts.Rand = rand.New(rand.NewSource(seed))
	opts.Now = func() time.Time { return fixedNow }
	return New(c, lexical.NewExtractor(v), v, opts, logger.NewNopLogger())
}

func TestAvailabilityFor(t *testing.T) {
	assert.Equal(t, Availability{Tier: TierInStock, Count: 15}, AvailabilityFor(15))
	assert.Equal(t, Availability{Tier: TierInStock, Count: 11}, AvailabilityFor(11))
	assert.Equal(t, Availability{Tier: TierLowStock, Count: 10}, AvailabilityFor(10))
	assert.Equal(t, Availability{Tier: TierLowStock, Count: 3}, AvailabilityFor(3))
	assert.Equal(t, Availability{Tier: TierOutOfStock}, AvailabilityFor(0))
	assert.Equal(t, Availability{Tier: TierOutOfStock}, AvailabilityFor(-2))
}

func TestExecute_SearchBrandAndCategory(t *testing.T) {
	cat := seedCatalog()
	out := newExecutor(cat, 1).Execute(context.Background(), action.SearchProducts{Brand: "Columbia", Category: "Active"}, Request{})

	require.NotNil(t, cat.lastCriteria)
	assert.Equal(t, "Columbia", cat.lastCriteria.Brand)
	assert.Equal(t, []string{"Active"}, cat.lastCriteria.Categories)
	assert.Equal(t, 8, cat.lastCriteria.Limit)

	assert.Equal(t, StatusFound, out.Status)
	require.Len(t, out.Products, 2)
	assert.Equal(t, int64(2), out.Products[0].ID, "ascending price")
	assert.Equal(t, Availability{Tier: TierLowStock, Count: 3}, out.Products[0].Availability)
	assert.Equal(t, Availability{Tier: TierInStock, Count: 15}, out.Products[1].Availability)
	assert.False(t, out.Degraded)
}

func TestExecute_SearchNormalizesFilters(t *testing.T) {
	cat := seedCatalog()
	cmd := action.SearchProducts{Brand: "all", Category: "dresses", Department: "womens", Query: "popular items", Limit: 1}
	out := newExecutor(cat, 1).Execute(context.Background(), cmd, Request{})

	assert.Equal(t, "", cat.lastCriteria.Brand)
	assert.Equal(t, []string{"Dresses"}, cat.lastCriteria.Categories)
	assert.Equal(t, "Women", cat.lastCriteria.Department)
	assert.Equal(t, "", cat.lastCriteria.Query)
	require.Len(t, out.Products, 1)
	assert.Equal(t, "Wrap Dress", out.Products[0].Name)
}

func TestExecute_SearchCategorySet(t *testing.T) {
	cat := seedCatalog()
	cmd := action.SearchProducts{Categories: []string{"Swim", "Jeans", "Intimates"}}
	out := newExecutor(cat, 1).Execute(context.Background(), cmd, Request{})

	assert.Equal(t, []string{"Swim", "Jeans", "Intimates"}, cat.lastCriteria.Categories)
	require.Len(t, out.Products, 2)
	assert.Equal(t, "Lace Bralette", out.Products[0].Name)
}

func TestExecute_SearchEmpty(t *testing.T) {
	out := newExecutor(seedCatalog(), 1).Execute(context.Background(), action.SearchProducts{Brand: "Speedo"}, Request{})
	assert.Equal(t, StatusEmpty, out.Status)
	assert.Empty(t, out.Products)
}

func TestExecute_TrendsKeepRankOrder(t *testing.T) {
	cat := seedCatalog()
	cat.trending = []int64{6, 2, 99, 4}
	out := newExecutor(cat, 1).Execute(context.Background(), action.ShowTrends{Category: "all"}, Request{})

	require.NotNil(t, cat.lastTrend)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), cat.lastTrend.Since)
	assert.Equal(t, "", cat.lastTrend.Category)
	assert.Equal(t, 10, cat.lastTrend.Limit)

	require.Len(t, out.Products, 3)
	assert.Equal(t, []int64{6, 2, 4}, out.ProductIDs())
	assert.Equal(t, action.ShowTrends{Category: "all", TimeframeDays: 30}, out.Command)
}

func TestExecute_TrendsCategoryAndWindow(t *testing.T) {
	cat := seedCatalog()
	newExecutor(cat, 1).Execute(context.Background(), action.ShowTrends{Category: "lingerie", TimeframeDays: 7}, Request{Shopper: &Shopper{ID: 9, Gender: "M"}})

	assert.Equal(t, "Intimates", cat.lastTrend.Category)
	assert.Equal(t, fixedNow.AddDate(0, 0, -7), cat.lastTrend.Since)
}

func TestExecute_RecommendIntersectsStyleAndOccasion(t *testing.T) {
	cat := seedCatalog()
	shopper := &Shopper{ID: 5, Gender: "F"}
	out := newExecutor(cat, 42).Execute(context.Background(), action.Recommend{Style: "formal", Occasion: "wedding"}, Request{Shopper: shopper})

	require.NotNil(t, cat.lastPool)
	assert.Equal(t, []string{"Suits & Sport Coats", "Dresses"}, cat.lastPool.Categories)
	assert.Equal(t, "Women", cat.lastPool.Department)
	assert.Equal(t, StatusFound, out.Status)
	assert.ElementsMatch(t, []int64{5, 6, 7}, out.ProductIDs())
}

func TestExecute_RecommendIsReproducibleWithSeed(t *testing.T) {
	cat := seedCatalog()
	cmd := action.Recommend{}

	first := newExecutor(cat, 7).Execute(context.Background(), cmd, Request{})
	second := newExecutor(seedCatalog(), 7).Execute(context.Background(), cmd, Request{})

	assert.Len(t, first.Products, 8)
	assert.Equal(t, first.ProductIDs(), second.ProductIDs())
	assert.Nil(t, cat.lastPool.Categories)
}

func TestExecute_RecommendPersonalWithoutHistoryIsUnconstrained(t *testing.T) {
	cat := seedCatalog()
	out := newExecutor(cat, 3).Execute(context.Background(), action.Recommend{Style: "personal"}, Request{Shopper: &Shopper{ID: 8, Gender: "F"}})

	require.NotNil(t, cat.lastPool)
	assert.Empty(t, cat.lastPool.Categories)
	assert.Equal(t, "Women", cat.lastPool.Department)
	assert.Equal(t, StatusFound, out.Status)
	assert.NotEmpty(t, out.Products)
}

func TestExecute_RecommendUnknownStyleIsUnconstrained(t *testing.T) {
	cat := seedCatalog()
	out := newExecutor(cat, 3).Execute(context.Background(), action.Recommend{Style: "cottagecore"}, Request{})

	require.NotNil(t, cat.lastPool)
	assert.Empty(t, cat.lastPool.Categories)
	assert.NotEmpty(t, out.Products)
}

func TestExecute_RecommendDisjointWhitelists(t *testing.T) {
	cat := seedCatalog()
	out := newExecutor(cat, 1).Execute(context.Background(), action.Recommend{Style: "athletic", Occasion: "wedding"}, Request{})

	assert.Equal(t, StatusEmpty, out.Status)
	assert.Zero(t, cat.poolCalls)
}

func TestExecute_RecommendPersonalUsesFavorites(t *testing.T) {
	cat := seedCatalog()
	cat.favorites = []string{"Jeans"}
	out := newExecutor(cat, 1).Execute(context.Background(), action.Recommend{Style: "personal"}, Request{Shopper: &Shopper{ID: 3, Gender: "M"}})

	assert.Equal(t, []string{"Jeans"}, cat.lastPool.Categories)
	assert.Equal(t, "Men", cat.lastPool.Department)
	assert.Equal(t, []int64{4}, out.ProductIDs())
}

func TestExecute_CheckInventory(t *testing.T) {
	cat := seedCatalog()
	e := newExecutor(cat, 1)
	ctx := context.Background()

	out := e.Execute(ctx, action.CheckInventory{}, Request{})
	assert.Equal(t, StatusMissingParameter, out.Status)
	assert.Equal(t, "product_id", out.Missing)

	out = e.Execute(ctx, action.CheckInventory{ProductID: action.Int64(404)}, Request{})
	assert.Equal(t, StatusNotFound, out.Status)

	tests := []struct {
		id   int64
		want Availability
	}{
		{1, Availability{Tier: TierInStock, Count: 15}},
		{2, Availability{Tier: TierLowStock, Count: 3}},
		{3, Availability{Tier: TierOutOfStock}},
	}
	for _, tt := range tests {
		out = e.Execute(ctx, action.CheckInventory{ProductID: action.Int64(tt.id)}, Request{})
		require.Equal(t, StatusFound, out.Status)
		require.NotNil(t, out.Product)
		assert.Equal(t, tt.want, out.Product.Availability)
	}
}

func TestExecute_OrderHistory(t *testing.T) {
	cat := seedCatalog()
	cat.orders = []OrderLine{
		{OrderID: 1, Product: cat.products[0], Status: "Shipped", CreatedAt: fixedNow.AddDate(0, 0, -3)},
		{OrderID: 2, Product: cat.products[3], Status: "Complete", CreatedAt: fixedNow.AddDate(0, -6, 0)},
	}
	e := newExecutor(cat, 1)

	out := e.Execute(context.Background(), action.OrderHistory{}, Request{})
	assert.Equal(t, StatusNoIdentity, out.Status)
	assert.Empty(t, out.Orders)

	out = e.Execute(context.Background(), action.OrderHistory{}, Request{Shopper: &Shopper{ID: 12}})
	assert.Equal(t, StatusFound, out.Status)
	assert.Len(t, out.Orders, 2)

	out = e.Execute(context.Background(), action.OrderHistory{Timeframe: "week", TimeframeDays: 7}, Request{Shopper: &Shopper{ID: 12}})
	require.Len(t, out.Orders, 1)
	assert.Equal(t, int64(1), out.Orders[0].OrderID)
}

func TestExecute_UnknownActionFallsBackToLexicalSearch(t *testing.T) {
	cat := seedCatalog()
	out := newExecutor(cat, 1).Execute(context.Background(), action.Unknown{Name: "compare_prices"}, Request{Text: "jeans under $60"})

	assert.True(t, out.Degraded)
	assert.Contains(t, out.Reason, "compare_prices")
	assert.Equal(t, []string{"Jeans"}, cat.lastCriteria.Categories)
	assert.Equal(t, []int64{4}, out.ProductIDs())
}

func TestExecute_CatalogErrorDegrades(t *testing.T) {
	cat := seedCatalog()
	cat.failTrends = true
	out := newExecutor(cat, 1).Execute(context.Background(), action.ShowTrends{Category: "Dresses"}, Request{Text: "trending dresses"})

	assert.True(t, out.Degraded)
	assert.Equal(t, StatusFound, out.Status)
	assert.Equal(t, action.KindSearchProducts, out.Command.Kind())
	assert.Equal(t, []string{"Dresses"}, cat.lastCriteria.Categories)
}

func TestExecute_FallbackFailureIsExplicit(t *testing.T) {
	cat := seedCatalog()
	cat.failSearch = true
	out := newExecutor(cat, 1).Execute(context.Background(), action.SearchProducts{Category: "Jeans"}, Request{Text: "jeans"})

	assert.Equal(t, StatusFailed, out.Status)
	assert.True(t, out.Degraded)
	assert.Empty(t, out.Products)
}

func TestExecute_NoAction(t *testing.T) {
	out := newExecutor(seedCatalog(), 1).Execute(context.Background(), action.NoAction{}, Request{})
	assert.Equal(t, StatusNoAction, out.Status)
}
