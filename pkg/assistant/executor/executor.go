// Package executor runs a resolved action command against the catalog.
// Catalog failures and unknown actions degrade to a lexical search of the
// shopper's text; nothing here returns an error to the caller.
package executor

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"stylista-be/internal/pkg/logger"
	"stylista-be/pkg/assistant/action"
	"stylista-be/pkg/assistant/lexical"
	"stylista-be/pkg/assistant/vocabulary"
)

const module = "EXECUTOR"

type Options struct {
	SearchLimit    int
	TrendLimit     int
	TrendDays      int
	RecommendCount int
	// PoolSize bounds the candidate set recommendations are sampled from.
	PoolSize      int
	OrderLimit    int
	FavoriteCount int
	OrderLookback time.Duration
	Rand          *rand.Rand
	Now           func() time.Time
}

func DefaultOptions() Options {
	return Options{
		SearchLimit:    8,
		TrendLimit:     10,
		TrendDays:      action.DefaultTrendDays,
		RecommendCount: 8,
		PoolSize:       100,
		OrderLimit:     10,
		FavoriteCount:  3,
		OrderLookback:  365 * 24 * time.Hour,
	}
}

type Request struct {
	Text    string
	Shopper *Shopper
}

type Executor struct {
	catalog   Catalog
	extractor *lexical.Extractor
	vocab     *vocabulary.Vocabulary
	opts      Options
	logger    logger.ILogger

	mu  sync.Mutex
	rnd *rand.Rand
}

func New(catalog Catalog, extractor *lexical.Extractor, vocab *vocabulary.Vocabulary, opts Options, logger logger.ILogger) *Executor {
	def := DefaultOptions()
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = def.SearchLimit
	}
	if opts.TrendLimit <= 0 {
		opts.TrendLimit = def.TrendLimit
	}
	if opts.TrendDays <= 0 {
		opts.TrendDays = def.TrendDays
	}
	if opts.RecommendCount <= 0 {
		opts.RecommendCount = def.RecommendCount
	}
	if opts.PoolSize < opts.RecommendCount {
		opts.PoolSize = max(def.PoolSize, opts.RecommendCount)
	}
	if opts.OrderLimit <= 0 {
		opts.OrderLimit = def.OrderLimit
	}
	if opts.FavoriteCount <= 0 {
		opts.FavoriteCount = def.FavoriteCount
	}
	if opts.OrderLookback <= 0 {
		opts.OrderLookback = def.OrderLookback
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Executor{
		catalog:   catalog,
		extractor: extractor,
		vocab:     vocab,
		opts:      opts,
		logger:    logger,
		rnd:       rnd,
	}
}

func (e *Executor) Execute(ctx context.Context, cmd action.Command, req Request) Outcome {
	var (
		out Outcome
		err error
	)

	switch c := cmd.(type) {
	case action.SearchProducts:
		out, err = e.search(ctx, c)
	case action.ShowTrends:
		out, err = e.trends(ctx, c)
	case action.Recommend:
		out, err = e.recommend(ctx, c, req.Shopper)
	case action.CheckInventory:
		out, err = e.inventory(ctx, c)
	case action.OrderHistory:
		out, err = e.orderHistory(ctx, c, req.Shopper)
	case action.NoAction:
		return Outcome{Command: c, Status: StatusNoAction}
	case action.Unknown:
		return e.fallback(ctx, req.Text, fmt.Sprintf("unknown action %q", c.Name))
	default:
		return e.fallback(ctx, req.Text, "no command")
	}

	if err != nil {
		e.logger.Warn(module, "Catalog query failed, falling back to lexical search", map[string]interface{}{
			"action": cmd.Kind(),
			"error":  err.Error(),
		})
		return e.fallback(ctx, req.Text, err.Error())
	}
	return out
}

// fallback re-reads the shopper's own words and runs them as a search.
func (e *Executor) fallback(ctx context.Context, text, reason string) Outcome {
	cmd := e.extractor.Extract(text).Search(0)
	out, err := e.search(ctx, cmd)
	if err != nil {
		e.logger.Error(module, "Fallback search failed", map[string]interface{}{
			"reason": reason,
			"error":  err.Error(),
		})
		return Outcome{Command: cmd, Status: StatusFailed, Degraded: true, Reason: reason}
	}
	out.Degraded = true
	out.Reason = reason
	return out
}

func (e *Executor) search(ctx context.Context, c action.SearchProducts) (Outcome, error) {
	criteria := Criteria{
		Department: e.vocab.Department(c.Department),
		MinPrice:   c.MinPrice,
		MaxPrice:   c.MaxPrice,
		Limit:      c.Limit,
	}
	if criteria.Limit <= 0 {
		criteria.Limit = e.opts.SearchLimit
	}
	categories := c.Categories
	if len(categories) == 0 {
		categories = []string{c.Category}
	}
	for _, cat := range categories {
		if !vocabulary.IsWildcard(cat) {
			criteria.Categories = append(criteria.Categories, e.vocab.Normalize(cat))
		}
	}
	if !vocabulary.IsWildcard(c.Brand) {
		criteria.Brand = strings.TrimSpace(c.Brand)
	}
	if q := strings.TrimSpace(c.Query); q != "" && !strings.EqualFold(q, e.vocab.GenericQuery) {
		criteria.Query = q
	}

	products, err := e.catalog.SearchProducts(ctx, criteria)
	if err != nil {
		return Outcome{}, fmt.Errorf("search products: %w", err)
	}
	products, err = e.withAvailability(ctx, products)
	if err != nil {
		return Outcome{}, err
	}
	return listOutcome(c, searchTitle(criteria), products), nil
}

func (e *Executor) trends(ctx context.Context, c action.ShowTrends) (Outcome, error) {
	days := c.TimeframeDays
	if days <= 0 {
		days = e.opts.TrendDays
	}
	category := ""
	if !vocabulary.IsWildcard(c.Category) {
		category = e.vocab.Normalize(c.Category)
	}

	ids, err := e.catalog.TrendingProductIDs(ctx, TrendQuery{
		Since:    e.opts.Now().AddDate(0, 0, -days),
		Category: category,
		Limit:    e.opts.TrendLimit,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("trending products: %w", err)
	}

	var products []Product
	if len(ids) > 0 {
		found, err := e.catalog.ProductsByIDs(ctx, ids)
		if err != nil {
			return Outcome{}, fmt.Errorf("load trending products: %w", err)
		}
		products = rankOrder(ids, found)
	}
	products, err = e.withAvailability(ctx, products)
	if err != nil {
		return Outcome{}, err
	}

	title := fmt.Sprintf("Trending over the last %d days", days)
	if category != "" {
		title = fmt.Sprintf("Trending in %s over the last %d days", category, days)
	}
	cmd := action.ShowTrends{Category: c.Category, TimeframeDays: days}
	return listOutcome(cmd, title, products), nil
}

// rankOrder re-sorts found into the order of ids, dropping ids without a
// product.
func rankOrder(ids []int64, found []Product) []Product {
	byID := make(map[int64]Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	out := make([]Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out
}

func (e *Executor) recommend(ctx context.Context, c action.Recommend, shopper *Shopper) (Outcome, error) {
	categories, constrained, err := e.recommendCategories(ctx, c, shopper)
	if err != nil {
		return Outcome{}, err
	}
	if constrained && len(categories) == 0 {
		return Outcome{Command: c, Status: StatusEmpty, Title: "Recommended for you"}, nil
	}

	department := ""
	if shopper != nil {
		department = e.vocab.Department(shopper.Gender)
	}

	pool, err := e.catalog.RecommendationPool(ctx, PoolQuery{
		Categories: categories,
		Department: department,
		Limit:      e.opts.PoolSize,
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("recommendation pool: %w", err)
	}

	picked, err := e.withAvailability(ctx, e.sample(pool, e.opts.RecommendCount))
	if err != nil {
		return Outcome{}, err
	}
	return listOutcome(c, "Recommended for you", picked), nil
}

// recommendCategories resolves style, occasion and category into a
// whitelist. constrained is false when nothing narrows the pool.
func (e *Executor) recommendCategories(ctx context.Context, c action.Recommend, shopper *Shopper) ([]string, bool, error) {
	style := strings.ToLower(strings.TrimSpace(c.Style))
	occasion := strings.ToLower(strings.TrimSpace(c.Occasion))

	var (
		set         []string
		constrained bool
	)
	if style == e.vocab.PersonalStyle && shopper != nil {
		favorites, err := e.catalog.FavoriteCategories(ctx, shopper.ID, e.opts.FavoriteCount)
		if err != nil {
			return nil, false, fmt.Errorf("favorite categories: %w", err)
		}
		if len(favorites) > 0 {
			set, constrained = favorites, true
		}
	} else if cats, ok := e.vocab.StyleCategories[style]; ok {
		set, constrained = cats, true
	}

	if cats, ok := e.vocab.OccasionCategories[occasion]; ok {
		if constrained {
			set = intersect(set, cats)
		} else {
			set, constrained = cats, true
		}
	}

	if !vocabulary.IsWildcard(c.Category) {
		category := e.vocab.Normalize(c.Category)
		if constrained {
			set = intersect(set, []string{category})
		} else {
			set, constrained = []string{category}, true
		}
	}
	return set, constrained, nil
}

func intersect(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, s := range b {
		in[strings.ToLower(s)] = true
	}
	var out []string
	for _, s := range a {
		if in[strings.ToLower(s)] {
			out = append(out, s)
		}
	}
	return out
}

func (e *Executor) sample(pool []Product, n int) []Product {
	if len(pool) <= n {
		e.mu.Lock()
		e.rnd.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
		e.mu.Unlock()
		return pool
	}
	e.mu.Lock()
	perm := e.rnd.Perm(len(pool))
	e.mu.Unlock()
	out := make([]Product, n)
	for i := 0; i < n; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}

func (e *Executor) inventory(ctx context.Context, c action.CheckInventory) (Outcome, error) {
	if c.ProductID == nil {
		return Outcome{Command: c, Status: StatusMissingParameter, Missing: "product_id"}, nil
	}
	product, err := e.catalog.FindProduct(ctx, *c.ProductID)
	if errors.Is(err, ErrProductNotFound) {
		return Outcome{Command: c, Status: StatusNotFound}, nil
	}
	if err != nil {
		return Outcome{}, fmt.Errorf("find product %d: %w", *c.ProductID, err)
	}
	counts, err := e.catalog.CountUnsold(ctx, []int64{product.ID})
	if err != nil {
		return Outcome{}, fmt.Errorf("count stock: %w", err)
	}
	product.Availability = AvailabilityFor(counts[product.ID])
	return Outcome{Command: c, Status: StatusFound, Title: "Inventory", Product: product}, nil
}

func (e *Executor) orderHistory(ctx context.Context, c action.OrderHistory, shopper *Shopper) (Outcome, error) {
	if shopper == nil || shopper.ID == 0 {
		return Outcome{Command: c, Status: StatusNoIdentity}, nil
	}
	lookback := e.opts.OrderLookback
	if c.TimeframeDays > 0 {
		lookback = time.Duration(c.TimeframeDays) * 24 * time.Hour
	}
	orders, err := e.catalog.RecentOrders(ctx, shopper.ID, e.opts.Now().Add(-lookback), e.opts.OrderLimit)
	if err != nil {
		return Outcome{}, fmt.Errorf("recent orders: %w", err)
	}
	status := StatusFound
	if len(orders) == 0 {
		status = StatusEmpty
	}
	return Outcome{Command: c, Status: status, Title: "Your recent orders", Orders: orders}, nil
}

func (e *Executor) withAvailability(ctx context.Context, products []Product) ([]Product, error) {
	if len(products) == 0 {
		return products, nil
	}
	ids := make([]int64, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	counts, err := e.catalog.CountUnsold(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("count stock: %w", err)
	}
	for i := range products {
		products[i].Availability = AvailabilityFor(counts[products[i].ID])
	}
	return products, nil
}

func listOutcome(cmd action.Command, title string, products []Product) Outcome {
	status := StatusFound
	if len(products) == 0 {
		status = StatusEmpty
	}
	return Outcome{Command: cmd, Status: status, Title: title, Products: products}
}

func searchTitle(c Criteria) string {
	parts := make([]string, 0, 3)
	if c.Department != "" {
		parts = append(parts, c.Department+"'s")
	}
	if c.Brand != "" {
		parts = append(parts, c.Brand)
	}
	if len(c.Categories) > 0 {
		parts = append(parts, strings.Join(c.Categories, " / "))
	}
	if len(parts) == 0 {
		return "Here are some products I found"
	}
	return "Here are some " + strings.Join(parts, " ") + " products I found"
}
