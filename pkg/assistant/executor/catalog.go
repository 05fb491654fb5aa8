package executor

import (
	"context"
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("product not found")

// Product is a catalog item as the assistant sees it.
type Product struct {
	ID           int64
	Name         string
	Brand        string
	Category     string
	Department   string
	SKU          string
	Price        float64
	Availability Availability
}

// Shopper is the optional shopping context of the signed-in user.
type Shopper struct {
	ID      int64
	Age     int
	Gender  string
	City    string
	Country string
}

// Criteria is a conjunctive product filter. Empty fields are unconstrained;
// Categories is a disjunctive set of substring matches.
type Criteria struct {
	Categories []string
	Brand      string
	Department string
	MinPrice   *float64
	MaxPrice   *float64
	Query      string
	Limit      int
}

type TrendQuery struct {
	Since    time.Time
	Category string
	Limit    int
}

type PoolQuery struct {
	Categories []string
	Department string
	Limit      int
}

type OrderLine struct {
	OrderID   int64
	Product   Product
	Status    string
	SalePrice float64
	CreatedAt time.Time
}

// Catalog is the read-only view of the store the executor runs against.
type Catalog interface {
	SearchProducts(ctx context.Context, c Criteria) ([]Product, error)
	// ProductsByIDs returns the products in no particular order.
	ProductsByIDs(ctx context.Context, ids []int64) ([]Product, error)
	// TrendingProductIDs ranks products by order count since q.Since.
	TrendingProductIDs(ctx context.Context, q TrendQuery) ([]int64, error)
	RecommendationPool(ctx context.Context, q PoolQuery) ([]Product, error)
	// CountUnsold returns unsold inventory units per product id. Missing
	// ids have none.
	CountUnsold(ctx context.Context, ids []int64) (map[int64]int64, error)
	// FindProduct returns ErrProductNotFound for unknown ids.
	FindProduct(ctx context.Context, id int64) (*Product, error)
	RecentOrders(ctx context.Context, shopperID int64, since time.Time, limit int) ([]OrderLine, error)
	FavoriteCategories(ctx context.Context, shopperID int64, limit int) ([]string, error)
}
