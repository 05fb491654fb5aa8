package dto

type ProductResponse struct {
	Id           int64   `json:"id"`
	Name         string  `json:"name"`
	Brand        string  `json:"brand"`
	Category     string  `json:"category"`
	Department   string  `json:"department"`
	Sku          string  `json:"sku"`
	RetailPrice  float64 `json:"retail_price"`
	Availability string  `json:"availability,omitempty"`
	InStockCount *int64  `json:"in_stock_count,omitempty"`
}

type SearchProductsRequest struct {
	Category   string   `query:"category" validate:"max=255"`
	Brand      string   `query:"brand" validate:"max=255"`
	Department string   `query:"department" validate:"omitempty,max=255"`
	MinPrice   *float64 `query:"min_price" validate:"omitempty,gte=0"`
	MaxPrice   *float64 `query:"max_price" validate:"omitempty,gte=0"`
	Query      string   `query:"q" validate:"max=255"`
	Limit      int      `query:"limit" validate:"omitempty,min=1,max=100"`
}

type SearchParams struct {
	Category   string   `json:"category"`
	Brand      string   `json:"brand"`
	Department string   `json:"department"`
	MinPrice   *float64 `json:"min_price"`
	MaxPrice   *float64 `json:"max_price"`
	Query      string   `json:"query"`
}

type SearchProductsResponse struct {
	Products     []ProductResponse `json:"products"`
	TotalCount   int64             `json:"total_count"`
	SearchParams SearchParams      `json:"search_params"`
	Suggestions  []string          `json:"suggestions"`
}

type TrendingProductsRequest struct {
	Category  string `query:"category" validate:"max=255"`
	Timeframe string `query:"timeframe"`
	Limit     int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

type TrendingProductsResponse struct {
	TrendingProducts []ProductResponse `json:"trending_products"`
	Timeframe        string            `json:"timeframe"`
	Category         string            `json:"category"`
	TotalTrending    int               `json:"total_trending"`
}

type AvailabilityResponse struct {
	ProductId    int64  `json:"product_id"`
	Name         string `json:"name"`
	Availability string `json:"availability"`
	InStockCount int64  `json:"in_stock_count"`
	Message      string `json:"message"`
}
