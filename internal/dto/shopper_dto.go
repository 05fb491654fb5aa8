package dto

type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

type ShopperPreferences struct {
	FavoriteCategories []NamedCount `json:"favorite_categories"`
	FavoriteBrands     []NamedCount `json:"favorite_brands"`
	PriceRange         PriceRange   `json:"price_range"`
	TotalOrders        int          `json:"total_orders"`
	TotalSpent         float64      `json:"total_spent"`
}

type ShopperPreferencesResponse struct {
	Message         string              `json:"message,omitempty"`
	Preferences     *ShopperPreferences `json:"preferences"`
	Recommendations []ProductResponse   `json:"recommendations"`
}
