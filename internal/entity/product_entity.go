package entity

type Product struct {
	Id                   int64
	Cost                 float64
	Category             string
	Name                 string
	Brand                string
	RetailPrice          float64
	Department           string
	Sku                  string
	DistributionCenterId int64
}

// ProductCount pairs a product with an aggregate, used for trending and
// unsold-stock queries.
type ProductCount struct {
	ProductId int64
	Count     int64
}

type CategoryCount struct {
	Category string
	Count    int64
}
