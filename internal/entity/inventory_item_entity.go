package entity

import "time"

// InventoryItem is one physical unit of a product. The product columns are
// denormalized in the export and kept as-is.
type InventoryItem struct {
	Id                          int64
	ProductId                   int64
	CreatedAt                   *time.Time
	SoldAt                      *time.Time
	Cost                        float64
	ProductCategory             string
	ProductName                 string
	ProductBrand                string
	ProductRetailPrice          float64
	ProductDepartment           string
	ProductSku                  string
	ProductDistributionCenterId int64
}
