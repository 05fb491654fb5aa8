package model

// Catalog tables are loaded from the retail CSV export and are read-only to
// the API. They carry no soft-delete columns.

type Product struct {
	Id                   int64   `gorm:"primaryKey"`
	Cost                 float64 `gorm:"type:numeric(10,2)"`
	Category             string  `gorm:"type:varchar(255);index"`
	Name                 string  `gorm:"type:varchar(255)"`
	Brand                string  `gorm:"type:varchar(255);index"`
	RetailPrice          float64 `gorm:"type:numeric(10,2)"`
	Department           string  `gorm:"type:varchar(255)"`
	Sku                  string  `gorm:"type:varchar(255)"`
	DistributionCenterId int64
}

func (Product) TableName() string {
	return "products"
}
