package model

import "time"

type InventoryItem struct {
	Id                          int64 `gorm:"primaryKey"`
	ProductId                   int64 `gorm:"index"`
	CreatedAt                   *time.Time
	SoldAt                      *time.Time `gorm:"index"`
	Cost                        float64    `gorm:"type:numeric(10,2)"`
	ProductCategory             string     `gorm:"type:varchar(255)"`
	ProductName                 string     `gorm:"type:varchar(255)"`
	ProductBrand                string     `gorm:"type:varchar(255)"`
	ProductRetailPrice          float64    `gorm:"type:numeric(10,2)"`
	ProductDepartment           string     `gorm:"type:varchar(255)"`
	ProductSku                  string     `gorm:"type:varchar(255)"`
	ProductDistributionCenterId int64
}

func (InventoryItem) TableName() string {
	return "inventory_items"
}
