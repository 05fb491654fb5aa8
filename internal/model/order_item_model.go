package model

import "time"

type OrderItem struct {
	Id              int64 `gorm:"primaryKey"`
	OrderId         int64 `gorm:"index"`
	UserId          int64 `gorm:"index"`
	ProductId       int64 `gorm:"index"`
	InventoryItemId int64
	Status          string     `gorm:"type:varchar(50)"`
	SalePrice       float64    `gorm:"type:numeric(10,2)"`
	CreatedAt       *time.Time `gorm:"index"`
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	ReturnedAt      *time.Time

	Product *Product `gorm:"foreignKey:ProductId"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
