package entity

import "time"

type OrderItem struct {
	Id              int64
	OrderId         int64
	UserId          int64
	ProductId       int64
	InventoryItemId int64
	Status          string
	SalePrice       float64
	CreatedAt       *time.Time
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	ReturnedAt      *time.Time

	Product *Product
}
