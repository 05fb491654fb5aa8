package main

import (
	"errors"

	"stylista-be/internal/entity"
)

func joinErr(errs ...error) error {
	return errors.Join(errs...)
}

func parseProduct(r record) (*entity.Product, error) {
	id, e1 := r.integer("id")
	cost, e2 := r.decimal("cost")
	price, e3 := r.decimal("retail_price")
	dc, e4 := r.integer("distribution_center_id")
	if err := joinErr(e1, e2, e3, e4); err != nil {
		return nil, err
	}
	return &entity.Product{
		Id:                   id,
		Cost:                 cost,
		Category:             r.str("category"),
		Name:                 r.str("name"),
		Brand:                r.str("brand"),
		RetailPrice:          price,
		Department:           r.str("department"),
		Sku:                  r.str("sku"),
		DistributionCenterId: dc,
	}, nil
}

func parseShopper(r record) (*entity.Shopper, error) {
	id, e1 := r.integer("id")
	age, e2 := r.integer("age")
	lat, e3 := r.decimal("latitude")
	lng, e4 := r.decimal("longitude")
	created, e5 := r.timestamp("created_at")
	if err := joinErr(e1, e2, e3, e4, e5); err != nil {
		return nil, err
	}
	return &entity.Shopper{
		Id:            id,
		FirstName:     r.str("first_name"),
		LastName:      r.str("last_name"),
		Email:         r.str("email"),
		Age:           int(age),
		Gender:        r.str("gender"),
		State:         r.str("state"),
		StreetAddress: r.str("street_address"),
		PostalCode:    r.str("postal_code"),
		City:          r.str("city"),
		Country:       r.str("country"),
		Latitude:      lat,
		Longitude:     lng,
		TrafficSource: r.str("traffic_source"),
		CreatedAt:     created,
	}, nil
}

func parseInventoryItem(r record) (*entity.InventoryItem, error) {
	id, e1 := r.integer("id")
	productID, e2 := r.integer("product_id")
	created, e3 := r.timestamp("created_at")
	sold, e4 := r.timestamp("sold_at")
	cost, e5 := r.decimal("cost")
	price, e6 := r.decimal("product_retail_price")
	dc, e7 := r.integer("product_distribution_center_id")
	if err := joinErr(e1, e2, e3, e4, e5, e6, e7); err != nil {
		return nil, err
	}
	return &entity.InventoryItem{
		Id:                          id,
		ProductId:                   productID,
		CreatedAt:                   created,
		SoldAt:                      sold,
		Cost:                        cost,
		ProductCategory:             r.str("product_category"),
		ProductName:                 r.str("product_name"),
		ProductBrand:                r.str("product_brand"),
		ProductRetailPrice:          price,
		ProductDepartment:           r.str("product_department"),
		ProductSku:                  r.str("product_sku"),
		ProductDistributionCenterId: dc,
	}, nil
}

func parseOrderItem(r record) (*entity.OrderItem, error) {
	id, e1 := r.integer("id")
	orderID, e2 := r.integer("order_id")
	userID, e3 := r.integer("user_id")
	productID, e4 := r.integer("product_id")
	inventoryID, e5 := r.integer("inventory_item_id")
	salePrice, e6 := r.decimal("sale_price")
	created, e7 := r.timestamp("created_at")
	shipped, e8 := r.timestamp("shipped_at")
	delivered, e9 := r.timestamp("delivered_at")
	returned, e10 := r.timestamp("returned_at")
	if err := joinErr(e1, e2, e3, e4, e5, e6, e7, e8, e9, e10); err != nil {
		return nil, err
	}
	return &entity.OrderItem{
		Id:              id,
		OrderId:         orderID,
		UserId:          userID,
		ProductId:       productID,
		InventoryItemId: inventoryID,
		Status:          r.str("status"),
		SalePrice:       salePrice,
		CreatedAt:       created,
		ShippedAt:       shipped,
		DeliveredAt:     delivered,
		ReturnedAt:      returned,
	}, nil
}
