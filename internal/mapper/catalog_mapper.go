package mapper

import (
	"stylista-be/internal/entity"
	"stylista-be/internal/model"
)

type CatalogMapper struct{}

func NewCatalogMapper() *CatalogMapper {
	return &CatalogMapper{}
}

func (m *CatalogMapper) ProductToEntity(p *model.Product) *entity.Product {
	if p == nil {
		return nil
	}
	return &entity.Product{
		Id:                   p.Id,
		Cost:                 p.Cost,
		Category:             p.Category,
		Name:                 p.Name,
		Brand:                p.Brand,
		RetailPrice:          p.RetailPrice,
		Department:           p.Department,
		Sku:                  p.Sku,
		DistributionCenterId: p.DistributionCenterId,
	}
}

func (m *CatalogMapper) ProductToModel(p *entity.Product) *model.Product {
	if p == nil {
		return nil
	}
	return &model.Product{
		Id:                   p.Id,
		Cost:                 p.Cost,
		Category:             p.Category,
		Name:                 p.Name,
		Brand:                p.Brand,
		RetailPrice:          p.RetailPrice,
		Department:           p.Department,
		Sku:                  p.Sku,
		DistributionCenterId: p.DistributionCenterId,
	}
}

func (m *CatalogMapper) ProductsToEntities(models []*model.Product) []*entity.Product {
	entities := make([]*entity.Product, len(models))
	for i, p := range models {
		entities[i] = m.ProductToEntity(p)
	}
	return entities
}

func (m *CatalogMapper) InventoryItemToModel(i *entity.InventoryItem) *model.InventoryItem {
	if i == nil {
		return nil
	}
	return &model.InventoryItem{
		Id:                          i.Id,
		ProductId:                   i.ProductId,
		CreatedAt:                   i.CreatedAt,
		SoldAt:                      i.SoldAt,
		Cost:                        i.Cost,
		ProductCategory:             i.ProductCategory,
		ProductName:                 i.ProductName,
		ProductBrand:                i.ProductBrand,
		ProductRetailPrice:          i.ProductRetailPrice,
		ProductDepartment:           i.ProductDepartment,
		ProductSku:                  i.ProductSku,
		ProductDistributionCenterId: i.ProductDistributionCenterId,
	}
}

func (m *CatalogMapper) OrderItemToEntity(o *model.OrderItem) *entity.OrderItem {
	if o == nil {
		return nil
	}
	return &entity.OrderItem{
		Id:              o.Id,
		OrderId:         o.OrderId,
		UserId:          o.UserId,
		ProductId:       o.ProductId,
		InventoryItemId: o.InventoryItemId,
		Status:          o.Status,
		SalePrice:       o.SalePrice,
		CreatedAt:       o.CreatedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		ReturnedAt:      o.ReturnedAt,
		Product:         m.ProductToEntity(o.Product),
	}
}

func (m *CatalogMapper) OrderItemToModel(o *entity.OrderItem) *model.OrderItem {
	if o == nil {
		return nil
	}
	return &model.OrderItem{
		Id:              o.Id,
		OrderId:         o.OrderId,
		UserId:          o.UserId,
		ProductId:       o.ProductId,
		InventoryItemId: o.InventoryItemId,
		Status:          o.Status,
		SalePrice:       o.SalePrice,
		CreatedAt:       o.CreatedAt,
		ShippedAt:       o.ShippedAt,
		DeliveredAt:     o.DeliveredAt,
		ReturnedAt:      o.ReturnedAt,
	}
}

func (m *CatalogMapper) ShopperToEntity(s *model.Shopper) *entity.Shopper {
	if s == nil {
		return nil
	}
	return &entity.Shopper{
		Id:            s.Id,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Email:         s.Email,
		Age:           s.Age,
		Gender:        s.Gender,
		State:         s.State,
		StreetAddress: s.StreetAddress,
		PostalCode:    s.PostalCode,
		City:          s.City,
		Country:       s.Country,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		TrafficSource: s.TrafficSource,
		CreatedAt:     s.CreatedAt,
	}
}

func (m *CatalogMapper) ShopperToModel(s *entity.Shopper) *model.Shopper {
	if s == nil {
		return nil
	}
	return &model.Shopper{
		Id:            s.Id,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Email:         s.Email,
		Age:           s.Age,
		Gender:        s.Gender,
		State:         s.State,
		StreetAddress: s.StreetAddress,
		PostalCode:    s.PostalCode,
		City:          s.City,
		Country:       s.Country,
		Latitude:      s.Latitude,
		Longitude:     s.Longitude,
		TrafficSource: s.TrafficSource,
		CreatedAt:     s.CreatedAt,
	}
}
