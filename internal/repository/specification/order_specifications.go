package specification

import (
	"time"

	"gorm.io/gorm"
)

type OrderedBy struct {
	ShopperID int64
}

func (s OrderedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.ShopperID)
}

type CreatedSince struct {
	Since time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.Since)
}

// WithProduct preloads the ordered product.
type WithProduct struct{}

func (s WithProduct) Apply(db *gorm.DB) *gorm.DB {
	return db.Preload("Product")
}
