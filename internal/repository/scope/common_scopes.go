package scope

import "gorm.io/gorm"

func OrderByCreatedDesc(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func OrderByPriceAsc(db *gorm.DB) *gorm.DB {
	return db.Order("retail_price ASC").Order("id ASC")
}
