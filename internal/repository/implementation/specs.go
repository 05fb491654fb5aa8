package implementation

import (
	"stylista-be/internal/repository/specification"

	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// seedBatchSize bounds the rows per INSERT when loading the catalog export.
const seedBatchSize = 500
