package specification

import "gorm.io/gorm"

// Specification defines the interface for query specifications
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// Scope adapts a plain GORM scope function, such as those in the scope
// package, to a Specification.
type Scope func(db *gorm.DB) *gorm.DB

func (s Scope) Apply(db *gorm.DB) *gorm.DB {
	return s(db)
}
