package specification

import (
	"strings"

	"gorm.io/gorm"
)

// CategoryLike matches any of the categories as a case-insensitive
// substring. Several categories combine with OR.
type CategoryLike struct {
	Categories []string
}

func (s CategoryLike) Apply(db *gorm.DB) *gorm.DB {
	var clauses []string
	var args []interface{}
	for _, c := range s.Categories {
		if strings.TrimSpace(c) == "" {
			continue
		}
		clauses = append(clauses, "category ILIKE ?")
		args = append(args, LikePattern(c))
	}
	if len(clauses) == 0 {
		return db
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// CategoryIn matches exact category names. An empty list leaves the query
// unconstrained.
type CategoryIn struct {
	Categories []string
}

func (s CategoryIn) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Categories) == 0 {
		return db
	}
	return db.Where("category IN ?", s.Categories)
}

type BrandLike struct {
	Brand string
}

func (s BrandLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("brand ILIKE ?", LikePattern(s.Brand))
}

type ByDepartment struct {
	Department string
}

func (s ByDepartment) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("department = ?", s.Department)
}

type PriceAtLeast struct {
	Min float64
}

func (s PriceAtLeast) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("retail_price >= ?", s.Min)
}

type PriceAtMost struct {
	Max float64
}

func (s PriceAtMost) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("retail_price <= ?", s.Max)
}

// ProductText matches the free-text query against name, brand and category.
type ProductText struct {
	Query string
}

func (s ProductText) Apply(db *gorm.DB) *gorm.DB {
	pattern := LikePattern(s.Query)
	return db.Where("(name ILIKE ? OR brand ILIKE ? OR category ILIKE ?)", pattern, pattern, pattern)
}

type ExcludeIDs struct {
	IDs []int64
}

func (s ExcludeIDs) Apply(db *gorm.DB) *gorm.DB {
	if len(s.IDs) == 0 {
		return db
	}
	return db.Where("id NOT IN ?", s.IDs)
}

// LikePattern escapes LIKE wildcards in user input before wrapping it.
func LikePattern(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(v)) + "%"
}

// RandomOrder samples rows instead of always returning the lowest ids.
type RandomOrder struct{}

func (s RandomOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("RANDOM()")
}
