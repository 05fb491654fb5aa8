package model

import "time"

// Shopper is a row of the catalog's users table. API callers are identified
// by JWT subject instead; the token may link them to a shopper id.
type Shopper struct {
	Id            int64  `gorm:"primaryKey"`
	FirstName     string `gorm:"type:varchar(255)"`
	LastName      string `gorm:"type:varchar(255)"`
	Email         string `gorm:"type:varchar(255)"`
	Age           int
	Gender        string `gorm:"type:varchar(20)"`
	State         string `gorm:"type:varchar(100)"`
	StreetAddress string `gorm:"type:varchar(255)"`
	PostalCode    string `gorm:"type:varchar(20)"`
	City          string `gorm:"type:varchar(100)"`
	Country       string `gorm:"type:varchar(100)"`
	Latitude      float64
	Longitude     float64
	TrafficSource string `gorm:"type:varchar(100)"`
	CreatedAt     *time.Time
}

func (Shopper) TableName() string {
	return "users"
}
