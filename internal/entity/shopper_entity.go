package entity

import "time"

type Shopper struct {
	Id            int64
	FirstName     string
	LastName      string
	Email         string
	Age           int
	Gender        string
	State         string
	StreetAddress string
	PostalCode    string
	City          string
	Country       string
	Latitude      float64
	Longitude     float64
	TrafficSource string
	CreatedAt     *time.Time
}
