package model

import "time"

const PropertyStatusSold = "Sold"

// Property is a listing. ExpectedPrice and SoldAt are nil when not recorded.
type Property struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"ownerId"`
	Status        string     `json:"status"`
	ExpectedPrice *float64   `json:"expectedPrice"`
	SoldAt        *time.Time `json:"soldAt"`
}
