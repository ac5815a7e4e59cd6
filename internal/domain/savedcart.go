package domain

import "time"

// SavedCart is a denormalized snapshot of a past best cart, kept so the user
// can revisit a shopping plan after the deal menu that produced it is gone.
type SavedCart struct {
	ID         string     `json:"id"`
	SavedAt    time.Time  `json:"saved_at"`
	TotalPrice float64    `json:"total_price"`
	StoreCount int        `json:"store_count"`
	Stores     []StoreID  `json:"stores"`
	Items      []CartItem `json:"items"`
}
