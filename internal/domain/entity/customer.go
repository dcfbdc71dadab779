package entity

import "time"

// Customer represents a core domain entity without infrastructure concerns.
type Customer struct {
	ID             int64
	Code           string
	Name           string
	Phone          string
	Email          string
	Address        string
	NumberOfOrders int
	TotalExpense   float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
