package models

import "github.com/shopspring/decimal"

// AdminStats is the dashboard aggregate.
type AdminStats struct {
	TotalOrders    int64           `json:"total_orders"`
	Revenue        decimal.Decimal `json:"revenue"`
	TotalProducts  int64           `json:"total_products"`
	TotalCustomers int64           `json:"total_customers"`
}
