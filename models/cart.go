package models

import "time"

// Cart holds one row per user; line items live in a jsonb column.
type Cart struct {
	ID        string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string     `gorm:"uniqueIndex;not null" json:"user_id"` // one cart per user
	Items     []CartItem `gorm:"type:jsonb;not null;default:'[]';serializer:json" json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartItem is keyed by (ProductID, Size, Color).
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}
