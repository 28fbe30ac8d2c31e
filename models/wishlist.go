package models

import (
	"time"

	"github.com/lib/pq"
)

type Wishlist struct {
	ID         string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string         `gorm:"uniqueIndex;not null" json:"user_id"`
	ProductIDs pq.StringArray `gorm:"type:text[];default:'{}'" json:"product_ids"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
