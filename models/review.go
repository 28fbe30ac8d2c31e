package models

import (
	"time"

	"github.com/lib/pq"
)

type Review struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	ProductID string         `gorm:"not null;index" json:"product_id"`
	UserID    string         `gorm:"not null;index" json:"user_id"`
	Rating    int            `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment   string         `gorm:"type:text" json:"comment"`
	Images    pq.StringArray `gorm:"type:text[];default:'{}'" json:"images"`
	CreatedAt time.Time      `json:"created_at"`
}
