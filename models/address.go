package models

import "time"

// Address is a saved address-book entry. Orders keep their own snapshot.
type Address struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID     string    `gorm:"not null;index" json:"user_id"`
	FirstName  string    `gorm:"size:100;not null" json:"first_name"`
	LastName   string    `gorm:"size:100;not null" json:"last_name"`
	Address    string    `gorm:"type:text;not null" json:"address"`
	City       string    `gorm:"size:100;not null" json:"city"`
	PostalCode string    `gorm:"size:20;not null" json:"postal_code"`
	Phone      string    `gorm:"size:20;not null" json:"phone"`
	IsDefault  bool      `gorm:"default:false" json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}
