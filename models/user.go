package models

import "time"

// User is the identity record mirrored from the identity provider.
type User struct {
	ID              string    `gorm:"primaryKey;type:varchar(128)" json:"id"`
	Email           string    `gorm:"uniqueIndex;size:255" json:"email"`
	FirstName       string    `gorm:"size:255" json:"first_name"`
	LastName        string    `gorm:"size:255" json:"last_name"`
	ProfileImageURL string    `gorm:"size:1024" json:"profile_image_url"`
	IsAdmin         bool      `gorm:"default:false" json:"is_admin"`
	Cart            *Cart     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Wishlist        *Wishlist `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Orders          []Order   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Reviews         []Review  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Addresses       []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
