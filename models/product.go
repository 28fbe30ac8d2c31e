package models

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string              `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name        string              `gorm:"size:255;not null" json:"name"`
	Description string              `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	SalePrice   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"sale_price"`
	Category    string              `gorm:"size:100;not null;index" json:"category"`
	Subcategory string              `gorm:"size:100" json:"subcategory"`
	Brand       string              `gorm:"size:100" json:"brand"`
	Sizes       pq.StringArray      `gorm:"type:text[];default:'{}'" json:"sizes"`
	Colors      pq.StringArray      `gorm:"type:text[];default:'{}'" json:"colors"`
	Images      pq.StringArray      `gorm:"type:text[];default:'{}'" json:"images"`
	Stock       int                 `gorm:"not null;default:0" json:"stock"`
	Featured    bool                `gorm:"default:false" json:"featured"`
	IsNew       bool                `gorm:"default:false" json:"is_new"`
	Reviews     []Review            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
