package productcontroller

import (
	"errors"
	"strings"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// -------- Request Structs --------

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=255"`
	Description string           `json:"description" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	Category    string           `json:"category" binding:"required,max=100"`
	Subcategory string           `json:"subcategory" binding:"max=100"`
	Brand       string           `json:"brand" binding:"max=100"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	Images      []string         `json:"images"`
	Stock       int              `json:"stock" binding:"min=0"`
	Featured    bool             `json:"featured"`
	IsNew       bool             `json:"is_new"`
}

// UpdateProductRequest only touches the fields that are present.
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=255"`
	Description    *string          `json:"description" binding:"omitempty,min=1"`
	Price          *decimal.Decimal `json:"price"`
	SalePrice      *decimal.Decimal `json:"sale_price"`
	ClearSalePrice bool             `json:"clear_sale_price"`
	Category       *string          `json:"category" binding:"omitempty,min=1,max=100"`
	Subcategory    *string          `json:"subcategory" binding:"omitempty,max=100"`
	Brand          *string          `json:"brand" binding:"omitempty,max=100"`
	Sizes          *[]string        `json:"sizes"`
	Colors         *[]string        `json:"colors"`
	Images         *[]string        `json:"images"`
	Stock          *int             `json:"stock" binding:"omitempty,min=0"`
	Featured       *bool            `json:"featured"`
	IsNew          *bool            `json:"is_new"`
}

// -------- Helpers --------

var (
	errNegativePrice  = errors.New("price must not be negative")
	errSaleAbovePrice = errors.New("sale_price must not exceed price")
)

func checkPrices(p *models.Product) error {
	if p.Price.IsNegative() {
		return errNegativePrice
	}
	if p.SalePrice.Valid {
		if p.SalePrice.Decimal.IsNegative() {
			return errNegativePrice
		}
		if p.SalePrice.Decimal.GreaterThan(p.Price) {
			return errSaleAbovePrice
		}
	}
	return nil
}

// cleanList trims entries and drops blanks.
func cleanList(values []string) pq.StringArray {
	out := pq.StringArray{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (r CreateProductRequest) toProduct() *models.Product {
	p := &models.Product{
		Name:        strings.TrimSpace(r.Name),
		Description: r.Description,
		Price:       *r.Price,
		Category:    strings.TrimSpace(r.Category),
		Subcategory: r.Subcategory,
		Brand:       r.Brand,
		Sizes:       cleanList(r.Sizes),
		Colors:      cleanList(r.Colors),
		Images:      cleanList(r.Images),
		Stock:       r.Stock,
		Featured:    r.Featured,
		IsNew:       r.IsNew,
	}
	if r.SalePrice != nil {
		p.SalePrice = decimal.NewNullDecimal(*r.SalePrice)
	}
	return p
}

func (r UpdateProductRequest) applyTo(p *models.Product) {
	if r.Name != nil {
		p.Name = strings.TrimSpace(*r.Name)
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.ClearSalePrice {
		p.SalePrice = decimal.NullDecimal{}
	} else if r.SalePrice != nil {
		p.SalePrice = decimal.NewNullDecimal(*r.SalePrice)
	}
	if r.Category != nil {
		p.Category = strings.TrimSpace(*r.Category)
	}
	if r.Subcategory != nil {
		p.Subcategory = *r.Subcategory
	}
	if r.Brand != nil {
		p.Brand = *r.Brand
	}
	if r.Sizes != nil {
		p.Sizes = cleanList(*r.Sizes)
	}
	if r.Colors != nil {
		p.Colors = cleanList(*r.Colors)
	}
	if r.Images != nil {
		p.Images = cleanList(*r.Images)
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	if r.Featured != nil {
		p.Featured = *r.Featured
	}
	if r.IsNew != nil {
		p.IsNew = *r.IsNew
	}
}
