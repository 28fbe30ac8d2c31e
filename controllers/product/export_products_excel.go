package productcontroller

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// sheetHeaders is shared by export and import; list cells are comma separated.
var sheetHeaders = []string{
	"ID", "Name", "Description", "Price", "SalePrice", "Category", "Subcategory",
	"Brand", "Sizes", "Colors", "Images", "Stock", "Featured", "IsNew", "CreatedAt",
}

// GET /api/admin/products/export
func ExportProductsToExcel(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := st.ListProducts(c.Request.Context())
		if err != nil {
			log.Printf("❌ Failed to fetch products: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		file, err := productsWorkbook(products)
		if err != nil {
			log.Printf("❌ Failed to build workbook: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			log.Printf("❌ Failed to write Excel file: %v", err)
		}
	}
}

func productsWorkbook(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range sheetHeaders {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID)
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.Price.StringFixed(2))
		if p.SalePrice.Valid {
			row.AddCell().SetString(p.SalePrice.Decimal.StringFixed(2))
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Subcategory)
		row.AddCell().SetString(p.Brand)
		row.AddCell().SetString(strings.Join(p.Sizes, ","))
		row.AddCell().SetString(strings.Join(p.Colors, ","))
		row.AddCell().SetString(strings.Join(p.Images, ","))
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetString(strconv.FormatBool(p.Featured))
		row.AddCell().SetString(strconv.FormatBool(p.IsNew))
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
