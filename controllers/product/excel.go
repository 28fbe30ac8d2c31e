package productcontroller

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/Gameminde/Zinouchawebsie/models"
	"github.com/Gameminde/Zinouchawebsie/store"
	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
)

// POST /api/admin/products/import
// Rows with a known ID update that product; other rows create products.
func ImportProductsFromExcel(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		ctx := c.Request.Context()
		sheet := xlFile.Sheets[0]
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			// 1️⃣ Known ID means update
			var existing *models.Product
			if id := cellValue(row, 0); id != "" {
				existing, err = st.GetProduct(ctx, id)
				if errors.Is(err, store.ErrNotFound) {
					existing = nil
				} else if err != nil {
					log.Printf("❌ Import row %d: %v", i+1, err)
					skippedCount++
					continue
				}
			}

			// 2️⃣ Parse the row over the existing product
			product, ok := productFromRow(row, existing)
			if !ok {
				skippedCount++
				continue
			}

			// 3️⃣ Save
			if existing != nil {
				if err := st.UpdateProduct(ctx, product); err != nil {
					log.Printf("❌ Import row %d: %v", i+1, err)
					skippedCount++
					continue
				}
				updatedCount++
				continue
			}
			if err := st.CreateProduct(ctx, product); err != nil {
				log.Printf("❌ Import row %d: %v", i+1, err)
				skippedCount++
				continue
			}
			createdCount++
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}

func cellValue(row *xlsx.Row, index int) string {
	if row == nil || index >= len(row.Cells) {
		return ""
	}
	return strings.TrimSpace(row.Cells[index].String())
}

// productFromRow builds a product from a sheet row. With a base product only
// the non-blank cells overwrite it; without one, name, category and price are
// required.
func productFromRow(row *xlsx.Row, base *models.Product) (*models.Product, bool) {
	if row == nil {
		return nil, false
	}
	get := func(index int) string { return cellValue(row, index) }
	set := func(dst *string, index int) {
		if raw := get(index); raw != "" {
			*dst = raw
		}
	}

	p := &models.Product{ID: get(0), Sizes: pq.StringArray{}, Colors: pq.StringArray{}, Images: pq.StringArray{}}
	if base != nil {
		copied := *base
		p = &copied
	}

	set(&p.Name, 1)
	set(&p.Description, 2)
	set(&p.Category, 5)
	set(&p.Subcategory, 6)
	set(&p.Brand, 7)

	if raw := get(3); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, false
		}
		p.Price = price
	} else if base == nil {
		return nil, false
	}
	if raw := get(4); raw != "" {
		sale, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, false
		}
		p.SalePrice = decimal.NewNullDecimal(sale)
	}

	for index, dst := range map[int]*pq.StringArray{8: &p.Sizes, 9: &p.Colors, 10: &p.Images} {
		if raw := get(index); raw != "" {
			*dst = cleanList(strings.Split(raw, ","))
		}
	}

	if raw := get(11); raw != "" {
		stock, err := strconv.Atoi(raw)
		if err != nil || stock < 0 {
			return nil, false
		}
		p.Stock = stock
	}
	if raw := get(12); raw != "" {
		p.Featured = parseBool(raw)
	}
	if raw := get(13); raw != "" {
		p.IsNew = parseBool(raw)
	}

	if p.Name == "" || p.Category == "" || checkPrices(p) != nil {
		return nil, false
	}
	return p, true
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "oui":
		return true
	}
	return false
}
