package http

import (
	"fmt"
	"time"

	"storefront-service/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var productColumns = []string{"ID", "Name", "Category", "Price", "Featured", "Description", "Image URL", "Created At", "Updated At"}

func productWorkbook(products []domain.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, h := range productColumns {
		header.AddCell().SetString(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetString(p.ID.String())
		row.AddCell().SetString(p.Name)
		row.AddCell().SetString(p.Category)
		row.AddCell().SetString(p.Price.StringFixed(2))
		row.AddCell().SetBool(p.Featured)
		row.AddCell().SetString(p.Description)
		row.AddCell().SetString(p.ImageURL)
		row.AddCell().SetString(p.CreatedAt.Format(time.DateTime))
		row.AddCell().SetString(p.UpdatedAt.Format(time.DateTime))
	}
	return file, nil
}

func (h *Handler) ExportProducts(c *gin.Context) {
	products, err := h.catalogAdmin.ExportProducts(c.Request.Context(), identity(c))
	if err != nil {
		writeError(c, err)
		return
	}

	file, err := productWorkbook(products)
	if err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", xlsxContentType)
	if err := file.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}
