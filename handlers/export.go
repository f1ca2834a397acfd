package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize/v2"
	"github.com/labstack/echo/v4"

	"github.com/Madhav-Gupta-28/perfumery-backend-go/catalog"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/models"
	"github.com/Madhav-Gupta-28/perfumery-backend-go/utils"
)

const (
	exportSheet       = "Products"
	exportTimeLayout  = "2006-01-02 15:04:05"
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportHeaderStyle = `{"font":{"bold":true},"fill":{"type":"pattern","pattern":1,"color":["#e8d9c4"]},"alignment":{"horizontal":"center"}}`
)

var exportColumns = []string{"ID", "Name", "Brand", "Category", "Price", "Volume", "Rating", "Rating Source", "Featured", "Updated At"}

// ExportProducts downloads the catalog as an xlsx sheet, sorted by name.
func (h *Handler) ExportProducts(c echo.Context) error {
	ctx, cancel := h.storeCtx(c)
	defer cancel()

	products, err := h.products.FindAll(ctx)
	if err != nil {
		return h.storeFailure(c, "Failed to fetch products", err)
	}

	f, err := buildProductSheet(catalog.Sort(products, catalog.SortName))
	if err != nil {
		return h.storeFailure(c, "Failed to build export", err)
	}

	fileName := fmt.Sprintf("products_%s.xlsx", h.now().Format("20060102_150405"))
	c.Response().Header().Set(echo.HeaderContentType, xlsxContentType)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	c.Response().WriteHeader(http.StatusOK)
	_, err = f.WriteTo(c.Response())
	return err
}

func buildProductSheet(products []models.Product) (*excelize.File, error) {
	f := excelize.NewFile()
	f.NewSheet(exportSheet)
	f.DeleteSheet("Sheet1")

	if err := f.SetColWidth(exportSheet, "A", "J", 22); err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(exportHeaderStyle)
	if err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(exportColumns))
	for i, name := range exportColumns {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: name}
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for n, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			p.ID,
			p.Name,
			p.Brand,
			string(p.Category),
			optional(p.Price, utils.FormatRupiah),
			p.Volume,
			optional(p.Rating, func(r float64) string { return strconv.FormatFloat(r, 'f', -1, 64) }),
			p.RatingSource,
			strconv.FormatBool(p.Featured),
			timestamp(p.UpdatedAt),
		}
		if err := sw.SetRow(cell, row); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}
	return f, nil
}

func optional(v *float64, format func(float64) string) string {
	if v == nil {
		return "-"
	}
	return format(*v)
}

func timestamp(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(exportTimeLayout)
}
