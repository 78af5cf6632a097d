package inventory

import (
	"fmt"

	"supermarket-backend/internal/supermarket"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// GET /api/products/export
// Streams the full product list as an .xlsx workbook.
func ExportProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sm, err := supermarket.ResolveForUser(c)
		if err != nil {
			return err
		}

		products, err := loadProducts(c, sm.ID)
		if err != nil {
			return err
		}

		f := excelize.NewFile()
		defer f.Close()

		sheet := f.GetSheetName(0)
		headers := []string{"Code", "Name", "Description", "Unit", "Cost", "Quantity left", "Category", "Supplier"}
		for i, h := range headers {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			if err := f.SetCellValue(sheet, cell, h); err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
			}
		}

		for rowIdx, p := range products {
			cost, _ := p.Cost.Float64()
			values := []any{p.Code, p.Name, p.Description, p.Unit, cost, p.QuantityLeft, p.CategoryName, p.SupplierName}
			for colIdx, v := range values {
				cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Could not build workbook")
				}
			}
		}

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not write workbook")
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", sm.Slug+"-products.xlsx"))
		return c.Send(buf.Bytes())
	}
}
