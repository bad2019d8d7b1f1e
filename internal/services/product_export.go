package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Products"

var exportHeaders = []string{"Name", "Price", "Quantity", "Status", "Color", "Details", "Images", "Created At", "Updated At"}

var (
	cellBorder = []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
	headerStyleDef = &excelize.Style{
		Border:    cellBorder,
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"96B753"}},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", ShrinkToFit: true},
	}
	dataStyleDef = &excelize.Style{
		Border:    cellBorder,
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	}
)

// ExportFilename names an export produced at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("report_products_%s.xlsx", t.UTC().Format("20060102_150405"))
}

// ExportProducts writes every product, newest first, as an xlsx workbook.
func (s *ProductService) ExportProducts(ctx context.Context, w io.Writer) error {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(exportSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(headerStyleDef)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	dataStyle, err := f.NewStyle(dataStyleDef)
	if err != nil {
		return fmt.Errorf("failed to create data style: %w", err)
	}

	streamWriter, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return fmt.Errorf("failed to open stream writer: %w", err)
	}
	if err := streamWriter.SetColWidth(1, len(exportHeaders), 24); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, h := range exportHeaders {
		header[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := streamWriter.SetRow("A1", header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for n, p := range products {
		createdAt := p.CreatedAt.UTC().Format("2006-01-02 15:04:05")
		updatedAt := p.UpdatedAt.UTC().Format("2006-01-02 15:04:05")
		if updatedAt == createdAt {
			updatedAt = "-"
		}

		row := []interface{}{
			excelize.Cell{StyleID: dataStyle, Value: p.Name},
			excelize.Cell{StyleID: dataStyle, Value: p.Price.InexactFloat64()},
			excelize.Cell{StyleID: dataStyle, Value: p.Quantity},
			excelize.Cell{StyleID: dataStyle, Value: p.EffectiveStatus()},
			excelize.Cell{StyleID: dataStyle, Value: p.Color},
			excelize.Cell{StyleID: dataStyle, Value: p.Details},
			excelize.Cell{StyleID: dataStyle, Value: strings.Join(p.Images, "\n")},
			excelize.Cell{StyleID: dataStyle, Value: createdAt},
			excelize.Cell{StyleID: dataStyle, Value: updatedAt},
		}
		cell, err := excelize.CoordinatesToCellName(1, n+2)
		if err != nil {
			return err
		}
		if err := streamWriter.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}

	if err := streamWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush workbook: %w", err)
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
