// Package export renders news items as an Excel workbook.
package export

import (
	"bytes"
	"fmt"

	"news_monitor/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "IA en deporte"
	FileName    = "noticias-ia-deporte.xlsx"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Column describes one sheet column and the NewsItem key it is filled from.
type Column struct {
	Header string
	Key    string
	Width  float64
}

// Columns is the fixed layout of the export sheet, in order.
var Columns = []Column{
	{Header: "Título", Key: models.KeyTitle, Width: 80},
	{Header: "Resumen", Key: models.KeySummary, Width: 100},
	{Header: "Enlace", Key: models.KeyLink, Width: 70},
	{Header: "Fecha de publicación", Key: models.KeyPublishedAt, Width: 30},
}

// Workbook builds a single-sheet xlsx document with a header row and one row per item.
func Workbook(items []models.NewsItem) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, col := range Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		if err := f.SetColWidth(SheetName, name, name, col.Width); err != nil {
			return nil, fmt.Errorf("set width of %s: %w", col.Header, err)
		}
		header[i] = col.Header
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, item := range items {
		row := make([]interface{}, len(Columns))
		for j, col := range Columns {
			row[j] = item.Value(col.Key)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf, nil
}
