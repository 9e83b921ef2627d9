package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// ReportSheet is the worksheet name of the XLSX report.
const ReportSheet = "Chart"

var reportHeader = []interface{}{
	"Category", "Actual Revenue", "Target Revenue", "Achievement %",
	"Variance", "Variance %", "Fill", "Selection",
}

// WriteXLSX writes one row per bar with its tooltip fields, shades the
// category cell with the bar color and adds a native Actual vs Target
// column chart.
func WriteXLSX(w io.Writer, frame *models.Frame) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ReportSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &reportHeader); err != nil {
		return err
	}

	var bars []models.Bar
	if frame != nil {
		bars = frame.Bars
	}

	styles := make(map[string]int)
	for i, b := range bars {
		row := i + 2
		values := []interface{}{b.Row.Category, b.Row.Actual, nil}
		if b.Row.Target != nil {
			values[2] = *b.Row.Target
		}
		if len(b.Tooltip) == 6 {
			for _, it := range b.Tooltip[3:] {
				values = append(values, it.Value)
			}
		} else {
			values = append(values, nil, nil, nil)
		}
		values = append(values, b.Fill, b.SelectionID.Key)

		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(ReportSheet, cell, &values); err != nil {
			return err
		}

		style, err := fillStyle(f, styles, b.Fill)
		if err != nil {
			return err
		}
		if style != 0 {
			if err := f.SetCellStyle(ReportSheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	if len(bars) > 0 {
		last := len(bars) + 1
		categories := fmt.Sprintf("%s!$A$2:$A$%d", ReportSheet, last)
		err := f.AddChart(ReportSheet, "J2", &excelize.Chart{
			Type: excelize.Col,
			Series: []excelize.ChartSeries{
				{Name: ReportSheet + "!$B$1", Categories: categories, Values: fmt.Sprintf("%s!$B$2:$B$%d", ReportSheet, last)},
				{Name: ReportSheet + "!$C$1", Categories: categories, Values: fmt.Sprintf("%s!$C$2:$C$%d", ReportSheet, last)},
			},
			Title: []excelize.RichTextRun{{Text: "Actual vs Target"}},
		})
		if err != nil {
			return err
		}
	}

	_, err := f.WriteTo(w)
	return err
}

// fillStyle returns a cached solid-fill style for color, or 0 when the
// color is not a usable hex value.
func fillStyle(f *excelize.File, cache map[string]int, color string) (int, error) {
	h, ok := hexDigits(color)
	if !ok {
		return 0, nil
	}
	if id, ok := cache[h]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{h}, Pattern: 1},
	})
	if err != nil {
		return 0, err
	}
	cache[h] = id
	return id, nil
}
