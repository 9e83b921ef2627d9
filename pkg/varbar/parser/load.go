// Package parser loads chart data views from JSON, XLSX and CSV files.
package parser

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/xuri/excelize/v2"
)

// DefaultRangeName is the defined name looked up when no range is given.
const DefaultRangeName = "ChartData"

// Options selects where tabular data lives inside a workbook.
type Options struct {
	// Sheet is the worksheet to read (default: the range's sheet, else the first sheet).
	Sheet string
	// Range is a defined name (default DefaultRangeName) or an A1 range like "A1:D10".
	Range string
}

// Load reads a data view from path, choosing the reader by extension.
func Load(path string, opts Options) (*models.DataView, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(bytes.NewReader(data))
	case ".xlsx", ".xlsm":
		return LoadXLSX(bytes.NewReader(data), opts)
	case ".csv":
		return LoadCSV(bytes.NewReader(data), strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadJSON decodes a data view in the host's JSON shape.
func LoadJSON(r io.Reader) (*models.DataView, error) {
	var dv models.DataView
	dec := json.NewDecoder(r)
	if err := dec.Decode(&dv); err != nil {
		return nil, NewParseError("json", "", err)
	}
	return &dv, nil
}

// LoadXLSX reads a workbook and builds a data view from its chart range.
func LoadXLSX(r io.Reader, opts Options) (*models.DataView, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}

	area, hasArea, err := resolveArea(f, opts)
	if err != nil {
		source := opts.Sheet
		if source == "" {
			source = sheets[0]
		}
		return nil, NewParseError(source, opts.Range, err)
	}

	sheetName := opts.Sheet
	if sheetName == "" && hasArea && area.Sheet != "" {
		sheetName = area.Sheet
	}
	if sheetName == "" {
		sheetName = sheets[0]
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, NewParseError(sheetName, "", err)
	}

	if !hasArea {
		detected, ok := DetectDataRange(rows, DefaultTableParams())
		if !ok {
			return nil, NewParseError(sheetName, "", ErrEmptySheet)
		}
		area = detected
	}

	cells := ExtractCells(rows, area)
	if len(cells) == 0 {
		return nil, NewParseError(sheetName, areaRef(area), ErrEmptySheet)
	}

	return BuildDataView(sheetName, headerStrings(cells[0]), cells[1:]), nil
}

// resolveArea finds an explicit range: an A1 range, the named range from
// opts, or the default defined name when present.
func resolveArea(f *excelize.File, opts Options) (models.CellRange, bool, error) {
	if opts.Range != "" {
		if area := parseRangeToArea(opts.Range); area != nil {
			return *area, true, nil
		}
		if area, ok := parseRangeReference(opts.Range); ok {
			return area, true, nil
		}
		if area, ok := LookupDefinedRange(f, opts.Range); ok {
			return area, true, nil
		}
		return models.CellRange{}, false, fmt.Errorf("%w: %s", ErrRangeNotFound, opts.Range)
	}

	area, ok := LookupDefinedRange(f, DefaultRangeName)
	return area, ok, nil
}

// LoadCSV reads comma-separated records; the first record is the header.
func LoadCSV(r io.Reader, source string) (*models.DataView, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return nil, NewParseError(source, fmt.Sprintf("line %d, column %d", perr.Line, perr.Column), err)
		}
		return nil, NewParseError(source, "", err)
	}
	if len(records) == 0 {
		return nil, NewParseError(source, "", ErrEmptySheet)
	}

	width := len(records[0])
	cells := ExtractCells(records, models.CellRange{R1: 1, C1: 1, R2: len(records), C2: width})
	return BuildDataView(source, headerStrings(cells[0]), cells[1:]), nil
}

func headerStrings(row []interface{}) []string {
	header := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			header[i] = fmt.Sprint(v)
		}
	}
	return header
}
