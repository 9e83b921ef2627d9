package parser

import (
	"strings"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/xuri/excelize/v2"
)

// LookupDefinedRange resolves a workbook defined name (for example
// "ChartData") to the first cell range it refers to.
func LookupDefinedRange(f *excelize.File, name string) (models.CellRange, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, name) {
			continue
		}
		if area, ok := parseRangeReference(dn.RefersTo); ok {
			return area, true
		}
	}
	return models.CellRange{}, false
}

// parseRangeReference parses a defined name reference.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10; only the first
// comma-separated area is used.
func parseRangeReference(ref string) (models.CellRange, bool) {
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "="))
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(part[:idx], "'")
		area := parseRangeToArea(part[idx+1:])
		if area == nil {
			continue
		}
		area.Sheet = sheet
		return *area, true
	}

	return models.CellRange{}, false
}

// parseRangeToArea parses a range string like $A$1:$D$10 to a CellRange.
func parseRangeToArea(rangeStr string) *models.CellRange {
	// Remove $ signs
	rangeStr = strings.ReplaceAll(rangeStr, "$", "")

	// Split by :
	parts := strings.Split(rangeStr, ":")
	if len(parts) != 2 {
		return nil
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return nil
	}

	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return nil
	}

	// Reversed references such as C1:A2 name the same block.
	if startRow > endRow {
		startRow, endRow = endRow, startRow
	}
	if startCol > endCol {
		startCol, endCol = endCol, startCol
	}

	return &models.CellRange{
		R1: startRow,
		C1: startCol,
		R2: endRow,
		C2: endCol,
	}
}

// areaRef formats area as an A1 range like "A1:D10".
func areaRef(area models.CellRange) string {
	start, err := excelize.CoordinatesToCellName(area.C1, area.R1)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(area.C2, area.R2)
	if err != nil {
		return ""
	}
	return start + ":" + end
}
