package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
)

// ExtractCells returns the parsed cell values of the rows inside area.
// Blank cells become nil; rows are padded to the width of the area.
// An inverted or non-positive area yields no rows.
func ExtractCells(rows [][]string, area models.CellRange) [][]interface{} {
	width := area.C2 - area.C1 + 1
	if width <= 0 || area.R1 < 1 || area.C1 < 1 || area.R2 < area.R1 {
		return nil
	}
	var result [][]interface{}

	for rowNum := area.R1; rowNum <= area.R2; rowNum++ {
		rowIdx := rowNum - 1 // rows is 0-based
		cells := make([]interface{}, width)
		if rowIdx < len(rows) {
			row := rows[rowIdx]
			for colNum := area.C1; colNum <= area.C2; colNum++ {
				colIdx := colNum - 1
				if colIdx >= len(row) {
					break
				}
				if v := strings.TrimSpace(row[colIdx]); v != "" {
					cells[colNum-area.C1] = parseValue(v)
				}
			}
		}
		result = append(result, cells)
	}

	return result
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
