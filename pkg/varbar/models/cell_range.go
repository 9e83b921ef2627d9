package models

// CellRange represents cell coordinate bounds of a worksheet region.
type CellRange struct {
	// Sheet is the owning sheet name (empty when implied).
	Sheet string `json:"sheet,omitempty"`
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Contains reports whether the 1-based cell (row, col) lies inside the range.
func (a CellRange) Contains(row, col int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}
