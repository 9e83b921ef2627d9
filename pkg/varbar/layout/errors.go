package layout

import "errors"

// Reasons an update draws nothing. Callers treat these as silent no-ops.
var (
	// ErrNoDataView indicates the host delivered no data view.
	ErrNoDataView = errors.New("no data view")
	// ErrNoCategorical indicates the data view has no categorical mapping.
	ErrNoCategorical = errors.New("no categorical data")
	// ErrNoCategories indicates the category column is missing.
	ErrNoCategories = errors.New("missing category column")
	// ErrNoActuals indicates the actual value column is missing.
	ErrNoActuals = errors.New("missing actual values column")
	// ErrLengthMismatch indicates the category and actual columns disagree in length.
	ErrLengthMismatch = errors.New("category and actual columns differ in length")
	// ErrPlotTooSmall indicates the viewport leaves no room inside the margins.
	ErrPlotTooSmall = errors.New("viewport too small for plot area")
)
