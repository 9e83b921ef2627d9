package parser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates the input file extension is not recognised.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// ErrNoSheets indicates the workbook has no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrEmptySheet indicates no data region was found.
var ErrEmptySheet = errors.New("no data found")

// ErrRangeNotFound indicates the requested defined name does not exist.
var ErrRangeNotFound = errors.New("defined range not found")

// ParseError represents an error while reading a data source.
type ParseError struct {
	Source string // file, sheet or range being read
	Cell   string // cell, range or line reference, if known
	Err    error
}

func (e *ParseError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("parse error in %q at %s: %v", e.Source, e.Cell, e.Err)
	}
	return fmt.Sprintf("parse error in %q: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(source, cell string, err error) *ParseError {
	return &ParseError{
		Source: source,
		Cell:   cell,
		Err:    err,
	}
}
