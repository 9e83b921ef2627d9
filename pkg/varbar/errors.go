package varbar

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnknownFormat indicates an output format that cannot be written.
var ErrUnknownFormat = errors.New("unknown output format")

// RenderError represents an error while loading input or writing output.
// Layout problems never surface as errors; they produce an empty frame.
type RenderError struct {
	Input string
	Stage string // "load", "write"
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render error for %q (%s): %v", e.Input, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// NewRenderError creates a new RenderError.
func NewRenderError(input, stage string, err error) *RenderError {
	return &RenderError{
		Input: input,
		Stage: stage,
		Err:   err,
	}
}
