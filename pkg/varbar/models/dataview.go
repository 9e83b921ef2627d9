// Package models defines data structures for chart input and rendered frames.
package models

// Data roles a value column may be bound to.
const (
	RoleCategory = "category"
	RoleActual   = "actual"
	RoleTarget   = "target"
	RoleColorHex = "colorHex"
)

// Viewport is the drawing area assigned by the host, in pixels.
type Viewport struct {
	// Width is the viewport width.
	Width float64 `json:"width" yaml:"width"`
	// Height is the viewport height.
	Height float64 `json:"height" yaml:"height"`
}

// ColumnSource describes the field a column was bound from.
type ColumnSource struct {
	// DisplayName is the field name shown to the user.
	DisplayName string `json:"displayName"`
	// QueryName is the fully qualified field reference (optional).
	QueryName string `json:"queryName,omitempty"`
	// Roles lists the data roles the field is bound to (optional).
	Roles map[string]bool `json:"roles,omitempty"`
}

// HasRole reports whether the column is bound to role.
func (s ColumnSource) HasRole(role string) bool {
	return s.Roles[role]
}

// Column is a single categorical or value column.
type Column struct {
	// Source is the field metadata.
	Source ColumnSource `json:"source"`
	// Values holds one entry per row; nil marks a missing value.
	Values []interface{} `json:"values"`
}

// Categorical is the categorical mapping of a data view.
type Categorical struct {
	// Categories holds the category columns; only the first is charted.
	Categories []Column `json:"categories,omitempty"`
	// Values holds actual, target and color hex columns, in that order
	// unless roles say otherwise.
	Values []Column `json:"values,omitempty"`
}

// Metadata carries persisted formatting objects.
type Metadata struct {
	// Objects maps card name to property name to value.
	Objects map[string]map[string]interface{} `json:"objects,omitempty"`
}

// DataView is the tabular view the host delivers on every update.
type DataView struct {
	// Metadata holds formatting objects.
	Metadata Metadata `json:"metadata"`
	// Categorical is nil when the host has no categorical mapping.
	Categorical *Categorical `json:"categorical,omitempty"`
}

// Row is one positional entry across the category and value columns.
type Row struct {
	// Category is the category label.
	Category string `json:"category"`
	// Actual is the actual revenue.
	Actual float64 `json:"actual"`
	// Target is the target revenue (nil when absent).
	Target *float64 `json:"target,omitempty"`
	// ColorHex is the per-row color from the color field ("" when absent).
	ColorHex string `json:"color_hex,omitempty"`
}

// HasTarget reports whether the row has a usable, non-zero target.
func (r Row) HasTarget() bool {
	return r.Target != nil && *r.Target != 0
}
