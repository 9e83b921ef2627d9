// Package host defines the capabilities the visualization runtime offers a
// chart (tooltips, click events, selection) and an in-process
// implementation of them.
package host

import "github.com/ukaji3/varbar-go/pkg/varbar/models"

// TooltipProvider returns the tooltip content of an element on demand.
type TooltipProvider func() []models.TooltipItem

// TooltipService registers tooltip content for rendered elements.
type TooltipService interface {
	AddTooltip(elementID string, provider TooltipProvider)
}

// EventBinder attaches click handlers to rendered elements.
type EventBinder interface {
	OnClick(elementID string, handler func())
}

// SelectionManager tracks the rows selected for cross-filtering.
type SelectionManager interface {
	// Select selects id. Without multiSelect it replaces the selection, and
	// selecting the only selected id again clears it.
	Select(id models.SelectionID, multiSelect bool) error
	Selected() []models.SelectionID
	ClearSelection()
}

// SelectionIDBuilder derives selection identities from category rows.
type SelectionIDBuilder interface {
	WithCategory(column models.Column, index int) SelectionIDBuilder
	CreateSelectionID() models.SelectionID
}

// Host bundles the capabilities a chart receives.
type Host interface {
	TooltipService() TooltipService
	Events() EventBinder
	SelectionManager() SelectionManager
	NewSelectionIDBuilder() SelectionIDBuilder
	// Reset drops every element binding made by the previous update.
	Reset()
}
