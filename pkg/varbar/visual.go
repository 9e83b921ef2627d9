package varbar

import (
	"log/slog"

	"github.com/ukaji3/varbar-go/pkg/varbar/host"
	"github.com/ukaji3/varbar-go/pkg/varbar/layout"
	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/settings"
)

// UpdateOptions is what the host passes on every update.
type UpdateOptions struct {
	Viewport  models.Viewport    `json:"viewport"`
	DataViews []*models.DataView `json:"dataViews"`
}

// Visual is the chart instance bound to a host. Every Update fully
// redraws; the only state carried between updates is the last applied
// settings snapshot. Updates must be serialized by the caller.
type Visual struct {
	host      host.Host
	base      settings.Settings
	settings  settings.Settings
	formatter *layout.Formatter
	logger    *slog.Logger
	frame     *models.Frame
}

// NewVisual creates a visual bound to h.
func NewVisual(h host.Host, opts Options) *Visual {
	base := opts.BaseSettings()
	return &Visual{
		host:      h,
		base:      base,
		settings:  base,
		formatter: layout.NewFormatter(opts.LanguageTag()),
		logger:    opts.logger(),
		frame:     &models.Frame{},
	}
}

// Update clears the previous output and renders the first data view.
// Missing data aborts silently and leaves an empty frame.
func (v *Visual) Update(opts UpdateOptions) *models.Frame {
	v.frame = &models.Frame{Viewport: opts.Viewport}
	v.host.Reset()

	var dv *models.DataView
	if len(opts.DataViews) > 0 {
		dv = opts.DataViews[0]
	}
	if dv == nil || dv.Categorical == nil {
		v.abort(layout.ErrNoCategorical)
		return v.frame
	}

	v.settings = v.base.Apply(dv.Metadata.Objects)

	rows, err := layout.ExtractRows(dv)
	if err != nil {
		v.abort(err)
		return v.frame
	}

	frame, err := layout.Compute(rows, opts.Viewport, v.settings, v.formatter)
	if err != nil {
		v.abort(err)
		return v.frame
	}

	v.wire(frame, dv.Categorical.Categories[0])
	v.frame = frame

	v.logger.Debug("Rendered frame",
		slog.Int("bars", len(frame.Bars)),
		slog.Float64("max_abs", frame.MaxAbs),
		slog.Float64("zero_y", frame.ZeroY),
	)
	return frame
}

func (v *Visual) abort(reason error) {
	v.logger.Debug("Update skipped", slog.Any("reason", reason))
}

// wire attaches a tooltip and a click-to-select handler to every bar.
func (v *Visual) wire(frame *models.Frame, category models.Column) {
	tooltips := v.host.TooltipService()
	events := v.host.Events()
	selection := v.host.SelectionManager()
	builder := v.host.NewSelectionIDBuilder()

	for i := range frame.Bars {
		bar := &frame.Bars[i]
		id := builder.WithCategory(category, bar.Index).CreateSelectionID()
		bar.SelectionID = id

		items := bar.Tooltip
		tooltips.AddTooltip(bar.ID, func() []models.TooltipItem { return items })

		elementID := bar.ID
		events.OnClick(elementID, func() {
			if err := selection.Select(id, false); err != nil {
				v.logger.Warn("Selection failed",
					slog.String("element_id", elementID),
					slog.Any("error", err),
				)
			}
		})
	}
}

// Frame returns the output of the last update.
func (v *Visual) Frame() *models.Frame {
	return v.frame
}

// Settings returns the last applied settings snapshot.
func (v *Visual) Settings() settings.Settings {
	return v.settings
}

// FormattingModel exports the last applied settings for the host's
// property pane.
func (v *Visual) FormattingModel() settings.FormattingModel {
	return v.settings.FormattingModel()
}
