package settings

// SliceKind names the property pane control used for a slice.
type SliceKind string

const (
	KindNumUpDown    SliceKind = "NumUpDown"
	KindItemDropdown SliceKind = "ItemDropdown"
	KindColorPicker  SliceKind = "ColorPicker"
	KindToggleSwitch SliceKind = "ToggleSwitch"
)

// DropdownItem is one option of an ItemDropdown slice.
type DropdownItem struct {
	Value       string `json:"value"`
	DisplayName string `json:"displayName"`
}

// Slice is one editable property.
type Slice struct {
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName"`
	Kind        SliceKind      `json:"kind"`
	Value       interface{}    `json:"value"`
	Items       []DropdownItem `json:"items,omitempty"`
}

// Card groups related slices in the property pane.
type Card struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Slices      []Slice `json:"slices"`
}

// FormattingModel is the settings surface handed back to the host.
type FormattingModel struct {
	Cards []Card `json:"cards"`
}

// ModeItems lists the color mode dropdown options.
var ModeItems = []DropdownItem{
	{Value: string(ModeRule), DisplayName: "Rule-based"},
	{Value: string(ModeField), DisplayName: "Field-based (ColorHex)"},
}

// FormattingModel builds the property pane model for s.
func (s Settings) FormattingModel() FormattingModel {
	return FormattingModel{Cards: []Card{
		{
			Name:        CardBar,
			DisplayName: "Bar Settings",
			Slices: []Slice{
				{Name: PropBarRadius, DisplayName: "Column Radius", Kind: KindNumUpDown, Value: s.Bar.Radius},
			},
		},
		{
			Name:        CardConditional,
			DisplayName: "Conditional Formatting",
			Slices: []Slice{
				{Name: PropMode, DisplayName: "Color Mode", Kind: KindItemDropdown, Value: string(s.Conditional.Mode), Items: ModeItems},
				{Name: PropThreshold1, DisplayName: "Threshold 1", Kind: KindNumUpDown, Value: s.Conditional.Threshold1},
				{Name: PropThreshold2, DisplayName: "Threshold 2", Kind: KindNumUpDown, Value: s.Conditional.Threshold2},
				{Name: PropNAColor, DisplayName: "N/A Color", Kind: KindColorPicker, Value: s.Conditional.NAColor},
				{Name: PropApplyToLabels, DisplayName: "Apply same color to data labels", Kind: KindToggleSwitch, Value: s.Conditional.ApplyToLabels},
			},
		},
		{
			Name:        CardMarker,
			DisplayName: "Target Marker",
			Slices: []Slice{
				{Name: PropColor, DisplayName: "Marker Color", Kind: KindColorPicker, Value: s.Marker.Color},
				{Name: PropThickness, DisplayName: "Marker Thickness", Kind: KindNumUpDown, Value: s.Marker.Thickness},
			},
		},
	}}
}

// Slice returns the named slice of the named card.
func (m FormattingModel) Slice(card, name string) (Slice, bool) {
	for _, c := range m.Cards {
		if c.Name != card {
			continue
		}
		for _, s := range c.Slices {
			if s.Name == name {
				return s, true
			}
		}
	}
	return Slice{}, false
}
