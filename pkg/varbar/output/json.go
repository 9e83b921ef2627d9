// Package output serializes rendered frames to JSON, SVG, PNG and XLSX.
package output

import (
	"encoding/json"

	"github.com/ukaji3/varbar-go/pkg/varbar/models"
	"github.com/ukaji3/varbar-go/pkg/varbar/settings"
)

// ToJSON serializes a frame.
func ToJSON(frame *models.Frame, pretty bool) ([]byte, error) {
	return marshal(frame, pretty)
}

// FormattingModelToJSON serializes a formatting model.
func FormattingModelToJSON(m settings.FormattingModel, pretty bool) ([]byte, error) {
	return marshal(m, pretty)
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
