package output

import (
	"strings"

	"github.com/ukaji3/varbar-go/pkg/varbar/layout"
)

// hexDigits returns a color as six uppercase hex digits without '#'.
// ok is false for anything that is not a strict #RGB/#RRGGBB color.
func hexDigits(color string) (string, bool) {
	if !layout.ValidHex(color) {
		return "", false
	}
	h := strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	return h, true
}
