package layout

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxFractionDigits matches the default locale number format.
const maxFractionDigits = 3

var decimalFormats = [...]string{"%.0f", "%.1f", "%.2f", "%.3f"}

// Formatter renders numbers for labels and tooltips.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a Formatter using the grouping rules of tag.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// DefaultFormatter formats with en-US conventions.
func DefaultFormatter() *Formatter {
	return NewFormatter(language.AmericanEnglish)
}

// Number formats v with thousands separators and up to three fraction
// digits, dropping trailing zeros.
func (f *Formatter) Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return f.printer.Sprintf(decimalFormats[fractionDigits(v)], v)
}

// Percent formats a ratio as a percentage with one decimal place.
func (f *Formatter) Percent(ratio float64) string {
	return toFixed(ratio*100, 1) + "%"
}

// Millions formats v as a short value label, e.g. 1200000 -> "1.2M".
func (f *Formatter) Millions(v float64) string {
	return toFixed(v/1_000_000, 1) + "M"
}

func fractionDigits(v float64) int {
	s := strconv.FormatFloat(math.Abs(v), 'f', maxFractionDigits, 64)
	frac := s[strings.IndexByte(s, '.')+1:]
	return len(strings.TrimRight(frac, "0"))
}

// toFixed rounds half away from zero before formatting, so ties such as
// 0.25 become "0.3" rather than the round-half-even "0.2".
func toFixed(v float64, digits int) string {
	p := math.Pow10(digits)
	return strconv.FormatFloat(math.Round(v*p)/p, 'f', digits, 64)
}
