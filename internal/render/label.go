package render

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Label is a value annotation shifted right by Offset columns.
type Label struct {
	Text   string
	Offset int
}

func (l Label) String() string {
	return strings.Repeat(" ", l.Offset) + l.Text
}

// PlaceLabel returns the column at which label starts so that it is centred
// on sample index out of total spread across width columns. Overlap between
// labels is not resolved here; callers put them on separate lines.
func PlaceLabel(label string, index, total, width int) int {
	pos := int(math.Round(float64(width*index) / float64(max(total-1, 1))))
	return max(0, pos-utf8.RuneCountInString(label)/2)
}

// AlignLabel builds a Label for label via PlaceLabel.
func AlignLabel(label string, index, total, width int) Label {
	return Label{Text: label, Offset: PlaceLabel(label, index, total, width)}
}
