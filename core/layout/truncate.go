package layout

import (
	"sort"

	"github.com/ftl/signalatlas/core"
)

// Ellipsis appended to truncated labels.
const Ellipsis = "…"

// Truncate shortens the text until it fits into maxWidth, appending an ellipsis. At least one character is kept,
// even if that does not fit. Text that already fits is returned unchanged.
func Truncate(m Measurer, text string, size float64, maxWidth core.Px) string {
	if m.Width(text, size) <= maxWidth {
		return text
	}
	runes := []rune(text)
	if len(runes) <= 1 {
		return text
	}

	candidate := func(n int) string {
		return string(runes[:n]) + Ellipsis
	}

	// largest n in [1, len-1] whose candidate fits
	tooLong := sort.Search(len(runes)-1, func(i int) bool {
		return m.Width(candidate(i+1), size) > maxWidth
	})
	n := tooLong
	if n < 1 {
		n = 1
	}
	return candidate(n)
}

// MinTruncatedWidth is the width of the shortest text Truncate can return for the given text.
func MinTruncatedWidth(m Measurer, text string, size float64) core.Px {
	runes := []rune(text)
	if len(runes) <= 1 {
		return m.Width(text, size)
	}
	return m.Width(string(runes[:1])+Ellipsis, size)
}
