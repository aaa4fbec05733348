package layout

import (
	"sync"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/ftl/signalatlas/core"
)

// Measurer returns the rendered width of a text at the given font size in logical pixels.
type Measurer interface {
	Width(text string, size float64) core.Px
}

// FixedAdvance measures every character with the same advance, given as fraction of the font size.
type FixedAdvance float64

// Width of the text.
func (a FixedAdvance) Width(text string, size float64) core.Px {
	return core.Px(float64(utf8.RuneCountInString(text)) * size * float64(a))
}

// FontMeasurer measures text with the Go Regular font at 72 DPI, so one point equals one logical pixel.
type FontMeasurer struct {
	font  *opentype.Font
	faces map[float64]font.Face
	lock  *sync.Mutex
}

// NewFontMeasurer parses the embedded Go Regular font.
func NewFontMeasurer() (*FontMeasurer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "cannot parse label font")
	}
	return &FontMeasurer{
		font:  f,
		faces: make(map[float64]font.Face),
		lock:  new(sync.Mutex),
	}, nil
}

// DefaultMeasurer returns a FontMeasurer, or a fixed advance approximation if the font cannot be loaded.
func DefaultMeasurer() Measurer {
	m, err := NewFontMeasurer()
	if err != nil {
		return FixedAdvance(0.6)
	}
	return m
}

// Width of the text.
func (m *FontMeasurer) Width(text string, size float64) core.Px {
	m.lock.Lock()
	defer m.lock.Unlock()

	face, ok := m.faces[size]
	if !ok {
		var err error
		face, err = opentype.NewFace(m.font, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return FixedAdvance(0.6).Width(text, size)
		}
		m.faces[size] = face
	}
	return core.Px(float64(font.MeasureString(face, text)) / 64)
}
