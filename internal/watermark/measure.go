package watermark

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// systemFontPaths are tried in order when the profile names no font. The
// bundled Go Regular is the final fallback.
var systemFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\arial.ttf",
}

// Measurer measures the profile text's ink box, stroke included, at a given
// point size. Faces are built with fixed DPI and no hinting so repeated
// measurements at the same size always agree.
type Measurer struct {
	font      *opentype.Font
	text      string
	relStroke float64
}

func NewMeasurer(fontPath, text string, relStroke float64) (*Measurer, error) {
	f, err := loadFont(fontPath)
	if err != nil {
		return nil, err
	}
	return &Measurer{font: f, text: text, relStroke: relStroke}, nil
}

// loadFont loads the configured font, or walks the fallback chain when none
// is configured. A path that names a missing or unparseable font is an error
// rather than a silent substitution, so typos surface immediately.
func loadFont(path string) (*opentype.Font, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("watermark: failed to load font %s: %w", path, err)
		}
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("watermark: failed to load font %s: %w", path, err)
		}
		return f, nil
	}
	for _, c := range systemFontPaths {
		data, err := os.ReadFile(c)
		if err != nil {
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			continue
		}
		return f, nil
	}
	return opentype.Parse(goregular.TTF)
}

// Face builds a font face at the given point size. The caller closes it.
func (m *Measurer) Face(pointSize int) (font.Face, error) {
	return opentype.NewFace(m.font, &opentype.FaceOptions{
		Size:    float64(pointSize),
		DPI:     72,
		Hinting: font.HintingNone,
	})
}

// Measure implements MeasureFunc for the profile text. The stroke expands the
// measured glyph box by the stroke width on every side.
func (m *Measurer) Measure(pointSize int) (Measurement, error) {
	face, err := m.Face(pointSize)
	if err != nil {
		return Measurement{}, err
	}
	defer face.Close()

	sw := m.strokeWidth(pointSize)
	bounds, _ := font.BoundString(face, m.text)
	return Measurement{
		StrokeWidth: sw,
		Width:       (bounds.Max.X - bounds.Min.X).Ceil() + 2*sw,
		Height:      (bounds.Max.Y - bounds.Min.Y).Ceil() + 2*sw,
	}, nil
}

// strokeWidth derives the stroke from the point size, never below one pixel.
func (m *Measurer) strokeWidth(pointSize int) int {
	sw := int(math.Round(m.relStroke * float64(pointSize)))
	if sw < 1 {
		sw = 1
	}
	return sw
}
