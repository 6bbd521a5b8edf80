package watermark

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

// Placement fully determines one render call: where the anchor point lands
// after stroke compensation, and how large text and stroke are.
type Placement struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	PointSize   int     `json:"point_size"`
	StrokeWidth int     `json:"stroke_width"`
	Anchor      string  `json:"anchor"`
}

// Engine lays watermark text onto images for one profile. It reuses a single
// Fitter across the batch, so later images seed their size search from
// earlier results. Not safe for concurrent use; one engine per worker.
type Engine struct {
	profile  Profile
	anchors  *Anchors
	fitter   Fitter
	measurer *Measurer
}

func NewEngine(p Profile) (*Engine, error) {
	anchors, err := NewAnchors(p.Layout())
	if err != nil {
		return nil, err
	}
	measurer, err := NewMeasurer(p.FontPath, p.Text, p.RelativeStrokeWidth)
	if err != nil {
		return nil, err
	}
	return &Engine{profile: p, anchors: anchors, measurer: measurer}, nil
}

// Place computes where and how large the watermark goes on an image of the
// given size.
func (e *Engine) Place(imgWidth, imgHeight int) (Placement, error) {
	maxWidth, targetHeight := e.anchors.TargetDimensions(imgWidth, imgHeight)
	pointSize, strokeWidth, err := e.fitter.Fit(targetHeight, maxWidth, e.measurer.Measure)
	if err != nil {
		return Placement{}, err
	}

	return Placement{
		X:           e.anchors.ShiftX(float64(imgWidth)*e.profile.AnchorX, strokeWidth),
		Y:           e.anchors.ShiftY(float64(imgHeight)*e.profile.AnchorY, strokeWidth),
		PointSize:   pointSize,
		StrokeWidth: strokeWidth,
		Anchor:      e.profile.Anchor,
	}, nil
}

// Mark renders the watermark onto a copy of img. The text is drawn fully
// opaque on a transparent layer and composited once through a uniform alpha
// mask, so overlapping stroke passes do not stack opacity.
func (e *Engine) Mark(img image.Image) (*image.NRGBA, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	pl, err := e.Place(width, height)
	if err != nil {
		return nil, err
	}

	layer, err := e.renderLayer(width, height, pl)
	if err != nil {
		return nil, err
	}

	out := imaging.Clone(img)
	mask := image.NewUniform(color.Alpha{A: e.profile.Opacity})
	draw.DrawMask(out, out.Bounds(), layer, image.Point{}, mask, image.Point{}, draw.Over)
	return out, nil
}

// renderLayer draws black-stroked white text on a transparent canvas, with
// the glyph box's anchored corner at the placement coordinates.
func (e *Engine) renderLayer(width, height int, pl Placement) (image.Image, error) {
	face, err := e.measurer.Face(pl.PointSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	sw := pl.StrokeWidth
	bounds, _ := font.BoundString(face, e.profile.Text)
	glyphWidth := float64((bounds.Max.X - bounds.Min.X).Ceil())
	glyphHeight := float64((bounds.Max.Y - bounds.Min.Y).Ceil())

	// The placement coordinate is already stroke-compensated, so the
	// unstroked glyph box anchors there and the stroke runs out to sit
	// flush against the raw anchor point.
	ax, ay := anchorFractions(pl.Anchor)
	originX := pl.X - ax*glyphWidth - float64(bounds.Min.X)/64
	originY := pl.Y - ay*glyphHeight - float64(bounds.Min.Y)/64

	dc := gg.NewContext(width, height)
	dc.SetFontFace(face)

	// The stroke is a disc of offset draws around the fill, the usual trick
	// for stroked text with gg.
	dc.SetColor(color.NRGBA{A: 255})
	for dy := -sw; dy <= sw; dy++ {
		for dx := -sw; dx <= sw; dx++ {
			if dx*dx+dy*dy > sw*sw {
				continue
			}
			dc.DrawString(e.profile.Text, originX+float64(dx), originY+float64(dy))
		}
	}

	dc.SetColor(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	dc.DrawString(e.profile.Text, originX, originY)

	return dc.Image(), nil
}

// anchorFractions maps the two-character anchor code to the fraction of the
// ink box that sits before the anchor point on each axis.
func anchorFractions(anchor string) (ax, ay float64) {
	switch anchor[0] {
	case 'm':
		ax = 0.5
	case 'r':
		ax = 1
	}
	switch anchor[1] {
	case 'm':
		ay = 0.5
	case 'b':
		ay = 1
	}
	return ax, ay
}
