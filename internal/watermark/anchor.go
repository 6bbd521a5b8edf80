package watermark

import "fmt"

// Layout is the placement half of a profile: where the watermark is pinned on
// the canvas and how much room it may take.
type Layout struct {
	Anchor    string  // two characters: width axis in {l,m,r}, height axis in {t,m,b}
	X, Y      float64 // normalized anchor position on the canvas
	Margin    float64 // fraction of the canvas kept clear of the watermark
	RelHeight float64 // desired text height as a fraction of image height
}

// Anchors composes the two per-axis managers for one layout. The relative
// height is clamped at construction to what the height axis geometry allows;
// it is never expanded.
type Anchors struct {
	width     axis
	height    axis
	relHeight float64
}

func NewAnchors(l Layout) (*Anchors, error) {
	if len(l.Anchor) != 2 {
		return nil, fmt.Errorf("watermark: anchor %q must be two characters", l.Anchor)
	}
	wa, err := widthAlign(l.Anchor[0])
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}
	ha, err := heightAlign(l.Anchor[1])
	if err != nil {
		return nil, fmt.Errorf("watermark: %w", err)
	}

	a := &Anchors{
		width:     newAxis(wa, l.X, l.Margin),
		height:    newAxis(ha, l.Y, l.Margin),
		relHeight: l.RelHeight,
	}
	if max := a.height.MaxRatio(); a.relHeight > max {
		a.relHeight = max
	}
	return a, nil
}

// TargetDimensions returns the pixel limits for the watermark text on an
// image of the given size: the widest the text may be, and the height it
// should aim for.
func (a *Anchors) TargetDimensions(imgWidth, imgHeight int) (maxWidth, targetHeight float64) {
	return float64(imgWidth) * a.width.MaxRatio(), float64(imgHeight) * a.relHeight
}

// ShiftX compensates an x coordinate for the stroke on the width axis.
func (a *Anchors) ShiftX(x float64, strokeWidth int) float64 {
	return a.width.Shift(x, strokeWidth)
}

// ShiftY compensates a y coordinate for the stroke on the height axis.
func (a *Anchors) ShiftY(y float64, strokeWidth int) float64 {
	return a.height.Shift(y, strokeWidth)
}

// Validate reports whether the margin collapses either axis. The height axis
// is checked first, so its error wins when both fail.
func (a *Anchors) Validate() error {
	if err := a.height.validate(); err != nil {
		return fmt.Errorf("watermark: height axis: %w", err)
	}
	if err := a.width.validate(); err != nil {
		return fmt.Errorf("watermark: width axis: %w", err)
	}
	return nil
}

// RelHeight returns the relative height after clamping.
func (a *Anchors) RelHeight() float64 { return a.relHeight }
