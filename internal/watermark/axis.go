package watermark

import (
	"errors"
	"fmt"
)

// ErrMarginHidesWatermark is reported when the margin consumes all the space
// the anchor leaves on an axis, so no watermark could ever be drawn there.
var ErrMarginHidesWatermark = errors.New("margin hides watermark")

type axisAlign int

const (
	// alignNear pins the anchor toward the 0-origin edge; content grows away
	// from the origin ('l' on the width axis, 't' on the height axis).
	alignNear axisAlign = iota
	// alignMiddle grows content symmetrically around the anchor ('m').
	alignMiddle
	// alignFar pins the anchor toward the 1-edge; content grows toward the
	// origin ('r' on the width axis, 'b' on the height axis).
	alignFar
)

// axis handles the anchor geometry of a single dimension.
type axis struct {
	align    axisAlign
	position float64
	margin   float64
	maxRatio float64
}

func newAxis(align axisAlign, position, margin float64) axis {
	a := axis{align: align, position: position, margin: margin}
	a.maxRatio = a.calcMaxRatio()
	if a.maxRatio < 0 {
		// The whole shape would have to sit inside the margin.
		a.maxRatio = 0
	}
	return a
}

func (a axis) calcMaxRatio() float64 {
	switch a.align {
	case alignNear:
		return 1 - a.position - a.margin
	case alignFar:
		return a.position - a.margin
	default:
		// alignMiddle: the side closer to its own edge binds.
		if a.position > 0.5 {
			return 2 * (1 - a.position - a.margin)
		}
		return 2 * (a.position - a.margin)
	}
}

// MaxRatio is the largest fraction of the canvas the watermark may occupy in
// this dimension, never negative.
func (a axis) MaxRatio() float64 { return a.maxRatio }

// Shift moves a raw coordinate so the anchor point lands on the edge of the
// stroke instead of the unstroked text outline. The stroke grows the ink box
// symmetrically, so only edge-pinned anchors need compensating.
func (a axis) Shift(p float64, strokeWidth int) float64 {
	switch a.align {
	case alignNear:
		return p + float64(strokeWidth)
	case alignFar:
		return p - float64(strokeWidth)
	default:
		return p
	}
}

func (a axis) validate() error {
	if a.maxRatio <= 0 {
		return ErrMarginHidesWatermark
	}
	return nil
}

func widthAlign(c byte) (axisAlign, error) {
	switch c {
	case 'l':
		return alignNear, nil
	case 'm':
		return alignMiddle, nil
	case 'r':
		return alignFar, nil
	}
	return 0, fmt.Errorf("%q is not a recognised anchor for the x direction", string(c))
}

func heightAlign(c byte) (axisAlign, error) {
	switch c {
	case 't':
		return alignNear, nil
	case 'm':
		return alignMiddle, nil
	case 'b':
		return alignFar, nil
	}
	return 0, fmt.Errorf("%q is not a recognised anchor for the y direction", string(c))
}
