package watermark

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoSizeFits is reported when not even a 1pt font satisfies the width and
// height limits. The constraints are infeasible for that image; retrying with
// the same inputs cannot succeed.
var ErrNoSizeFits = errors.New("no point size fits the target dimensions")

// Measurement is the ink box of the watermark text at one point size, stroke
// included, together with the stroke width that produced it.
type Measurement struct {
	StrokeWidth int
	Width       int
	Height      int
}

// MeasureFunc measures the watermark text at a point size. It must be
// deterministic: the same size always yields the same box.
type MeasureFunc func(pointSize int) (Measurement, error)

// Fitter finds the largest integer point size whose ink box fits strictly
// inside a target height and a maximum width. It keeps a one-slot cache of
// the best size ever found so later images in a batch start the search near
// the answer instead of at 1pt.
//
// A Fitter is not safe for concurrent use; give each worker its own, or
// serialize placements.
type Fitter struct {
	bestPointSize int
	bestHeight    float64
}

// Fit returns the best point size and the stroke width measured at that size.
// The search is linear in both directions from the seed: successive sizes are
// cheap to measure and the cache keeps the distance short, so binary search
// would buy little.
func (f *Fitter) Fit(targetHeight, maxWidth float64, measure MeasureFunc) (pointSize, strokeWidth int, err error) {
	size := f.seed(targetHeight)
	m, err := measure(size)
	if err != nil {
		return 0, 0, err
	}

	if fitsWithin(m, targetHeight, maxWidth) {
		// Under both limits: grow until the next size no longer fits.
		for {
			next, err := measure(size + 1)
			if err != nil {
				return 0, 0, err
			}
			if !fitsWithin(next, targetHeight, maxWidth) {
				break
			}
			size++
			m = next
		}
	} else {
		for size > 0 && !fitsWithin(m, targetHeight, maxWidth) {
			size--
			if size == 0 {
				break
			}
			m, err = measure(size)
			if err != nil {
				return 0, 0, err
			}
		}
	}

	if size == 0 {
		return 0, 0, fmt.Errorf("watermark: %w (target height %.0fpx, max width %.0fpx)",
			ErrNoSizeFits, targetHeight, maxWidth)
	}

	// Ratchet: the cache only ever tracks the largest size seen.
	if size > f.bestPointSize {
		f.bestPointSize = size
		f.bestHeight = targetHeight
	}
	return size, m.StrokeWidth, nil
}

// seed interpolates a starting size from the cached best, assuming font
// metrics scale linearly with point size. It ignores width, so a batch moving
// from wide to narrow images may need a few extra correction steps.
func (f *Fitter) seed(targetHeight float64) int {
	if f.bestPointSize == 0 {
		return 1
	}
	s := int(math.Round(targetHeight * float64(f.bestPointSize) / f.bestHeight))
	if s < 1 {
		s = 1
	}
	return s
}

// fitsWithin uses strict comparisons so the chosen box is never flush against
// a limit; downstream stroke and shift rounding could otherwise clip at the
// canvas edge.
func fitsWithin(m Measurement, targetHeight, maxWidth float64) bool {
	return float64(m.Height) < targetHeight && float64(m.Width) < maxWidth
}
