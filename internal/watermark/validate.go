package watermark

import "fmt"

// Pre-flight checks, run once per profile edit or load rather than per image.
// They exist so the caller can refuse bad settings with an actionable message
// instead of failing later with ErrNoSizeFits on every single image.

// CheckMargin fails unless the margin lies in [0, 0.5).
func CheckMargin(margin float64) error {
	if margin < 0 || margin >= 0.5 {
		return fmt.Errorf("watermark: margin %v should be between 0 and 0.5", margin)
	}
	return nil
}

// CheckAnchorPosition fails unless both coordinates lie in [0, 1].
func CheckAnchorPosition(x, y float64) error {
	if !inUnitRange(x) || !inUnitRange(y) {
		return fmt.Errorf("watermark: anchor x and y coordinates (%v, %v) should be between 0 and 1", x, y)
	}
	return nil
}

func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}

// CheckAnchorVisible reports ErrMarginHidesWatermark when the margin consumes
// all usable space on either axis. It builds the same Anchors the engine
// uses, so the two call paths cannot diverge.
func CheckAnchorVisible(l Layout) error {
	a, err := NewAnchors(l)
	if err != nil {
		return err
	}
	return a.Validate()
}

// Validate runs every check in order and returns the first failure.
func (p Profile) Validate() error {
	if err := CheckMargin(p.Margin); err != nil {
		return err
	}
	if err := CheckAnchorPosition(p.AnchorX, p.AnchorY); err != nil {
		return err
	}
	return CheckAnchorVisible(p.Layout())
}
