package watermark

// Profile carries everything the engine needs to lay out and render one
// watermark. It is read-only for the duration of a placement; callers
// validate and clamp it before handing it to an engine.
type Profile struct {
	Text                string
	FontPath            string
	Margin              float64 // fraction of the canvas kept clear, [0, 0.5)
	RelativeHeight      float64 // text height as a fraction of image height, (0, 1]
	RelativeStrokeWidth float64 // stroke width as a fraction of the point size
	Opacity             uint8
	Anchor              string  // e.g. "rb" for bottom-right
	AnchorX             float64 // normalized anchor position, [0, 1]
	AnchorY             float64
}

// Layout extracts the placement geometry of the profile.
func (p Profile) Layout() Layout {
	return Layout{
		Anchor:    p.Anchor,
		X:         p.AnchorX,
		Y:         p.AnchorY,
		Margin:    p.Margin,
		RelHeight: p.RelativeHeight,
	}
}
