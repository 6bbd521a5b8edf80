package watermark

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestMeasurer(t *testing.T) *Measurer {
	t.Helper()
	// Empty path falls through to the bundled font, keeping the test
	// independent of what the host has installed.
	m, err := NewMeasurer("", "@Watermark", 0.05)
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	return m
}

func TestMeasurerBundledFallback(t *testing.T) {
	if _, err := NewMeasurer("", "text", 0.05); err != nil {
		t.Errorf("NewMeasurer with no font path = %v, want bundled fallback", err)
	}
}

func TestMeasurerRejectsMissingFontPath(t *testing.T) {
	_, err := NewMeasurer("/no/such/font.ttf", "text", 0.05)
	if err == nil {
		t.Fatal("NewMeasurer accepted a nonexistent font path")
	}
	if !strings.Contains(err.Error(), "/no/such/font.ttf") {
		t.Errorf("error %q does not name the offending path", err)
	}
}

func TestMeasurerRejectsUnparseableFont(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.ttf")
	if err := os.WriteFile(path, []byte("not a font"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewMeasurer(path, "text", 0.05); err == nil {
		t.Fatal("NewMeasurer accepted a corrupt font file")
	}
}

func TestMeasureDeterministic(t *testing.T) {
	m := newTestMeasurer(t)

	a, err := m.Measure(24)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	b, err := m.Measure(24)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if a != b {
		t.Errorf("repeated Measure(24) disagree: %+v vs %+v", a, b)
	}
}

func TestMeasureGrowsWithPointSize(t *testing.T) {
	m := newTestMeasurer(t)

	small, err := m.Measure(12)
	if err != nil {
		t.Fatalf("Measure(12): %v", err)
	}
	large, err := m.Measure(48)
	if err != nil {
		t.Fatalf("Measure(48): %v", err)
	}

	if large.Width <= small.Width || large.Height <= small.Height {
		t.Errorf("box did not grow: 12pt %+v, 48pt %+v", small, large)
	}
}

func TestMeasureStrokeWidth(t *testing.T) {
	tests := []struct {
		name      string
		relStroke float64
		pointSize int
		want      int
	}{
		{"rounds to nearest", 0.05, 50, 3}, // 2.5 rounds up
		{"scales with size", 0.05, 100, 5},
		{"never below one", 0.05, 4, 1},
		{"zero ratio still strokes", 0, 100, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Measurer{relStroke: tt.relStroke}
			if got := m.strokeWidth(tt.pointSize); got != tt.want {
				t.Errorf("strokeWidth(%d) = %d, want %d", tt.pointSize, got, tt.want)
			}
		})
	}
}

func TestMeasureIncludesStroke(t *testing.T) {
	thin, err := NewMeasurer("", "text", 0)
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}
	thick, err := NewMeasurer("", "text", 0.2)
	if err != nil {
		t.Fatalf("NewMeasurer: %v", err)
	}

	a, err := thin.Measure(40)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	b, err := thick.Measure(40)
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	// Same glyphs, fatter stroke: the box grows by the stroke difference on
	// each side.
	wantDelta := 2 * (b.StrokeWidth - a.StrokeWidth)
	if b.Width-a.Width != wantDelta || b.Height-a.Height != wantDelta {
		t.Errorf("stroke expansion = (%d, %d), want %d on both axes",
			b.Width-a.Width, b.Height-a.Height, wantDelta)
	}
}
