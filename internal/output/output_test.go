package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestPrinterQuietSuppressesOutput(t *testing.T) {
	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	p := New(WithQuiet(true), WithOutput(out), WithErrOutput(errOut), WithNoColor(true))

	p.Success("done")
	p.Info("detail")
	p.Printf("raw\n")
	if out.Len() != 0 {
		t.Errorf("quiet printer wrote %q", out.String())
	}

	// Errors still surface in quiet mode.
	p.Error("broken")
	if !strings.Contains(errOut.String(), "broken") {
		t.Errorf("quiet printer dropped the error: %q", errOut.String())
	}
}

func TestPrinterJSONModeOnlyEmitsJSON(t *testing.T) {
	out := new(bytes.Buffer)
	p := New(WithJSON(true), WithOutput(out), WithNoColor(true))

	p.Success("done")
	p.Summary(3, 0)
	if out.Len() != 0 {
		t.Errorf("json printer wrote human output: %q", out.String())
	}

	if err := p.JSON(map[string]int{"marked": 3}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	if !strings.Contains(out.String(), "\"marked\": 3") {
		t.Errorf("JSON output missing payload: %q", out.String())
	}
}

func TestPrinterSummary(t *testing.T) {
	out := new(bytes.Buffer)
	p := New(WithOutput(out), WithNoColor(true))

	p.Summary(2, 1)
	if !strings.Contains(out.String(), "2/3") {
		t.Errorf("Summary output = %q, want 2/3", out.String())
	}
}

func TestPrinterFileMarked(t *testing.T) {
	out := new(bytes.Buffer)
	p := New(WithOutput(out), WithNoColor(true))

	p.FileMarked("photo.jpg", "Watermarked/photo.jpg")
	if !strings.Contains(out.String(), "photo.jpg") || !strings.Contains(out.String(), "Watermarked/photo.jpg") {
		t.Errorf("FileMarked output = %q, want source and destination", out.String())
	}

	out.Reset()
	quiet := New(WithQuiet(true), WithOutput(out), WithNoColor(true))
	quiet.FileMarked("photo.jpg", "Watermarked/photo.jpg")
	if out.Len() != 0 {
		t.Errorf("quiet FileMarked wrote %q", out.String())
	}
}

func TestProgressQuietIsNoOp(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewProgress(10, "Watermarking", ProgressWithQuiet(true), ProgressWithOutput(out))

	p.Add(5)
	p.Finish()
	if out.Len() != 0 {
		t.Errorf("quiet progress wrote %q", out.String())
	}
}
