package image

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"testing"

	"github.com/inkmark/inkmark/internal/processor"
	"github.com/inkmark/inkmark/internal/watermark"
)

func testWatermarkProfile() watermark.Profile {
	return watermark.Profile{
		Text:                "Test Watermark",
		Margin:              0.05,
		RelativeHeight:      0.1,
		RelativeStrokeWidth: 0.05,
		Opacity:             128,
		Anchor:              "rb",
		AnchorX:             1,
		AnchorY:             1,
	}
}

func newTestWatermarkProcessor(t *testing.T) *WatermarkProcessor {
	t.Helper()
	p, err := NewWatermarkProcessor(processor.DefaultConfig(), testWatermarkProfile())
	if err != nil {
		t.Fatalf("NewWatermarkProcessor: %v", err)
	}
	return p
}

func TestWatermarkProcessor_Name(t *testing.T) {
	p := newTestWatermarkProcessor(t)
	if got := p.Name(); got != "watermark" {
		t.Errorf("Name() = %v, want watermark", got)
	}
}

func TestWatermarkProcessor_SupportedTypes(t *testing.T) {
	p := newTestWatermarkProcessor(t)
	types := p.SupportedTypes()

	expected := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/bmp":  true,
	}

	if len(types) != len(expected) {
		t.Errorf("SupportedTypes() returned %d types, want %d", len(types), len(expected))
	}

	for _, typ := range types {
		if !expected[typ] {
			t.Errorf("unexpected type: %s", typ)
		}
	}
}

func TestWatermarkProcessor_Process(t *testing.T) {
	tests := []struct {
		name       string
		createImg  func() io.Reader
		opts       *processor.Options
		wantFormat string
		wantWidth  int
		wantHeight int
		wantErr    bool
	}{
		{
			name:       "watermark jpeg",
			createImg:  func() io.Reader { return createTestJPEG(400, 300) },
			opts:       &processor.Options{Quality: 80},
			wantFormat: "jpeg",
			wantWidth:  400,
			wantHeight: 300,
		},
		{
			name:       "watermark png keeps format",
			createImg:  func() io.Reader { return createTestPNG(200, 150) },
			opts:       &processor.Options{},
			wantFormat: "png",
			wantWidth:  200,
			wantHeight: 150,
		},
		{
			name:       "forced jpeg output",
			createImg:  func() io.Reader { return createTestPNG(200, 150) },
			opts:       &processor.Options{Format: "jpeg"},
			wantFormat: "jpeg",
			wantWidth:  200,
			wantHeight: 150,
		},
		{
			name:       "watermark gif keeps format",
			createImg:  func() io.Reader { return createTestGIF(200, 150) },
			opts:       &processor.Options{},
			wantFormat: "gif",
			wantWidth:  200,
			wantHeight: 150,
		},
		{
			name:       "watermark bmp keeps format",
			createImg:  func() io.Reader { return createTestBMP(200, 150) },
			opts:       &processor.Options{},
			wantFormat: "bmp",
			wantWidth:  200,
			wantHeight: 150,
		},
		{
			name:      "invalid image",
			createImg: createInvalidImage,
			opts:      &processor.Options{},
			wantErr:   true,
		},
	}

	p := newTestWatermarkProcessor(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.Process(context.Background(), tt.opts, tt.createImg())

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Metadata.Width != tt.wantWidth {
				t.Errorf("Width = %v, want %v", result.Metadata.Width, tt.wantWidth)
			}
			if result.Metadata.Height != tt.wantHeight {
				t.Errorf("Height = %v, want %v", result.Metadata.Height, tt.wantHeight)
			}
			if result.Metadata.Format != tt.wantFormat {
				t.Errorf("Format = %v, want %v", result.Metadata.Format, tt.wantFormat)
			}
			if result.Size <= 0 {
				t.Error("Size = 0, want encoded output")
			}
		})
	}
}

func TestWatermarkProcessor_GIFBytesDecodeAsGIF(t *testing.T) {
	p := newTestWatermarkProcessor(t)

	result, err := p.Process(context.Background(), &processor.Options{}, createTestGIF(200, 150))
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if result.ContentType != "image/gif" {
		t.Errorf("ContentType = %q, want image/gif", result.ContentType)
	}

	data, err := io.ReadAll(result.Data)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if format != "gif" {
		t.Errorf("output decodes as %q, want gif", format)
	}
}

func TestWatermarkProcessor_ProcessCorrupted(t *testing.T) {
	p := newTestWatermarkProcessor(t)
	_, err := p.Process(context.Background(), &processor.Options{}, createInvalidImage())
	if !errors.Is(err, processor.ErrCorruptedFile) {
		t.Errorf("Process = %v, want ErrCorruptedFile", err)
	}
}

func TestWatermarkProcessor_InfeasibleProfilePropagates(t *testing.T) {
	profile := testWatermarkProfile()
	profile.AnchorX = 0.06 // far anchor near the origin: almost no usable width

	p, err := NewWatermarkProcessor(nil, profile)
	if err != nil {
		t.Fatalf("NewWatermarkProcessor: %v", err)
	}

	_, err = p.Process(context.Background(), &processor.Options{}, createTestJPEG(100, 100))
	if !errors.Is(err, watermark.ErrNoSizeFits) {
		t.Errorf("Process = %v, want ErrNoSizeFits", err)
	}
}
