package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"github.com/inkmark/inkmark/internal/logger"
	"github.com/inkmark/inkmark/internal/processor"
	"github.com/inkmark/inkmark/internal/watermark"
	"golang.org/x/image/bmp"
)

var _ processor.Processor = (*WatermarkProcessor)(nil)

// WatermarkProcessor stamps the profile's text onto decoded images. It owns
// one engine, so the font-size cache carries across the files of a batch;
// like the engine, it must not be shared between goroutines.
type WatermarkProcessor struct {
	config *processor.Config
	engine *watermark.Engine
}

func NewWatermarkProcessor(cfg *processor.Config, profile watermark.Profile) (*WatermarkProcessor, error) {
	if cfg == nil {
		cfg = processor.DefaultConfig()
	}
	engine, err := watermark.NewEngine(profile)
	if err != nil {
		return nil, err
	}
	return &WatermarkProcessor{config: cfg, engine: engine}, nil
}

func (p *WatermarkProcessor) Name() string {
	return "watermark"
}

func (p *WatermarkProcessor) SupportedTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/bmp",
	}
}

func (p *WatermarkProcessor) Process(ctx context.Context, opts *processor.Options, input io.Reader) (*processor.Result, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", processor.ErrCorruptedFile, err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", processor.ErrCorruptedFile, err)
	}

	// Auto-orientation bakes the EXIF rotation in, so the watermark lands on
	// the image as displayed.
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", processor.ErrCorruptedFile, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	marked, err := p.engine.Mark(img)
	if err != nil {
		return nil, fmt.Errorf("failed to apply watermark: %w", err)
	}

	quality := opts.Quality
	if quality <= 0 || quality > 100 {
		quality = p.config.Quality
	}

	outputFormat := format
	if opts.Format != "" {
		outputFormat = opts.Format
	}

	var buf bytes.Buffer
	contentType := "image/jpeg"

	switch outputFormat {
	case "png":
		contentType = "image/png"
		if err := png.Encode(&buf, marked); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case "gif":
		contentType = "image/gif"
		if err := gif.Encode(&buf, marked, nil); err != nil {
			return nil, fmt.Errorf("failed to encode gif: %w", err)
		}
	case "bmp":
		contentType = "image/bmp"
		if err := bmp.Encode(&buf, marked); err != nil {
			return nil, fmt.Errorf("failed to encode bmp: %w", err)
		}
	default:
		if err := jpeg.Encode(&buf, marked, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
		outputFormat = "jpeg"
	}

	logger.FromContext(ctx).Debug("applied watermark",
		"width", width, "height", height, "format", outputFormat)

	return &processor.Result{
		Data:        bytes.NewReader(buf.Bytes()),
		ContentType: contentType,
		Filename:    "watermarked." + outputFormat,
		Size:        int64(buf.Len()),
		Metadata: processor.ResultMetadata{
			Width:   width,
			Height:  height,
			Format:  outputFormat,
			Quality: quality,
		},
	}, nil
}
