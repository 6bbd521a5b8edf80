package image

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/inkmark/inkmark/internal/processor"
	"github.com/inkmark/inkmark/internal/watermark"
	_ "golang.org/x/image/bmp"
)

var _ processor.Processor = (*MetadataProcessor)(nil)

// MetadataProcessor reports image dimensions and, when built with an engine,
// the watermark placement those dimensions would get. It never touches
// pixels, so a placement can be previewed without marking anything.
type MetadataProcessor struct {
	cfg    *processor.Config
	engine *watermark.Engine
}

func NewMetadataProcessor(cfg *processor.Config, engine *watermark.Engine) *MetadataProcessor {
	if cfg == nil {
		cfg = processor.DefaultConfig()
	}
	return &MetadataProcessor{cfg: cfg, engine: engine}
}

func (p *MetadataProcessor) Name() string {
	return "metadata"
}

func (p *MetadataProcessor) SupportedTypes() []string {
	return []string{
		"image/jpeg",
		"image/png",
		"image/gif",
		"image/bmp",
	}
}

type ImageMetadata struct {
	Width     int                  `json:"width"`
	Height    int                  `json:"height"`
	Format    string               `json:"format"`
	Placement *watermark.Placement `json:"placement,omitempty"`
}

func (p *MetadataProcessor) Process(ctx context.Context, opts *processor.Options, input io.Reader) (*processor.Result, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, processor.ErrCorruptedFile
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, processor.ErrCorruptedFile
	}

	meta := ImageMetadata{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}

	result := processor.ResultMetadata{
		Width:  cfg.Width,
		Height: cfg.Height,
		Format: format,
	}

	if p.engine != nil {
		pl, err := p.engine.Place(cfg.Width, cfg.Height)
		if err != nil {
			return nil, err
		}
		meta.Placement = &pl
		result.PointSize = pl.PointSize
		result.StrokeWidth = pl.StrokeWidth
		result.X = pl.X
		result.Y = pl.Y
	}

	jsonData, err := json.Marshal(meta)
	if err != nil {
		return nil, processor.ErrProcessingFailed
	}

	return &processor.Result{
		Data:        bytes.NewReader(jsonData),
		ContentType: "application/json",
		Size:        int64(len(jsonData)),
		Metadata:    result,
	}, nil
}
