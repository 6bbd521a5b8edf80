package processor

import (
	"context"
	"errors"
	"io"
)

var (
	ErrUnsupportedType  = errors.New("processor: unsupported file type")
	ErrProcessingFailed = errors.New("processor: processing failed")
	ErrInvalidConfig    = errors.New("processor: invalid configuration")
	ErrCorruptedFile    = errors.New("processor: file appears corrupted")
)

type Processor interface {
	Process(ctx context.Context, opts *Options, input io.Reader) (*Result, error)
	SupportedTypes() []string
	Name() string
}

// Options carries the per-call knobs. The watermark profile itself lives on
// the processor, which keeps its font-size cache warm across a batch.
type Options struct {
	Quality int    // JPEG encode quality, 1-100; 0 uses the configured default
	Format  string // force output format ("jpeg", "png"); empty keeps the source format
}

type Result struct {
	Data        io.Reader
	ContentType string
	Filename    string
	Size        int64
	Metadata    ResultMetadata
}

type ResultMetadata struct {
	Width       int     `json:"width,omitempty"`
	Height      int     `json:"height,omitempty"`
	Format      string  `json:"format,omitempty"`
	Quality     int     `json:"quality,omitempty"`
	PointSize   int     `json:"point_size,omitempty"`
	StrokeWidth int     `json:"stroke_width,omitempty"`
	X           float64 `json:"x,omitempty"`
	Y           float64 `json:"y,omitempty"`
}

type Config struct {
	MaxFileSize int64
	Quality     int
}

func DefaultConfig() *Config {
	return &Config{
		MaxFileSize: 100 * 1024 * 1024,
		Quality:     85,
	}
}
