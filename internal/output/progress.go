package output

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

type Progress struct {
	bar   *progressbar.ProgressBar
	quiet bool
	out   io.Writer
}

type ProgressOption func(*Progress)

func ProgressWithQuiet(quiet bool) ProgressOption {
	return func(p *Progress) {
		p.quiet = quiet
	}
}

func ProgressWithOutput(out io.Writer) ProgressOption {
	return func(p *Progress) {
		p.out = out
	}
}

func NewProgress(total int, description string, opts ...ProgressOption) *Progress {
	p := &Progress{
		out: os.Stderr,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.quiet {
		return p
	}

	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(p.out),
		progressbar.OptionSetWidth(30),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprint(p.out, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)

	return p
}

func (p *Progress) Add(n int) {
	if p.bar != nil {
		_ = p.bar.Add(n)
	}
}

func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
