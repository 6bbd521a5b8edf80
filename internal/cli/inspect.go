package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/inkmark/inkmark/internal/processor"
	imageproc "github.com/inkmark/inkmark/internal/processor/image"
	"github.com/inkmark/inkmark/internal/watermark"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [files]",
	Short: "Show image info and the planned watermark placement",
	Long: `Show each image's dimensions and format, plus the placement the active
profile would produce: point size, stroke width, and anchored coordinates.
Nothing is written; use this to preview a profile before marking a batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	_, prof, err := activeProfile()
	if err != nil {
		return err
	}

	var engine *watermark.Engine
	wp := prof.Watermark()
	if err := wp.Validate(); err != nil {
		printer.Warn("profile invalid, placement preview disabled: %v", err)
	} else {
		engine, err = watermark.NewEngine(wp)
		if err != nil {
			return err
		}
	}

	registry := processor.NewRegistry()
	meta := imageproc.NewMetadataProcessor(&processor.Config{Quality: cfg.Quality}, engine)
	registry.Register(meta.Name(), meta)

	proc, err := registry.GetOrError("metadata")
	if err != nil {
		return err
	}

	type fileInfo struct {
		File string `json:"file"`
		imageproc.ImageMetadata
		Error string `json:"error,omitempty"`
	}
	var infos []fileInfo

	for _, file := range args {
		info := fileInfo{File: file}
		if err := inspectOne(cmd, proc, file, &info.ImageMetadata); err != nil {
			info.Error = err.Error()
			printer.FileFailed(file, err)
		} else {
			printer.Section(file)
			printer.KeyValue("Size", fmt.Sprintf("%dx%d", info.Width, info.Height))
			printer.KeyValue("Format", info.Format)
			if pl := info.Placement; pl != nil {
				printer.KeyValue("Point size", fmt.Sprintf("%d", pl.PointSize))
				printer.KeyValue("Stroke width", fmt.Sprintf("%d", pl.StrokeWidth))
				printer.KeyValue("Anchor", fmt.Sprintf("%s at (%.1f, %.1f)", pl.Anchor, pl.X, pl.Y))
			}
		}
		infos = append(infos, info)
	}

	if jsonOutput {
		return printer.JSON(infos)
	}
	return nil
}

func inspectOne(cmd *cobra.Command, proc processor.Processor, file string, meta *imageproc.ImageMetadata) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	result, err := proc.Process(cmd.Context(), &processor.Options{}, f)
	if err != nil {
		return err
	}

	data, err := io.ReadAll(result.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, meta)
}
