package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkmark/inkmark/internal/config"
	"github.com/inkmark/inkmark/internal/logger"
	"github.com/inkmark/inkmark/internal/output"
	"github.com/inkmark/inkmark/internal/processor"
	imageproc "github.com/inkmark/inkmark/internal/processor/image"
	"github.com/spf13/cobra"
)

var markCmd = &cobra.Command{
	Use:   "mark [files or directories]",
	Short: "Watermark images",
	Long: `Watermark images with the active profile's text.

Files are written to the profile's output directory, keeping their names and
formats. Non-image files are skipped; a failed image does not stop the batch.
EXIF rotation is baked into the output pixels; other metadata is not carried
over.

Examples:
  inkmark mark photo.jpg
  inkmark mark ./shoot --out ./delivery
  inkmark mark ./shoot --text "© Jane Doe" --anchor mb --anchor-x 0.5 --anchor-y 1
  inkmark mark ./scans --format jpeg --jpeg-quality 90`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMark,
}

var (
	markText    string
	markFont    string
	markMargin  float64
	markHeight  float64
	markStroke  float64
	markOpacity int
	markAnchor  string
	markAnchorX float64
	markAnchorY float64
	markOut     string
	markFormat  string
	markQuality int
)

func init() {
	markCmd.Flags().StringVarP(&markText, "text", "t", "", "Watermark text")
	markCmd.Flags().StringVar(&markFont, "font", "", "Path to a TTF/OTF font")
	markCmd.Flags().Float64VarP(&markMargin, "margin", "m", 0, "Margin as a fraction of the canvas, [0, 0.5)")
	markCmd.Flags().Float64Var(&markHeight, "height", 0, "Text height as a fraction of image height, (0, 1]")
	markCmd.Flags().Float64Var(&markStroke, "stroke-width", 0, "Stroke width as a fraction of the point size")
	markCmd.Flags().IntVar(&markOpacity, "opacity", 0, "Watermark opacity, 0-255")
	markCmd.Flags().StringVarP(&markAnchor, "anchor", "a", "", "Anchor code, e.g. rb, mm, lt")
	markCmd.Flags().Float64Var(&markAnchorX, "anchor-x", 0, "Anchor x position, [0, 1]")
	markCmd.Flags().Float64Var(&markAnchorY, "anchor-y", 0, "Anchor y position, [0, 1]")
	markCmd.Flags().StringVarP(&markOut, "out", "o", "", "Output directory (default: the profile's)")
	markCmd.Flags().StringVar(&markFormat, "format", "", "Force output format (jpeg, png)")
	markCmd.Flags().IntVarP(&markQuality, "jpeg-quality", "q", 0, "JPEG quality, 1-100")
}

func runMark(cmd *cobra.Command, args []string) error {
	name, prof, err := activeProfile()
	if err != nil {
		return err
	}
	mergeMarkFlags(cmd, &prof)

	wp := prof.Watermark()
	if err := wp.Validate(); err != nil {
		return err
	}

	files, err := collectImages(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no images found")
	}

	outDir := prof.OutDir
	if outDir == "" {
		outDir = config.DefaultOutDir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	proc, err := imageproc.NewWatermarkProcessor(&processor.Config{Quality: cfg.Quality}, wp)
	if err != nil {
		return err
	}

	ctx := logger.WithProfile(cmd.Context(), name)
	log := logger.FromContext(ctx)
	log.Info("marking batch", "files", len(files), "out_dir", outDir)

	progress := output.NewProgress(len(files), "Watermarking",
		output.ProgressWithQuiet(quietMode || jsonOutput))

	opts := &processor.Options{Quality: markQuality, Format: markFormat}

	type fileResult struct {
		File  string `json:"file"`
		Out   string `json:"out,omitempty"`
		Error string `json:"error,omitempty"`
	}
	var results []fileResult
	successful, failed := 0, 0

	for _, file := range files {
		outPath, err := markOne(ctx, proc, opts, file, outDir)
		if err != nil {
			log.Warn("marking failed", "file", file, "error", err)
			printer.FileFailed(file, err)
			results = append(results, fileResult{File: file, Error: err.Error()})
			failed++
		} else {
			printer.FileMarked(file, outPath)
			results = append(results, fileResult{File: file, Out: outPath})
			successful++
		}
		progress.Add(1)
	}
	progress.Finish()

	printer.Summary(successful, failed)
	if jsonOutput {
		return printer.JSON(map[string]interface{}{
			"successful": successful,
			"failed":     failed,
			"results":    results,
		})
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d images failed", failed, successful+failed)
	}
	return nil
}

func markOne(ctx context.Context, proc processor.Processor, opts *processor.Options, file, outDir string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	result, err := proc.Process(ctx, opts, f)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(outDir, outputName(file, result.Metadata.Format))
	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, result.Data); err != nil {
		return "", err
	}
	return outPath, nil
}

// mergeMarkFlags overlays explicitly set flags onto the loaded profile.
func mergeMarkFlags(cmd *cobra.Command, prof *config.Profile) {
	flags := cmd.Flags()
	if flags.Changed("text") {
		prof.Text = markText
	}
	if flags.Changed("font") {
		prof.Font = markFont
	}
	if flags.Changed("margin") {
		prof.Margin = markMargin
	}
	if flags.Changed("height") {
		prof.RelativeHeight = markHeight
	}
	if flags.Changed("stroke-width") {
		prof.RelativeStrokeWidth = markStroke
	}
	if flags.Changed("opacity") {
		prof.Opacity = markOpacity
	}
	if flags.Changed("anchor") {
		prof.Anchor = markAnchor
	}
	if flags.Changed("anchor-x") {
		prof.AnchorX = markAnchorX
	}
	if flags.Changed("anchor-y") {
		prof.AnchorY = markAnchorY
	}
	if flags.Changed("out") {
		prof.OutDir = markOut
	}
}

// collectImages expands files and directories into a flat list of image
// paths. Directories are walked recursively.
func collectImages(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("file not found: %s", arg)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return nil
				}
				if !info.IsDir() && isImageFile(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if isImageFile(arg) {
			files = append(files, arg)
		}
	}

	return files, nil
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp":
		return true
	}
	return false
}

// outputName keeps the source name, swapping the extension when the output
// format differs.
func outputName(file, format string) string {
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	switch format {
	case "jpeg":
		if e := strings.ToLower(ext); e != ".jpg" && e != ".jpeg" {
			return strings.TrimSuffix(base, ext) + ".jpg"
		}
	case "png":
		if strings.ToLower(ext) != ".png" {
			return strings.TrimSuffix(base, ext) + ".png"
		}
	}
	return base
}
