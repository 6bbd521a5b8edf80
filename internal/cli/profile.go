package cli

import (
	"fmt"
	"strings"

	"github.com/inkmark/inkmark/internal/config"
	"github.com/inkmark/inkmark/internal/watermark"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage watermark profiles",
	Long:  `Save, inspect, and switch between named watermark profiles.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved profiles",
	RunE:  runProfileList,
}

var profileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show a profile's settings",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProfileShow,
}

var profileSaveCmd = &cobra.Command{
	Use:   "save [name]",
	Short: "Create or update a profile",
	Long: `Create or update a named profile. Flags overlay the existing profile of
that name, or the defaults for a new one. Out-of-range settings are rejected,
and the relative height is clamped to what the anchor and margin allow.

Examples:
  inkmark profile save studio --text "© Studio" --anchor rb --anchor-x 1 --anchor-y 1
  inkmark profile save centered --anchor mm --anchor-x 0.5 --anchor-y 0.5 --height 0.1`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileSave,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete [names...]",
	Short: "Delete profiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProfileDelete,
}

var profileDefaultCmd = &cobra.Command{
	Use:   "default [name]",
	Short: "Set the default profile",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileDefault,
}

var (
	saveText    string
	saveFont    string
	saveMargin  float64
	saveHeight  float64
	saveStroke  float64
	saveOpacity int
	saveAnchor  string
	saveAnchorX float64
	saveAnchorY float64
	saveOut     string
)

func init() {
	profileSaveCmd.Flags().StringVarP(&saveText, "text", "t", "", "Watermark text")
	profileSaveCmd.Flags().StringVar(&saveFont, "font", "", "Path to a TTF/OTF font")
	profileSaveCmd.Flags().Float64VarP(&saveMargin, "margin", "m", 0, "Margin as a fraction of the canvas, [0, 0.5)")
	profileSaveCmd.Flags().Float64Var(&saveHeight, "height", 0, "Text height as a fraction of image height, (0, 1]")
	profileSaveCmd.Flags().Float64Var(&saveStroke, "stroke-width", 0, "Stroke width as a fraction of the point size")
	profileSaveCmd.Flags().IntVar(&saveOpacity, "opacity", 0, "Watermark opacity, 0-255")
	profileSaveCmd.Flags().StringVarP(&saveAnchor, "anchor", "a", "", "Anchor code, e.g. rb, mm, lt")
	profileSaveCmd.Flags().Float64Var(&saveAnchorX, "anchor-x", 0, "Anchor x position, [0, 1]")
	profileSaveCmd.Flags().Float64Var(&saveAnchorY, "anchor-y", 0, "Anchor y position, [0, 1]")
	profileSaveCmd.Flags().StringVarP(&saveOut, "out", "o", "", "Output directory")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileDefaultCmd)
}

func runProfileList(cmd *cobra.Command, args []string) error {
	names := cfg.ProfileNames()

	if jsonOutput {
		return printer.JSON(map[string]interface{}{
			"default":  cfg.DefaultProfile,
			"profiles": names,
		})
	}

	printer.Section("Profiles")
	for _, name := range names {
		marker := " "
		if name == cfg.DefaultProfile {
			marker = "*"
		}
		printer.Printf("%s %s\n", marker, name)
	}
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	name := cfg.DefaultProfile
	if len(args) > 0 {
		name = args[0]
	}
	p, ok := cfg.Profile(name)
	if !ok {
		return fmt.Errorf("profile %q not found", name)
	}

	if jsonOutput {
		return printer.JSON(map[string]interface{}{"name": name, "profile": p})
	}

	printer.Section(name)
	printer.KeyValue("Text", p.Text)
	if p.Font != "" {
		printer.KeyValue("Font", p.Font)
	}
	printer.KeyValue("Margin", fmt.Sprintf("%g", p.Margin))
	printer.KeyValue("Relative height", fmt.Sprintf("%g", p.RelativeHeight))
	printer.KeyValue("Relative stroke width", fmt.Sprintf("%g", p.RelativeStrokeWidth))
	printer.KeyValue("Opacity", fmt.Sprintf("%d", p.Opacity))
	printer.KeyValue("Anchor", fmt.Sprintf("%s at (%g, %g)", p.Anchor, p.AnchorX, p.AnchorY))
	printer.KeyValue("Output directory", p.OutDir)
	return nil
}

func runProfileSave(cmd *cobra.Command, args []string) error {
	name := args[0]

	prof, ok := cfg.Profile(name)
	if !ok {
		prof = config.DefaultProfileSettings()
	}
	mergeSaveFlags(cmd, &prof)

	wp := prof.Watermark()
	if err := wp.Validate(); err != nil {
		return err
	}

	// Clamp the stored height so the profile round-trips unchanged.
	anchors, err := watermark.NewAnchors(wp.Layout())
	if err != nil {
		return err
	}
	if clamped := anchors.RelHeight(); clamped < prof.RelativeHeight {
		printer.Warn("relative height lowered to %g to fit the anchor and margin", clamped)
		prof.RelativeHeight = clamped
	}

	cfg.SetProfile(name, prof)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	printer.Success("Saved profile %q", name)
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	removed := cfg.DeleteProfiles(args)
	if removed == 0 {
		return fmt.Errorf("no matching profiles: %s", strings.Join(args, ", "))
	}
	if _, ok := cfg.Profile(cfg.DefaultProfile); !ok {
		printer.Warn("default profile %q was deleted; set a new one with 'inkmark profile default'", cfg.DefaultProfile)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	printer.Success("Deleted %d profile(s)", removed)
	return nil
}

func runProfileDefault(cmd *cobra.Command, args []string) error {
	if err := cfg.SetDefault(args[0]); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	printer.Success("Default profile is now %q", args[0])
	return nil
}

func mergeSaveFlags(cmd *cobra.Command, prof *config.Profile) {
	flags := cmd.Flags()
	if flags.Changed("text") {
		prof.Text = saveText
	}
	if flags.Changed("font") {
		prof.Font = saveFont
	}
	if flags.Changed("margin") {
		prof.Margin = saveMargin
	}
	if flags.Changed("height") {
		prof.RelativeHeight = saveHeight
	}
	if flags.Changed("stroke-width") {
		prof.RelativeStrokeWidth = saveStroke
	}
	if flags.Changed("opacity") {
		prof.Opacity = saveOpacity
	}
	if flags.Changed("anchor") {
		prof.Anchor = saveAnchor
	}
	if flags.Changed("anchor-x") {
		prof.AnchorX = saveAnchorX
	}
	if flags.Changed("anchor-y") {
		prof.AnchorY = saveAnchorY
	}
	if flags.Changed("out") {
		prof.OutDir = saveOut
	}
}
