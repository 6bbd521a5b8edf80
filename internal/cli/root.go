package cli

import (
	"fmt"

	"github.com/inkmark/inkmark/internal/config"
	"github.com/inkmark/inkmark/internal/logger"
	"github.com/inkmark/inkmark/internal/output"
	"github.com/spf13/cobra"
)

var version = "0.3.0"

var (
	jsonOutput  bool
	quietMode   bool
	logLevel    string
	profileName string
	cfg         *config.Config
	printer     *output.Printer
)

var rootCmd = &cobra.Command{
	Use:   "inkmark",
	Short: "inkmark - anchored text watermarks for images",
	Long: `inkmark places a text watermark on raster images. The watermark is
pinned to an anchor point, kept clear of a configurable margin, and sized to
the largest font that fits the profile's relative height.

Get started:
  inkmark mark ./photos      # Watermark every image in a folder
  inkmark check              # Validate the active profile
  inkmark profile list       # See saved profiles`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		logger.Init(level)

		printer = output.New(
			output.WithJSON(jsonOutput),
			output.WithQuiet(quietMode),
		)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON (for scripting)")
	rootCmd.PersistentFlags().BoolVar(&quietMode, "quiet", false, "Suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "P", "", "Profile to use (defaults to the configured default)")

	rootCmd.SetVersionTemplate("inkmark version {{.Version}}\n")

	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(profileCmd)
}

// activeProfile resolves --profile, or the configured default. An explicit
// --profile must exist; a missing default falls back to the built-in
// settings, so a hand-edited config file cannot brick the tool.
func activeProfile() (string, config.Profile, error) {
	if profileName != "" {
		p, ok := cfg.Profile(profileName)
		if !ok {
			return "", config.Profile{}, fmt.Errorf("profile %q not found (try 'inkmark profile list')", profileName)
		}
		return profileName, p, nil
	}
	return cfg.DefaultProfile, cfg.Active(), nil
}
