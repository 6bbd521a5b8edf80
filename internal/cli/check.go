package cli

import (
	"fmt"

	"github.com/inkmark/inkmark/internal/watermark"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the active profile",
	Long: `Run the pre-flight checks on the active profile: margin range, anchor
position range, and whether the margin leaves the watermark any room. Marking
a batch with a profile that fails here would fail on every image.`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	name, prof, err := activeProfile()
	if err != nil {
		return err
	}
	wp := prof.Watermark()

	checks := []struct {
		Name  string `json:"name"`
		Error error  `json:"-"`
	}{
		{Name: "margin in range", Error: watermark.CheckMargin(wp.Margin)},
		{Name: "anchor position in range", Error: watermark.CheckAnchorPosition(wp.AnchorX, wp.AnchorY)},
		{Name: "anchor not hidden by margin", Error: watermark.CheckAnchorVisible(wp.Layout())},
	}

	type checkResult struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Message string `json:"message,omitempty"`
	}
	var results []checkResult
	failed := 0

	for _, c := range checks {
		r := checkResult{Name: c.Name, OK: c.Error == nil}
		if c.Error != nil {
			r.Message = c.Error.Error()
			failed++
			printer.Error("%s: %v", c.Name, c.Error)
		} else {
			printer.Success("%s", c.Name)
		}
		results = append(results, r)
	}

	if jsonOutput {
		if err := printer.JSON(map[string]interface{}{
			"profile": name,
			"ok":      failed == 0,
			"checks":  results,
		}); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("profile %q failed %d of %d checks", name, failed, len(checks))
	}
	printer.Info("profile %q is good to go", name)
	return nil
}
