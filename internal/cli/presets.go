package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/ui"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the configured attribute presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		presets := getConfig().Presets

		if isJSONOutput() {
			if presets == nil {
				presets = fields.Presets{}
			}
			outputSuccess(cmd, map[string]interface{}{
				"config":  resolvedConfigPath,
				"presets": presets,
			}, &Meta{Count: len(presets)})
			return nil
		}

		out := cmd.OutOrStdout()
		for _, w := range configWarnings {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.Warningf("%s", w.Message))
		}
		if len(presets) == 0 {
			fmt.Fprintln(out, ui.Hint("no presets in "+resolvedConfigPath))
			return nil
		}

		t := ui.NewTable(3)
		for _, p := range presets {
			t.AddRow(ui.Key(p.Name), presetMode(p), strings.Join(p.Values, ", "))
		}
		fmt.Fprint(out, t.String())
		return nil
	},
}

func presetMode(p fields.Preset) string {
	switch {
	case !p.HasValues():
		return ui.Hint("no values")
	case p.Cycle:
		return "cycle"
	case p.Multi:
		return "multi-select"
	default:
		return "select"
	}
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
