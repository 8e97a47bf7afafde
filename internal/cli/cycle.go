package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/ui"
)

var cycleCmd = &cobra.Command{
	Use:   "cycle <link> <key>",
	Short: "Advance a cycle attribute to its next value",
	Long: `Advances an attribute with a cycle preset to the next preset value,
wrapping around after the last one.

Examples:
  fmenu cycle Plan status
  fmenu cycle "[[Plan]]" status --json`,
	Args: cobra.ExactArgs(2),
	RunE: runCycle,
}

func runCycle(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key := args[1]

	a, err := openApp(nil)
	if err != nil {
		return handleDomainError(cmd, err)
	}
	defer a.Close()

	f, err := a.resolve(ctx, args[0])
	if err != nil {
		return handleDomainError(cmd, err)
	}

	c, found, err := findField(ctx, a, f, key)
	if err != nil {
		return handleDomainError(cmd, err)
	}
	if !found {
		return handleErrorMsg(cmd, ErrFieldNotFound,
			fmt.Sprintf("%s has no attribute %q", f.Path, key), "Run 'fmenu fields "+f.Path+"' to list them")
	}
	cyc, ok := c.Affordance.(fields.Cycle)
	if !ok {
		return handleErrorMsg(cmd, ErrInvalidInput,
			fmt.Sprintf("%q is edited with %s, not cycled", key, fields.KindName(c.Affordance)),
			"Add cycle = true to its preset, or use 'fmenu set'")
	}

	if err := a.builder.Apply(ctx, f, cyc); err != nil {
		return handleDomainError(cmd, err)
	}

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{
			"path":     f.Path,
			"key":      key,
			"previous": cyc.Current,
			"value":    cyc.Next,
		}, nil)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("%s: %s → %s", ui.Key(key), cyc.Current, cyc.Next))
	return nil
}

func init() {
	rootCmd.AddCommand(cycleCmd)
}
