package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/config"
	"github.com/aidanlsb/fieldmenu/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Writes a commented config.toml with example vaults and presets.
An existing file is left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.CreateDefault(resolvedConfigPath)
		if err != nil {
			return handleError(cmd, ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(cmd, map[string]interface{}{
				"path":    resolvedConfigPath,
				"created": created,
			}, nil)
			return nil
		}

		out := cmd.OutOrStdout()
		if !created {
			fmt.Fprintln(out, ui.Hint("config already exists: "+resolvedConfigPath))
			return nil
		}
		fmt.Fprintln(out, ui.Successf("Created %s", ui.FilePath(resolvedConfigPath)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
