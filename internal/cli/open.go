package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/ui"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

var openCmd = &cobra.Command{
	Use:   "open <link>",
	Short: "Open the note a link points to in your editor",
	Long: `Resolves a link and opens the note in the configured editor
(editor in config.toml, else $EDITOR), waiting for it to exit.

Examples:
  fmenu open "[[Plan]]"
  fmenu open projects/plan.md`,
	Args: cobra.ExactArgs(1),
	RunE: runOpen,
}

func runOpen(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	editor := getConfig().GetEditor()
	if editor == "" {
		return handleErrorMsg(cmd, ErrInvalidInput, "no editor configured",
			"Set editor in "+resolvedConfigPath+" or export $EDITOR")
	}

	v, err := vault.Open(getVaultPath())
	if err != nil {
		return handleDomainError(cmd, err)
	}
	f, err := v.Resolve(ctx, args[0])
	if err != nil {
		return handleDomainError(cmd, err)
	}

	c := vault.EditorCommand(editor, f)
	c.Stdin = cmd.InOrStdin()
	c.Stdout = cmd.ErrOrStderr()
	c.Stderr = cmd.ErrOrStderr()
	logger.Debug("opening editor", "editor", editor, "path", f.Path)
	if err := c.Run(); err != nil {
		return handleError(cmd, ErrInternal, fmt.Errorf("editor %q: %w", editor, err), "")
	}

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{"path": f.Path, "editor": editor}, nil)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Hint("closed "+f.Path))
	return nil
}

func init() {
	rootCmd.AddCommand(openCmd)
}
