package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/metadata"
	"github.com/aidanlsb/fieldmenu/internal/ui"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the front-matter index",
	Long: `Parses the front-matter of every note into the vault's index
(.fieldmenu/index.db) and drops entries of deleted notes.

The index is read when use_index = true is set in the config.`,
	Args: cobra.NoArgs,
	RunE: runReindex,
}

func runReindex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	v, err := vault.Open(getVaultPath())
	if err != nil {
		return handleDomainError(cmd, err)
	}
	idx, err := metadata.OpenIndex(v, logger)
	if err != nil {
		return handleError(cmd, ErrDatabaseError, err, "Delete the .fieldmenu directory and try again")
	}
	defer idx.Close()

	var progress *ui.Progress
	var onFile func(done, total int)
	if !isJSONOutput() {
		progress = ui.NewProgress(cmd.ErrOrStderr(), "Indexing", 0)
		onFile = progress.Update
	}

	count, err := idx.Rebuild(ctx, onFile)
	if err != nil {
		return handleError(cmd, ErrDatabaseError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{
			"vault":   v.Root(),
			"indexed": count,
		}, &Meta{Count: count})
		return nil
	}

	progress.Done(ui.Successf("Indexed %s", ui.Count(count, "note", "notes")))
	if !getConfig().UseIndex {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Hint("Set use_index = true in "+resolvedConfigPath+" to read from it"))
	}
	return nil
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
