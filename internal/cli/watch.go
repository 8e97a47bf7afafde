package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/metadata"
	"github.com/aidanlsb/fieldmenu/internal/ui"
	"github.com/aidanlsb/fieldmenu/internal/vault"
	"github.com/aidanlsb/fieldmenu/internal/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the front-matter index up to date",
	Long: `Rebuilds the front-matter index, then watches the vault and refreshes
notes as they change until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v, err := vault.Open(getVaultPath())
	if err != nil {
		return handleDomainError(cmd, err)
	}
	idx, err := metadata.OpenIndex(v, logger)
	if err != nil {
		return handleError(cmd, ErrDatabaseError, err, "")
	}
	defer idx.Close()

	count, err := idx.Rebuild(ctx, nil)
	if err != nil {
		return handleError(cmd, ErrDatabaseError, err, "")
	}

	out := cmd.OutOrStdout()
	if !isJSONOutput() {
		fmt.Fprintln(out, ui.Successf("Indexed %s, watching %s", ui.Count(count, "note", "notes"), ui.FilePath(v.Root())))
	}

	w, err := watcher.New(watcher.Config{
		Vault:         v,
		Target:        idx,
		DebounceDelay: watchDebounce,
		Logger:        logger,
		OnChange: func(e watcher.Event) {
			if isJSONOutput() {
				return
			}
			switch {
			case e.Err != nil:
				fmt.Fprintln(cmd.ErrOrStderr(), ui.Error(e.Path+": "+e.Err.Error()))
			case e.Removed:
				fmt.Fprintln(out, ui.Hint("removed "+e.Path))
			default:
				fmt.Fprintln(out, ui.Hint("updated "+e.Path))
			}
		},
	})
	if err != nil {
		return handleError(cmd, ErrInternal, err, "")
	}

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return handleError(cmd, ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{"indexed": count}, nil)
	}
	return nil
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 100*time.Millisecond, "Wait this long after a write before refreshing")
	rootCmd.AddCommand(watchCmd)
}
