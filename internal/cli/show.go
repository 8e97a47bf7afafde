package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/ui"
)

var showRawFlag bool

var showCmd = &cobra.Command{
	Use:   "show <link>",
	Short: "Print a note",
	Long: `Prints the note a link points to. On a terminal the markdown is
rendered; use --raw for the file text.

Examples:
  fmenu show "[[Plan]]"
  fmenu show projects/plan.md --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(nil)
	if err != nil {
		return handleDomainError(cmd, err)
	}
	defer a.Close()

	f, err := a.resolve(ctx, args[0])
	if err != nil {
		return handleDomainError(cmd, err)
	}
	content, err := a.vault.Read(ctx, f)
	if err != nil {
		return handleError(cmd, ErrFileReadError, err, "")
	}

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{
			"path":    f.Path,
			"content": content,
		}, nil)
		return nil
	}

	out := cmd.OutOrStdout()
	file, isFile := out.(*os.File)
	if showRawFlag || !isFile {
		fmt.Fprint(out, content)
		return nil
	}
	display := ui.DetectDisplay(file)
	if !display.IsTTY {
		fmt.Fprint(out, content)
		return nil
	}

	rendered, err := ui.RenderMarkdown(content, display.ContentWidth(4))
	if err != nil {
		logger.Debug("markdown render failed", "path", f.Path, "error", err)
		fmt.Fprint(out, content)
		return nil
	}
	fmt.Fprintln(out, ui.FilePath(f.Path))
	fmt.Fprint(out, rendered)
	return nil
}

func init() {
	showCmd.Flags().BoolVar(&showRawFlag, "raw", false, "Print the file text without rendering")
	rootCmd.AddCommand(showCmd)
}
