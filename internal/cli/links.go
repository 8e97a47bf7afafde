package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/ui"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

var linksCmd = &cobra.Command{
	Use:   "links <note>",
	Short: "List the outgoing links of a note",
	Long: `Lists the wikilinks and markdown links of a note with the file each
one resolves to. These are the links 'fmenu menu --from' offers.

Examples:
  fmenu links daily/2025-02-01
  fmenu links Plan --json`,
	Args: cobra.ExactArgs(1),
	RunE: runLinks,
}

type linkJSON struct {
	Target   string `json:"target"`
	Text     string `json:"text,omitempty"`
	Line     int    `json:"line"`
	Wiki     bool   `json:"wiki"`
	Resolved string `json:"resolved,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runLinks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(nil)
	if err != nil {
		return handleDomainError(cmd, err)
	}
	defer a.Close()

	src, err := a.resolve(ctx, args[0])
	if err != nil {
		return handleDomainError(cmd, err)
	}
	content, err := a.vault.Read(ctx, src)
	if err != nil {
		return handleError(cmd, ErrFileReadError, err, "")
	}

	links := vault.Links(content)
	items := make([]linkJSON, 0, len(links))
	for _, l := range links {
		item := linkJSON{Target: l.Target, Text: l.Text, Line: l.Line, Wiki: l.Wiki}
		f, err := a.resolve(ctx, l.Target)
		switch {
		case err == nil:
			item.Resolved = f.Path
		case errors.Is(err, vault.ErrNotFound):
			item.Error = "not found"
		case errors.Is(err, vault.ErrAmbiguous):
			item.Error = "ambiguous"
		case errors.Is(err, vault.ErrNotMarkdown):
			item.Error = "not markdown"
		default:
			return handleDomainError(cmd, err)
		}
		items = append(items, item)
	}

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{
			"path":  src.Path,
			"links": items,
		}, &Meta{Count: len(items)})
		return nil
	}

	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, ui.Hint(src.Path+" has no links"))
		return nil
	}

	maxLine := 0
	for _, item := range items {
		maxLine = max(maxLine, item.Line)
	}
	width := len(strconv.Itoa(maxLine))
	t := ui.NewTable(3)
	for _, item := range items {
		target := ui.FilePath(item.Resolved)
		if item.Error != "" {
			target = ui.Hint(item.Error)
		}
		t.AddRow(ui.LineNum(item.Line, width), item.Target, target)
	}
	fmt.Fprint(out, t.String())
	fmt.Fprintln(out, ui.Hint(ui.Count(len(items), "link", "links")))
	return nil
}

func init() {
	rootCmd.AddCommand(linksCmd)
}
