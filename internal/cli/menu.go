package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/menu"
	"github.com/aidanlsb/fieldmenu/internal/ui"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

// errCancelled ends a command quietly after the user backs out of a picker.
var errCancelled = errors.New("cancelled")

var menuCmd = &cobra.Command{
	Use:   "menu [link]",
	Short: "Open the link context menu of a note",
	Long: `Opens the context menu for a link and runs one of its items.

The link can be a wikilink ("[[Plan]]"), a path ("projects/plan.md") or a
note name. With --from, the link must be one of the outgoing links of that
note; without a link argument the links are offered for picking.

Items are chosen interactively, or by title with --item. Items that would
open a dialog take their answer from --value when it is given:
  multi-select  comma separated values ("work, home")
  select        one of the preset values
  toggle        true or false
  text          the new text

With --json and no --item, the menu is printed instead of run.

Examples:
  fmenu menu "[[Plan]]"
  fmenu menu Plan --item "status : todo ▷ doing"
  fmenu menu Plan --item "Update tags" --value "work, errand"
  fmenu menu --from daily/2025-02-01
  fmenu menu Plan --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMenu,
}

type menuEntryJSON struct {
	Kind  string `json:"kind"`
	Title string `json:"title,omitempty"`
	Icon  string `json:"icon,omitempty"`
}

func runMenu(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := openApp(prompterFor(cmd))
	if err != nil {
		return handleDomainError(cmd, err)
	}
	defer a.Close()

	f, err := menuTarget(cmd, a, args)
	if errors.Is(err, errCancelled) {
		return nil
	}
	if err != nil {
		return err
	}

	m := menu.New()
	ws := menu.NewWorkspace()
	a.builder.Register(ws)
	if err := ws.TriggerFileMenu(ctx, m, f, menu.SourceLinkContextMenu); err != nil {
		return handleDomainError(cmd, err)
	}

	title, hasItem := changedString(cmd.Flags(), "item")
	if !hasItem {
		if isJSONOutput() {
			outputSuccess(cmd, map[string]interface{}{
				"path":    f.Path,
				"entries": menuEntries(m),
			}, &Meta{Count: len(m.Items())})
			return nil
		}

		term := terminalFor(cmd)
		if term == nil {
			return handleErrorMsg(cmd, ErrInteractiveRequired, "choosing a menu item needs a terminal",
				"Pass --item <title>; fmenu menu <link> --json lists the titles")
		}
		if len(m.Items()) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), ui.Hint(f.Path+" has no attributes to edit"))
			return nil
		}
		item, ok, err := term.ChooseItem(ctx, f.Path, m)
		if err != nil {
			return handleError(cmd, ErrInternal, err, "")
		}
		if !ok {
			return nil
		}
		return clickItem(cmd, a, f, item)
	}

	item, ok := m.FindItem(title)
	if !ok {
		return handleErrorMsg(cmd, ErrItemNotFound,
			fmt.Sprintf("no menu item %q for %s", title, f.Path),
			"Available items: "+strings.Join(itemTitles(m), "; "))
	}
	return clickItem(cmd, a, f, item)
}

// menuTarget resolves the file the menu is opened on.
func menuTarget(cmd *cobra.Command, a *app, args []string) (vault.File, error) {
	ctx := cmd.Context()

	from, hasFrom := changedString(cmd.Flags(), "from")
	if !hasFrom {
		if len(args) == 0 {
			return vault.File{}, handleErrorMsg(cmd, ErrMissingArgument, "missing link",
				"Usage: fmenu menu <link>, or fmenu menu --from <note>")
		}
		f, err := a.resolve(ctx, args[0])
		if err != nil {
			return vault.File{}, handleDomainError(cmd, err)
		}
		return f, nil
	}

	src, err := a.resolve(ctx, from)
	if err != nil {
		return vault.File{}, handleDomainError(cmd, err)
	}
	content, err := a.vault.Read(ctx, src)
	if err != nil {
		return vault.File{}, handleError(cmd, ErrFileReadError, err, "")
	}
	targets := linkTargets(vault.Links(content))

	var link string
	if len(args) == 1 {
		for _, t := range targets {
			if strings.EqualFold(vault.NormalizeLink(t), vault.NormalizeLink(args[0])) {
				link = t
				break
			}
		}
		if link == "" {
			return vault.File{}, handleErrorMsg(cmd, ErrLinkNotFound,
				fmt.Sprintf("%s does not link to %s", src.Path, args[0]),
				"Run 'fmenu links "+src.Path+"' to see its links")
		}
	} else {
		if len(targets) == 0 {
			return vault.File{}, handleErrorMsg(cmd, ErrLinkNotFound, src.Path+" has no links", "")
		}
		term := terminalFor(cmd)
		if term == nil {
			return vault.File{}, handleErrorMsg(cmd, ErrInteractiveRequired, "picking a link needs a terminal",
				"Pass the link as an argument; fmenu links "+src.Path+" lists them")
		}
		choice, ok, err := term.Select(ctx, "Links in "+src.Path, targets, targets[0])
		if err != nil {
			return vault.File{}, handleError(cmd, ErrInternal, err, "")
		}
		if !ok {
			return vault.File{}, errCancelled
		}
		link = choice
	}

	f, err := a.resolve(ctx, link)
	if err != nil {
		return vault.File{}, handleDomainError(cmd, err)
	}
	return f, nil
}

// clickItem runs an item and reports whether the note changed.
func clickItem(cmd *cobra.Command, a *app, f vault.File, item *menu.Item) error {
	ctx := cmd.Context()

	before, err := a.vault.Read(ctx, f)
	if err != nil {
		return handleError(cmd, ErrFileReadError, err, "")
	}
	if err := item.Click(ctx); err != nil {
		return handleDomainError(cmd, err)
	}
	after, err := a.vault.Read(ctx, f)
	if err != nil {
		return handleError(cmd, ErrFileReadError, err, "")
	}
	changed := before != after

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{
			"path":    f.Path,
			"item":    item.Title(),
			"changed": changed,
		}, nil)
		return nil
	}

	out := cmd.OutOrStdout()
	if changed {
		fmt.Fprintln(out, ui.Successf("%s: %s", ui.FilePath(f.Path), item.Title()))
	} else {
		fmt.Fprintln(out, ui.Hint("no change to "+f.Path))
	}
	return nil
}

func menuEntries(m *menu.Menu) []menuEntryJSON {
	var out []menuEntryJSON
	for _, e := range m.Visible() {
		if e.Separator {
			out = append(out, menuEntryJSON{Kind: "separator"})
			continue
		}
		out = append(out, menuEntryJSON{Kind: "item", Title: e.Item.Title(), Icon: e.Item.Icon()})
	}
	return out
}

func itemTitles(m *menu.Menu) []string {
	var out []string
	for _, item := range m.Items() {
		out = append(out, item.Title())
	}
	return out
}

// linkTargets returns each link target once, in document order.
func linkTargets(links []vault.Link) []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range links {
		if seen[l.Target] {
			continue
		}
		seen[l.Target] = true
		out = append(out, l.Target)
	}
	return out
}

func init() {
	menuCmd.Flags().String("from", "", "Note whose outgoing links are offered")
	menuCmd.Flags().String("item", "", "Run the item with this title")
	menuCmd.Flags().String("value", "", "Answer for the item's dialog")
	rootCmd.AddCommand(menuCmd)
}
