package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/quickedit"
	"github.com/aidanlsb/fieldmenu/internal/ui"
	"github.com/aidanlsb/fieldmenu/internal/vault"
)

var setCmd = &cobra.Command{
	Use:   "set <link> <key> [value]",
	Short: "Change one attribute of a note",
	Long: `Changes the value of a front-matter key or inline field.

With a value, the value is checked against the key's quick-edit: preset
values for selects, true/false for toggles, comma separated values for
multi-selects. Cycle keys take any value. Without a value the quick-edit
dialog opens, as if the menu item was clicked.

Every occurrence of the key is rewritten. A key the note does not have is
reported as a warning and nothing is written.

Examples:
  fmenu set Plan status done
  fmenu set Plan tags "work, home"
  fmenu set Plan mood`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runSet,
}

func runSet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	key := args[1]

	var prompter quickedit.Prompter
	hasValue := len(args) == 3
	if hasValue {
		prompter = valuePrompter{value: args[2]}
	} else if t := terminalFor(cmd); t != nil {
		prompter = t
	}

	a, err := openApp(prompter)
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
		msg := fmt.Sprintf("%s has no attribute %q", f.Path, key)
		if isJSONOutput() {
			outputSuccessWithWarnings(cmd, map[string]interface{}{
				"path":    f.Path,
				"key":     key,
				"changed": false,
			}, []Warning{{Code: WarnFieldNotFound, Message: msg}}, nil)
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warningf("%s", msg))
		return nil
	}

	before, err := a.vault.Read(ctx, f)
	if err != nil {
		return handleError(cmd, ErrFileReadError, err, "")
	}

	if cyc, ok := c.Affordance.(fields.Cycle); ok && hasValue {
		err = a.builder.Writer().Write(ctx, f, cyc.Key, args[2])
	} else {
		err = a.builder.Apply(ctx, f, c.Affordance)
	}
	if err != nil {
		return handleDomainError(cmd, err)
	}

	return reportWrite(cmd, a, f, key, before)
}

// findField returns the classified attribute named key, front-matter first.
func findField(ctx context.Context, a *app, f vault.File, key string) (quickedit.Classified, bool, error) {
	classified, err := a.builder.Classify(ctx, f)
	if err != nil {
		return quickedit.Classified{}, false, err
	}
	for _, c := range classified {
		if c.Attribute.Key == key {
			return c, true, nil
		}
	}
	return quickedit.Classified{}, false, nil
}

// reportWrite prints the new value of key, or that nothing changed.
func reportWrite(cmd *cobra.Command, a *app, f vault.File, key, before string) error {
	ctx := cmd.Context()

	after, err := a.vault.Read(ctx, f)
	if err != nil {
		return handleError(cmd, ErrFileReadError, err, "")
	}
	changed := before != after

	value := ""
	if c, found, err := findField(ctx, a, f, key); err == nil && found {
		value = c.Attribute.Value.String()
	}

	if isJSONOutput() {
		outputSuccess(cmd, map[string]interface{}{
			"path":    f.Path,
			"key":     key,
			"value":   value,
			"changed": changed,
		}, nil)
		return nil
	}

	out := cmd.OutOrStdout()
	if !changed {
		fmt.Fprintln(out, ui.Hint("no change to "+f.Path))
		return nil
	}
	fmt.Fprintln(out, ui.Successf("%s %s: %s", ui.FilePath(f.Path), ui.Key(key), value))
	return nil
}

func init() {
	rootCmd.AddCommand(setCmd)
}
