package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/fieldmenu/internal/fields"
	"github.com/aidanlsb/fieldmenu/internal/quickedit"
	"github.com/aidanlsb/fieldmenu/internal/ui"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <link>",
	Short: "List a note's attributes and how each is edited",
	Long: `Lists the front-matter keys and inline fields of a note together with
the quick-edit each one gets in the link menu.

Examples:
  fmenu fields "[[Plan]]"
  fmenu fields projects/plan.md --json`,
	Args: cobra.ExactArgs(1),
	RunE: runFields,
}

type fieldJSON struct {
	Section  string      `json:"section"`
	Key      string      `json:"key"`
	Value    interface{} `json:"value"`
	Kind     string      `json:"kind"`
	Options  []string    `json:"options,omitempty"`
	Selected []string    `json:"selected,omitempty"`
	Next     string      `json:"next,omitempty"`
	Item     string      `json:"item"`
}

func runFields(cmd *cobra.Command, args []string) error {
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
	classified, err := a.builder.Classify(ctx, f)
	if err != nil {
		return handleDomainError(cmd, err)
	}

	if isJSONOutput() {
		items := make([]fieldJSON, 0, len(classified))
		for _, c := range classified {
			items = append(items, toFieldJSON(c))
		}
		outputSuccess(cmd, map[string]interface{}{
			"path":   f.Path,
			"fields": items,
		}, &Meta{Count: len(items)})
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.FilePath(f.Path))
	if len(classified) == 0 {
		fmt.Fprintln(out, ui.Hint("no attributes"))
		return nil
	}

	var section quickedit.Section
	t := ui.NewTable(3)
	for _, c := range classified {
		if c.Section != section {
			section = c.Section
			t.AddRow(ui.Header(string(section)))
		}
		t.AddRow("  "+ui.Key(c.Attribute.Key), c.Attribute.Value.String(), ui.Hint(describeAffordance(c.Affordance)))
	}
	fmt.Fprint(out, t.String())
	return nil
}

func toFieldJSON(c quickedit.Classified) fieldJSON {
	v := c.Attribute.Value
	var value interface{} = v.Text
	switch {
	case v.IsBool():
		value = *v.Bool
	case v.IsList():
		value = v.List
	}

	out := fieldJSON{
		Section: string(c.Section),
		Key:     c.Attribute.Key,
		Value:   value,
		Kind:    fields.KindName(c.Affordance),
		Item:    quickedit.ItemTitle(c.Affordance),
	}
	switch a := c.Affordance.(type) {
	case fields.Cycle:
		out.Next = a.Next
	case fields.MultiSelect:
		out.Options = a.Options
		out.Selected = a.Selected
	case fields.SingleSelect:
		out.Options = a.Options
	}
	return out
}

func describeAffordance(a fields.Affordance) string {
	switch a := a.(type) {
	case fields.Cycle:
		return "cycle ▷ " + a.Next
	case fields.MultiSelect:
		return fmt.Sprintf("multi-select (%d options)", len(a.Options))
	case fields.SingleSelect:
		return fmt.Sprintf("select (%d options)", len(a.Options))
	case fields.Toggle:
		return "toggle"
	default:
		return "text"
	}
}

func init() {
	rootCmd.AddCommand(fieldsCmd)
}
