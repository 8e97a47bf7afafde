package fields

import "regexp"

// Affordance is the quick-edit action offered for an attribute.
//
// It is a closed set: Cycle, MultiSelect, SingleSelect, Toggle and TextInput.
// Callers switch on the concrete type.
type Affordance interface {
	// AttributeKey returns the key the affordance edits.
	AttributeKey() string

	affordance()
}

// Cycle advances the attribute to the next preset value without a dialog.
type Cycle struct {
	Key     string
	Current string
	Next    string
}

// MultiSelect lets the user pick a subset of the preset values.
type MultiSelect struct {
	Key      string
	Options  []string
	Selected []string
}

// SingleSelect lets the user pick one of the preset values.
type SingleSelect struct {
	Key     string
	Options []string
	Current string
}

// Toggle flips a boolean attribute.
type Toggle struct {
	Key   string
	State bool
}

// TextInput edits the attribute as free text.
type TextInput struct {
	Key     string
	Current string
}

func (c Cycle) AttributeKey() string        { return c.Key }
func (m MultiSelect) AttributeKey() string  { return m.Key }
func (s SingleSelect) AttributeKey() string { return s.Key }
func (t Toggle) AttributeKey() string       { return t.Key }
func (t TextInput) AttributeKey() string    { return t.Key }

func (Cycle) affordance()        {}
func (MultiSelect) affordance()  {}
func (SingleSelect) affordance() {}
func (Toggle) affordance()       {}
func (TextInput) affordance()    {}

// KindName returns a stable name for the affordance kind.
func KindName(a Affordance) string {
	switch a.(type) {
	case Cycle:
		return "cycle"
	case MultiSelect:
		return "multi_select"
	case SingleSelect:
		return "single_select"
	case Toggle:
		return "toggle"
	case TextInput:
		return "text_input"
	default:
		return "unknown"
	}
}

// Classify decides which affordance to offer for attr.
//
// A preset with enumerated values takes precedence (cycle, then multi, then
// single select). Otherwise boolean values, native or spelled true/false in
// any case, get a toggle. Everything else is free text.
func Classify(attr Attribute, presets Presets) Affordance {
	current := attr.Value.String()

	if preset, ok := presets.Lookup(attr.Key); ok && preset.HasValues() {
		options := append([]string{}, preset.Values...)
		switch {
		case preset.Cycle:
			return Cycle{
				Key:     attr.Key,
				Current: current,
				Next:    NextCycleValue(options, current),
			}
		case preset.Multi:
			return MultiSelect{
				Key:      attr.Key,
				Options:  options,
				Selected: selectedOptions(options, attr.Value),
			}
		default:
			return SingleSelect{
				Key:     attr.Key,
				Options: options,
				Current: current,
			}
		}
	}

	if state, ok := boolState(attr.Value); ok {
		return Toggle{Key: attr.Key, State: state}
	}

	return TextInput{Key: attr.Key, Current: current}
}

// NextCycleValue returns the value following current in values, wrapping to
// the first entry. A current value not in values also yields the first entry.
func NextCycleValue(values []string, current string) string {
	if len(values) == 0 {
		return ""
	}
	for i, v := range values {
		if v == current {
			return values[(i+1)%len(values)]
		}
	}
	return values[0]
}

// CycleLabel renders the menu title of a cycle affordance.
func CycleLabel(key, current, next string) string {
	return key + " : " + current + " ▷ " + next
}

func boolState(v Value) (bool, bool) {
	if v.Bool != nil {
		return *v.Bool, true
	}
	if v.List != nil {
		return false, false
	}
	switch {
	case trueRE.MatchString(v.Text):
		return true, true
	case falseRE.MatchString(v.Text):
		return false, true
	}
	return false, false
}

// A text value mentioning "true" anywhere is on, even if it also says "false".
var (
	trueRE  = regexp.MustCompile(`(?i)true`)
	falseRE = regexp.MustCompile(`(?i)false`)
)

// selectedOptions returns the options present in the current value, in option order.
func selectedOptions(options []string, current Value) []string {
	items := current.List
	if items == nil {
		items = SplitList(current.String())
	}
	present := make(map[string]bool, len(items))
	for _, item := range items {
		present[item] = true
	}

	selected := make([]string, 0, len(items))
	for _, opt := range options {
		if present[opt] {
			selected = append(selected, opt)
		}
	}
	return selected
}
