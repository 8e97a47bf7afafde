package fields

import (
	"reflect"
	"testing"
)

func TestNextCycleValue(t *testing.T) {
	values := []string{"1", "2", "3"}

	tests := []struct {
		current string
		want    string
	}{
		{"1", "2"},
		{"2", "3"},
		{"3", "1"},
		{"missing", "1"},
		{"", "1"},
	}

	for _, tt := range tests {
		if got := NextCycleValue(values, tt.current); got != tt.want {
			t.Errorf("NextCycleValue(%q) = %q, want %q", tt.current, got, tt.want)
		}
	}

	if got := NextCycleValue(nil, "x"); got != "" {
		t.Errorf("NextCycleValue(nil) = %q, want empty", got)
	}
}

func TestCycleLabel(t *testing.T) {
	if got, want := CycleLabel("status", "todo", "doing"), "status : todo ▷ doing"; got != want {
		t.Errorf("CycleLabel = %q, want %q", got, want)
	}
}

func TestClassify(t *testing.T) {
	presets := Presets{
		{Name: "status", Values: []string{"todo", "doing", "done"}, Cycle: true},
		{Name: "tags", Values: []string{"work", "home", "errand"}, Multi: true},
		{Name: "priority", Values: []string{"low", "high"}},
		{Name: "mood"}, // no values: falls through to heuristics
		{Name: "status", Values: []string{"ignored"}},
	}

	tests := []struct {
		name string
		attr Attribute
		want Affordance
	}{
		{
			name: "cycle preset",
			attr: Attribute{Key: "status", Value: Text("doing")},
			want: Cycle{Key: "status", Current: "doing", Next: "done"},
		},
		{
			name: "multi preset with text value",
			attr: Attribute{Key: "tags", Value: Text("errand, work, other")},
			want: MultiSelect{Key: "tags", Options: []string{"work", "home", "errand"}, Selected: []string{"work", "errand"}},
		},
		{
			name: "multi preset with list value",
			attr: Attribute{Key: "tags", Value: ListValue([]string{"home"})},
			want: MultiSelect{Key: "tags", Options: []string{"work", "home", "errand"}, Selected: []string{"home"}},
		},
		{
			name: "single select preset",
			attr: Attribute{Key: "priority", Value: Text("low")},
			want: SingleSelect{Key: "priority", Options: []string{"low", "high"}, Current: "low"},
		},
		{
			name: "preset without values uses heuristics",
			attr: Attribute{Key: "mood", Value: Text("False")},
			want: Toggle{Key: "mood", State: false},
		},
		{
			name: "native boolean",
			attr: Attribute{Key: "archived", Value: BoolValue(true)},
			want: Toggle{Key: "archived", State: true},
		},
		{
			name: "uppercase TRUE",
			attr: Attribute{Key: "done", Value: Text("TRUE")},
			want: Toggle{Key: "done", State: true},
		},
		{
			name: "maybe is text",
			attr: Attribute{Key: "done", Value: Text("maybe")},
			want: TextInput{Key: "done", Current: "maybe"},
		},
		{
			name: "true wins over false in the same text",
			attr: Attribute{Key: "note", Value: Text("true or false")},
			want: Toggle{Key: "note", State: true},
		},
		{
			name: "true inside a sentence",
			attr: Attribute{Key: "note", Value: Text("Not true")},
			want: Toggle{Key: "note", State: true},
		},
		{
			name: "false inside a word",
			attr: Attribute{Key: "flag", Value: Text("isFalse")},
			want: Toggle{Key: "flag", State: false},
		},
		{
			name: "native false beats true text",
			attr: Attribute{Key: "flag", Value: BoolValue(false)},
			want: Toggle{Key: "flag", State: false},
		},
		{
			name: "empty value is text",
			attr: Attribute{Key: "summary", Value: Text("")},
			want: TextInput{Key: "summary", Current: ""},
		},
		{
			name: "list without preset is text",
			attr: Attribute{Key: "aliases", Value: ListValue([]string{"a", "b"})},
			want: TextInput{Key: "aliases", Current: "a, b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.attr, presets)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Classify() = %#v, want %#v", got, tt.want)
			}
			if got.AttributeKey() != tt.attr.Key {
				t.Errorf("AttributeKey() = %q, want %q", got.AttributeKey(), tt.attr.Key)
			}
		})
	}
}

func TestClassifyCycleWrapsAndUnknown(t *testing.T) {
	presets := Presets{{Name: "n", Values: []string{"1", "2", "3"}, Cycle: true}}

	got := Classify(Attribute{Key: "n", Value: Text("3")}, presets).(Cycle)
	if got.Next != "1" {
		t.Errorf("next after 3 = %q, want 1", got.Next)
	}

	got = Classify(Attribute{Key: "n", Value: Text("9")}, presets).(Cycle)
	if got.Next != "1" {
		t.Errorf("next after unknown = %q, want 1", got.Next)
	}
}

func TestKindName(t *testing.T) {
	tests := []struct {
		a    Affordance
		want string
	}{
		{Cycle{}, "cycle"},
		{MultiSelect{}, "multi_select"},
		{SingleSelect{}, "single_select"},
		{Toggle{}, "toggle"},
		{TextInput{}, "text_input"},
	}
	for _, tt := range tests {
		if got := KindName(tt.a); got != tt.want {
			t.Errorf("KindName(%T) = %q, want %q", tt.a, got, tt.want)
		}
	}
}
