// Package fields models note attributes (front-matter keys and inline
// "key:: value" fields) and the quick-edit rules applied to them.
//
// Everything in this package is pure: no file access, no UI.
package fields

import "strings"

// Value is the raw value of an attribute.
//
// Exactly one representation is meaningful: Bool when the source carried a
// native boolean, List when it carried a sequence, Text otherwise.
type Value struct {
	Text string
	Bool *bool
	List []string
}

// Text returns a plain text value.
func Text(s string) Value {
	return Value{Text: s}
}

// BoolValue returns a native boolean value.
func BoolValue(b bool) Value {
	return Value{Bool: &b}
}

// ListValue returns a list value.
func ListValue(items []string) Value {
	return Value{List: append([]string{}, items...)}
}

// IsBool reports whether the value is a native boolean.
func (v Value) IsBool() bool {
	return v.Bool != nil
}

// IsList reports whether the value is a list.
func (v Value) IsList() bool {
	return v.List != nil
}

// String returns the string form used for display, comparison and cycling.
// Lists are joined with ", " so that FormatValue reproduces their bracketed form.
func (v Value) String() string {
	switch {
	case v.Bool != nil:
		if *v.Bool {
			return "true"
		}
		return "false"
	case v.List != nil:
		return strings.Join(v.List, ", ")
	default:
		return v.Text
	}
}

// Attribute is a single key/value pair extracted from a note.
type Attribute struct {
	Key   string
	Value Value
}

// Attributes is an insertion-ordered set of attributes.
// Setting an existing key replaces its value but keeps its original position.
type Attributes struct {
	keys   []string
	values map[string]Value
}

// NewAttributes returns an empty attribute set.
func NewAttributes() *Attributes {
	return &Attributes{values: make(map[string]Value)}
}

// Set stores value under key.
func (a *Attributes) Set(key string, value Value) {
	if _, ok := a.values[key]; !ok {
		a.keys = append(a.keys, key)
	}
	a.values[key] = value
}

// Get returns the value stored under key.
func (a *Attributes) Get(key string) (Value, bool) {
	if a == nil {
		return Value{}, false
	}
	v, ok := a.values[key]
	return v, ok
}

// Delete removes key if present.
func (a *Attributes) Delete(key string) {
	if a == nil {
		return
	}
	if _, ok := a.values[key]; !ok {
		return
	}
	delete(a.values, key)
	for i, k := range a.keys {
		if k == key {
			a.keys = append(a.keys[:i], a.keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}
	return len(a.keys)
}

// Keys returns the attribute keys in insertion order.
func (a *Attributes) Keys() []string {
	if a == nil {
		return nil
	}
	return append([]string{}, a.keys...)
}

// All returns the attributes in insertion order.
func (a *Attributes) All() []Attribute {
	if a == nil {
		return nil
	}
	out := make([]Attribute, 0, len(a.keys))
	for _, k := range a.keys {
		out = append(out, Attribute{Key: k, Value: a.values[k]})
	}
	return out
}
