package fields

// Preset describes how a given attribute key should be edited.
type Preset struct {
	// Name is the attribute key the preset applies to.
	Name string `toml:"name" json:"name"`

	// Values is the enumerated set of allowed values, in cycle order.
	Values []string `toml:"values" json:"values,omitempty"`

	// Cycle advances the value to the next entry of Values in place.
	Cycle bool `toml:"cycle" json:"cycle,omitempty"`

	// Multi lets the user pick a subset of Values.
	Multi bool `toml:"multi" json:"multi,omitempty"`
}

// HasValues reports whether the preset declares an enumerated value set.
func (p Preset) HasValues() bool {
	return len(p.Values) > 0
}

// Presets is an ordered list of presets.
type Presets []Preset

// Lookup returns the first preset whose name equals key.
func (p Presets) Lookup(key string) (Preset, bool) {
	for _, preset := range p {
		if preset.Name == key {
			return preset, true
		}
	}
	return Preset{}, false
}
