package domain

import (
	"encoding/json"
	"sort"
	"strings"
)

// SelectedOptions maps an option-group name to the chosen value(s). Groups
// are unique within a selection; multi-select groups hold several values.
// Order is irrelevant everywhere: Signature canonicalizes it.
type SelectedOptions map[string][]string

// UnmarshalJSON accepts both `"value"` and `["a","b"]` per group, matching
// the shapes clients submit for single- and multi-select groups.
func (o *SelectedOptions) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(SelectedOptions, len(raw))
	for group, val := range raw {
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			out[group] = []string{single}
			continue
		}
		var many []string
		if err := json.Unmarshal(val, &many); err != nil {
			return err
		}
		out[group] = many
	}
	*o = out
	return nil
}

// Get returns the single selected value for a group, if exactly one non-empty
// value was chosen
func (o SelectedOptions) Get(group string) (string, bool) {
	vals := o[group]
	if len(vals) == 1 && strings.TrimSpace(vals[0]) != "" {
		return vals[0], true
	}
	return "", false
}

// Signature is the canonical serialization used for merge-key equality:
// groups sorted by name, values sorted within each group. Two selections
// that differ only in ordering produce the same signature.
func (o SelectedOptions) Signature() string {
	if len(o) == 0 {
		return ""
	}
	groups := make([]string, 0, len(o))
	for g := range o {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		vals := append([]string(nil), o[g]...)
		sort.Strings(vals)
		parts = append(parts, g+"="+strings.Join(vals, ","))
	}
	return strings.Join(parts, "|")
}

// Label renders the selection for display, e.g. "package: deluxe | ribbon: red"
func (o SelectedOptions) Label() string {
	if len(o) == 0 {
		return ""
	}
	groups := make([]string, 0, len(o))
	for g := range o {
		groups = append(groups, g)
	}
	sort.Strings(groups)

	parts := make([]string, 0, len(groups))
	for _, g := range groups {
		vals := o[g]
		if len(vals) == 0 {
			continue
		}
		parts = append(parts, g+": "+strings.Join(vals, ", "))
	}
	return strings.Join(parts, " | ")
}

// Clone returns a deep copy so callers can hold selections without sharing
func (o SelectedOptions) Clone() SelectedOptions {
	if o == nil {
		return nil
	}
	out := make(SelectedOptions, len(o))
	for g, vals := range o {
		out[g] = append([]string(nil), vals...)
	}
	return out
}
