package names

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// ConfirmedLength is the rune length of a value trusted as one individual.
const ConfirmedLength = 3

// ConfirmedSet holds the three-character names trusted as ground truth for a
// bootstrap run. It is immutable once built.
type ConfirmedSet struct {
	names map[string]struct{}
}

// NewConfirmedSet builds a set from names, keeping only those that are
// exactly ConfirmedLength runes.
func NewConfirmedSet(names ...string) ConfirmedSet {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if utf8.RuneCountInString(name) == ConfirmedLength {
			set[name] = struct{}{}
		}
	}
	return ConfirmedSet{names: set}
}

// ExtractConfirmed scans raw field values and collects those that already
// name exactly one individual. Placeholder markers are never confirmed.
func ExtractConfirmed(fields []string, placeholders Placeholders) ConfirmedSet {
	set := make(map[string]struct{})
	for _, raw := range fields {
		raw = strings.TrimSpace(raw)
		if _, ok := placeholders.Substitute(raw); ok {
			continue
		}
		if utf8.RuneCountInString(raw) == ConfirmedLength {
			set[raw] = struct{}{}
		}
	}
	return ConfirmedSet{names: set}
}

// Contains reports whether name is confirmed.
func (c ConfirmedSet) Contains(name string) bool {
	_, ok := c.names[name]
	return ok
}

// Len returns the number of confirmed names.
func (c ConfirmedSet) Len() int {
	return len(c.names)
}

// Names returns the confirmed names in lexicographic order.
func (c ConfirmedSet) Names() []string {
	out := make([]string, 0, len(c.names))
	for name := range c.names {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Union merges two sets. Extraction over separate shards can be combined
// with Union in any order.
func (c ConfirmedSet) Union(other ConfirmedSet) ConfirmedSet {
	set := make(map[string]struct{}, len(c.names)+len(other.names))
	for name := range c.names {
		set[name] = struct{}{}
	}
	for name := range other.names {
		set[name] = struct{}{}
	}
	return ConfirmedSet{names: set}
}
