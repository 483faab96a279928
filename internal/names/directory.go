package names

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrInvalidToken is returned when a token violates the directory length rule.
var ErrInvalidToken = errors.New("invalid directory token")

// Entry is one directory row.
type Entry struct {
	ID    string
	Name  string
	Alias string
}

// IDFormat renders sequential identifiers as a prefix plus a zero-padded
// number.
type IDFormat struct {
	Prefix string
	Width  int
}

// DefaultIDFormat renders T001, T002, ...
func DefaultIDFormat() IDFormat {
	return IDFormat{Prefix: "T", Width: 3}
}

// Format renders the identifier for a 1-based sequence number. Numbers wider
// than Width are printed in full.
func (f IDFormat) Format(seq int) string {
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, seq)
}

// Directory is an immutable snapshot of the name directory. Accessors return
// copies; a changed directory is a new Directory with a new Version.
type Directory struct {
	entries []Entry
	byName  map[string]int
	maxLen  int
	version string
}

// BuildDirectory unions tokens, sorts them lexicographically and assigns
// identifiers starting at 1. Every token must satisfy ValidTokenLength.
func BuildDirectory(tokens []string, ids IDFormat) (*Directory, error) {
	unique := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if !ValidTokenLength(utf8.RuneCountInString(token)) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidToken, token)
		}
		unique[token] = struct{}{}
	}

	sorted := make([]string, 0, len(unique))
	for token := range unique {
		sorted = append(sorted, token)
	}
	sort.Strings(sorted)

	entries := make([]Entry, len(sorted))
	for i, name := range sorted {
		entries[i] = Entry{ID: ids.Format(i + 1), Name: name}
	}
	return newDirectory(entries), nil
}

// NewDirectory wraps persisted rows, which may carry manual edits. Names are
// trimmed, blank names are dropped and the first row wins for a repeated
// name. No length rule is applied.
func NewDirectory(rows []Entry) *Directory {
	seen := make(map[string]struct{}, len(rows))
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		row.Name = strings.TrimSpace(row.Name)
		if row.Name == "" {
			continue
		}
		if _, dup := seen[row.Name]; dup {
			continue
		}
		seen[row.Name] = struct{}{}
		row.ID = strings.TrimSpace(row.ID)
		row.Alias = strings.TrimSpace(row.Alias)
		entries = append(entries, row)
	}
	return newDirectory(entries)
}

// EmptyDirectory returns a valid directory with no entries.
func EmptyDirectory() *Directory {
	return newDirectory(nil)
}

func newDirectory(entries []Entry) *Directory {
	d := &Directory{
		entries: entries,
		byName:  make(map[string]int, len(entries)),
	}
	hash := sha256.New()
	for i, entry := range entries {
		d.byName[entry.Name] = i
		if n := utf8.RuneCountInString(entry.Name); n > d.maxLen {
			d.maxLen = n
		}
		fmt.Fprintf(hash, "%s\t%s\t%s\n", entry.ID, entry.Name, entry.Alias)
	}
	d.version = hex.EncodeToString(hash.Sum(nil))
	return d
}

// Len returns the number of entries.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.entries)
}

// Entries returns a copy of the rows in identifier order.
func (d *Directory) Entries() []Entry {
	if d == nil {
		return nil
	}
	out := make([]Entry, len(d.entries))
	copy(out, d.entries)
	return out
}

// Names returns the names in identifier order.
func (d *Directory) Names() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.entries))
	for i, entry := range d.entries {
		out[i] = entry.Name
	}
	return out
}

// Lookup returns the entry for name.
func (d *Directory) Lookup(name string) (Entry, bool) {
	if d == nil {
		return Entry{}, false
	}
	idx, ok := d.byName[name]
	if !ok {
		return Entry{}, false
	}
	return d.entries[idx], true
}

// Contains reports whether name is in the directory.
func (d *Directory) Contains(name string) bool {
	if d == nil {
		return false
	}
	_, ok := d.byName[name]
	return ok
}

// MaxNameLen returns the rune length of the longest name, or 0 when empty.
func (d *Directory) MaxNameLen() int {
	if d == nil {
		return 0
	}
	return d.maxLen
}

// Version identifies the directory content. Equal rows give equal versions.
func (d *Directory) Version() string {
	if d == nil {
		return EmptyDirectory().version
	}
	return d.version
}

// CollectHighRisk deduplicates and sorts rejected raw values.
func CollectHighRisk(raws []string) []string {
	seen := make(map[string]struct{}, len(raws))
	out := make([]string, 0, len(raws))
	for _, raw := range raws {
		if _, ok := seen[raw]; ok {
			continue
		}
		seen[raw] = struct{}{}
		out = append(out, raw)
	}
	sort.Strings(out)
	return out
}
