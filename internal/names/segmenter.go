package names

import "strings"

// DefaultMaxLen is the scan window used when the directory is empty.
const DefaultMaxLen = 4

// DefaultSeparator joins a teacher list into one field.
const DefaultSeparator = ", "

// SegmenterOptions configures a Segmenter.
type SegmenterOptions struct {
	Placeholders   Placeholders
	Normalize      func(string) string
	FallbackMaxLen int
	Separator      string
}

// Segmenter splits raw values with forward greedy longest-match against a
// directory snapshot. It is safe for concurrent use.
type Segmenter struct {
	dir          *Directory
	maxLen       int
	placeholders Placeholders
	normalize    func(string) string
	separator    string
}

// NewSegmenter prepares a segmenter for dir. A nil dir behaves as empty.
func NewSegmenter(dir *Directory, opts SegmenterOptions) *Segmenter {
	if dir == nil {
		dir = EmptyDirectory()
	}
	maxLen := dir.MaxNameLen()
	if maxLen == 0 {
		maxLen = opts.FallbackMaxLen
		if maxLen <= 0 {
			maxLen = DefaultMaxLen
		}
	}
	sep := opts.Separator
	if sep == "" {
		sep = DefaultSeparator
	}
	return &Segmenter{
		dir:          dir,
		maxLen:       maxLen,
		placeholders: opts.Placeholders,
		normalize:    opts.Normalize,
		separator:    sep,
	}
}

// MaxLen returns the widest window the scan tries.
func (s *Segmenter) MaxLen() int {
	return s.maxLen
}

// Directory returns the snapshot the segmenter reads.
func (s *Segmenter) Directory() *Directory {
	return s.dir
}

// Split returns the directory names found in raw, left to right. At each
// position the widest window down to two characters is tried; a position
// where nothing matches is skipped and produces no token. Placeholders
// yield the synthetic name.
func (s *Segmenter) Split(raw string) []string {
	text := cleanValue(raw, s.normalize)
	if text == "" {
		return nil
	}
	if synthetic, ok := s.placeholders.Substitute(text); ok {
		return []string{synthetic}
	}

	r := []rune(text)
	n := len(r)
	var out []string
	for i := 0; i < n; {
		matched := 0
		window := min(n-i, s.maxLen)
		for width := window; width >= 2; width-- {
			candidate := string(r[i : i+width])
			if s.dir.Contains(candidate) {
				out = append(out, candidate)
				matched = width
				break
			}
		}
		if matched == 0 {
			i++
			continue
		}
		i += matched
	}
	return out
}

// TeacherList is the list attached to a record. When Split finds nothing in
// a non-blank value the cleaned value itself is kept.
func (s *Segmenter) TeacherList(raw string) []string {
	tokens := s.Split(raw)
	if len(tokens) > 0 {
		return tokens
	}
	if text := cleanValue(raw, s.normalize); text != "" {
		return []string{text}
	}
	return nil
}

// Join serializes TeacherList with the configured separator.
func (s *Segmenter) Join(raw string) string {
	return strings.Join(s.TeacherList(raw), s.separator)
}
