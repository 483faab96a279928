package names

// ValidTokenLength reports whether a token of n runes may enter the
// directory: exactly two, or a positive multiple of three.
func ValidTokenLength(n int) bool {
	return n == 2 || (n > 0 && n%ConfirmedLength == 0)
}

// ResolveBuffer turns one buffer run into tokens. An empty run yields no
// tokens. A two-character run is accepted as one token without any lookup,
// and a run whose length is a multiple of three is cut into consecutive
// three-character chunks. Any other length reports false.
func ResolveBuffer(run string) ([]string, bool) {
	r := []rune(run)
	switch {
	case len(r) == 0:
		return nil, true
	case len(r) == 2:
		return []string{run}, true
	case len(r)%ConfirmedLength == 0:
		chunks := make([]string, 0, len(r)/ConfirmedLength)
		for k := 0; k < len(r); k += ConfirmedLength {
			chunks = append(chunks, string(r[k:k+ConfirmedLength]))
		}
		return chunks, true
	default:
		return nil, false
	}
}

// Resolution is the outcome for one raw value: either the complete token
// list, or Unresolved with no tokens at all.
type Resolution struct {
	Raw        string
	Tokens     []string
	Unresolved bool
}

// OK reports whether the value resolved.
func (r Resolution) OK() bool {
	return !r.Unresolved
}

// Resolve partitions raw against the confirmed set and validates every
// buffer run. A single invalid run discards everything produced for raw.
func Resolve(raw string, confirmed ConfirmedSet) Resolution {
	part := Optimize(raw, confirmed)
	tokens := make([]string, 0, len(part))
	for _, seg := range part {
		if seg.Kind == SegmentMatch {
			tokens = append(tokens, seg.Text)
			continue
		}
		chunks, ok := ResolveBuffer(seg.Text)
		if !ok {
			return Resolution{Raw: raw, Unresolved: true}
		}
		tokens = append(tokens, chunks...)
	}
	return Resolution{Raw: raw, Tokens: tokens}
}
