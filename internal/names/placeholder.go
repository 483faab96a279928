package names

import "strings"

// DefaultSyntheticName is the canonical name assigned to non-individual
// teacher markers.
const DefaultSyntheticName = "校際教"

var defaultPlaceholderTokens = []string{"校際教師", "校外教師"}

// Placeholders maps literal marker strings to a single synthetic name. The
// zero value matches nothing.
type Placeholders struct {
	tokens    map[string]struct{}
	synthetic string
}

// NewPlaceholders builds a placeholder table. Blank tokens are ignored.
func NewPlaceholders(tokens []string, synthetic string) Placeholders {
	set := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		set[token] = struct{}{}
	}
	return Placeholders{tokens: set, synthetic: strings.TrimSpace(synthetic)}
}

// DefaultPlaceholders returns the inter-school and external teacher markers.
func DefaultPlaceholders() Placeholders {
	return NewPlaceholders(defaultPlaceholderTokens, DefaultSyntheticName)
}

// Substitute reports the synthetic name when raw is a placeholder marker.
func (p Placeholders) Substitute(raw string) (string, bool) {
	if len(p.tokens) == 0 {
		return raw, false
	}
	if _, ok := p.tokens[raw]; ok {
		return p.synthetic, true
	}
	return raw, false
}

// Synthetic returns the canonical name placeholders map to.
func (p Placeholders) Synthetic() string {
	return p.synthetic
}
