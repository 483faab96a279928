package textutil

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalizer transforms a raw value before lookup.
type Normalizer func(string) string

// Supported normalization modes.
const (
	ModeNone = "none"
	ModeNFC  = "nfc"
	ModeNFKC = "nfkc"
)

// NormalizeNone returns the value unchanged.
func NormalizeNone(s string) string {
	return s
}

// NormalizeNFC composes the value into canonical form.
func NormalizeNFC(s string) string {
	return norm.NFC.String(s)
}

// NormalizeNFKC applies compatibility composition, folding full-width Latin
// letters and digits into their ASCII forms.
func NormalizeNFKC(s string) string {
	return norm.NFKC.String(s)
}

// Modes lists the accepted normalization modes.
func Modes() []string {
	return []string{ModeNone, ModeNFC, ModeNFKC}
}

// GetNormalizer returns the normalizer for mode. An empty mode means none.
func GetNormalizer(mode string) (Normalizer, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeNone:
		return NormalizeNone, nil
	case ModeNFC:
		return NormalizeNFC, nil
	case ModeNFKC:
		return NormalizeNFKC, nil
	default:
		return nil, fmt.Errorf("unsupported normalization %q (want one of %s)", mode, strings.Join(Modes(), ", "))
	}
}
