package config

import (
	"rollcall/internal/names"
	"rollcall/internal/textutil"
)

// Placeholders returns the configured placeholder table.
func (c *Config) Placeholders() names.Placeholders {
	return names.NewPlaceholders(c.Names.Placeholders, c.Names.PlaceholderName)
}

// IDFormat returns the configured directory identifier format.
func (c *Config) IDFormat() names.IDFormat {
	return names.IDFormat{Prefix: c.Directory.IDPrefix, Width: c.Directory.IDWidth}
}

// Normalizer returns the configured raw value normalizer. Validate has
// already rejected unknown modes.
func (c *Config) Normalizer() textutil.Normalizer {
	fn, err := textutil.GetNormalizer(c.Names.Normalization)
	if err != nil {
		return textutil.NormalizeNone
	}
	return fn
}

// BootstrapOptions returns engine options for a bootstrap run.
func (c *Config) BootstrapOptions() names.BootstrapOptions {
	return names.BootstrapOptions{
		Placeholders: c.Placeholders(),
		IDs:          c.IDFormat(),
		Normalize:    c.Normalizer(),
		Workers:      c.Corpus.Workers,
	}
}

// SegmenterOptions returns engine options for the application phase.
func (c *Config) SegmenterOptions() names.SegmenterOptions {
	return names.SegmenterOptions{
		Placeholders:   c.Placeholders(),
		Normalize:      c.Normalizer(),
		FallbackMaxLen: c.Directory.FallbackMaxLen,
		Separator:      c.Corpus.ListSeparator,
	}
}
