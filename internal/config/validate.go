package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"rollcall/internal/textutil"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCorpus(); err != nil {
		return err
	}
	if err := c.validateNames(); err != nil {
		return err
	}
	if err := c.validateDirectory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.ProcessedDir != "" && filepath.Clean(c.Paths.ProcessedDir) == filepath.Clean(c.Paths.RawDir) {
		return errors.New("paths.processed_dir must differ from paths.raw_dir")
	}
	return nil
}

func (c *Config) validateCorpus() error {
	if _, err := filepath.Match(c.Corpus.FilePattern, ""); err != nil {
		return fmt.Errorf("corpus.file_pattern %q: %w", c.Corpus.FilePattern, err)
	}
	if c.Corpus.NameField == c.Corpus.ListField {
		return errors.New("corpus.list_field must differ from corpus.name_field")
	}
	if c.Corpus.Workers <= 0 {
		return errors.New("corpus.workers must be positive")
	}
	return nil
}

func (c *Config) validateNames() error {
	if len(c.Names.Placeholders) > 0 && c.Names.PlaceholderName == "" {
		return errors.New("names.placeholder_name must be set when names.placeholders is not empty")
	}
	if c.Names.PlaceholderName != "" && utf8.RuneCountInString(c.Names.PlaceholderName) != 3 {
		return fmt.Errorf("names.placeholder_name %q must be exactly 3 characters", c.Names.PlaceholderName)
	}
	if _, err := textutil.GetNormalizer(c.Names.Normalization); err != nil {
		return fmt.Errorf("names.normalization: %w", err)
	}
	return nil
}

func (c *Config) validateDirectory() error {
	files := map[string]string{
		"directory.auto_file":      c.Directory.AutoFile,
		"directory.curated_file":   c.Directory.CuratedFile,
		"directory.high_risk_file": c.Directory.HighRiskFile,
	}
	for key, name := range files {
		if strings.ContainsAny(name, `/\`) {
			return fmt.Errorf("%s must be a file name, got %q", key, name)
		}
	}
	if c.Directory.AutoFile == c.Directory.HighRiskFile {
		return errors.New("directory.auto_file and directory.high_risk_file must differ")
	}
	if c.Directory.IDWidth <= 0 {
		return errors.New("directory.id_width must be positive")
	}
	if c.Directory.FallbackMaxLen < 2 {
		return errors.New("directory.fallback_max_len must be at least 2")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
