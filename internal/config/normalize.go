package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.applyEnv()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCorpus()
	c.normalizeNames()
	c.normalizeDirectory()
	c.normalizeLogging()
	return nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("ROLLCALL_RAW_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.RawDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("ROLLCALL_DICT_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DictDir = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("ROLLCALL_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.TrimSpace(value)
	}
}

func (c *Config) normalizePaths() error {
	fields := []struct {
		key   string
		value *string
		def   string
	}{
		{"paths.raw_dir", &c.Paths.RawDir, defaultRawDir},
		{"paths.dict_dir", &c.Paths.DictDir, defaultDictDir},
		{"paths.processed_dir", &c.Paths.ProcessedDir, defaultProcessedDir},
		{"paths.log_dir", &c.Paths.LogDir, defaultLogDir},
		{"paths.state_dir", &c.Paths.StateDir, defaultStateDir},
	}
	for _, field := range fields {
		if strings.TrimSpace(*field.value) == "" {
			*field.value = field.def
		}
		expanded, err := expandPath(strings.TrimSpace(*field.value))
		if err != nil {
			return fmt.Errorf("%s: %w", field.key, err)
		}
		*field.value = expanded
	}
	return nil
}

func (c *Config) normalizeCorpus() {
	c.Corpus.FilePattern = strings.TrimSpace(c.Corpus.FilePattern)
	if c.Corpus.FilePattern == "" {
		c.Corpus.FilePattern = defaultFilePattern
	}
	c.Corpus.NameField = strings.TrimSpace(c.Corpus.NameField)
	if c.Corpus.NameField == "" {
		c.Corpus.NameField = defaultNameField
	}
	c.Corpus.ListField = strings.TrimSpace(c.Corpus.ListField)
	if c.Corpus.ListField == "" {
		c.Corpus.ListField = defaultListField
	}
	if c.Corpus.ListSeparator == "" {
		c.Corpus.ListSeparator = defaultListSeparator
	}
}

func (c *Config) normalizeNames() {
	placeholders := make([]string, 0, len(c.Names.Placeholders))
	for _, token := range c.Names.Placeholders {
		if token = strings.TrimSpace(token); token != "" {
			placeholders = append(placeholders, token)
		}
	}
	c.Names.Placeholders = placeholders
	c.Names.PlaceholderName = strings.TrimSpace(c.Names.PlaceholderName)
	c.Names.Normalization = strings.ToLower(strings.TrimSpace(c.Names.Normalization))
	if c.Names.Normalization == "" {
		c.Names.Normalization = defaultNormalization
	}
}

func (c *Config) normalizeDirectory() {
	c.Directory.AutoFile = strings.TrimSpace(c.Directory.AutoFile)
	if c.Directory.AutoFile == "" {
		c.Directory.AutoFile = defaultAutoFile
	}
	c.Directory.CuratedFile = strings.TrimSpace(c.Directory.CuratedFile)
	if c.Directory.CuratedFile == "" {
		c.Directory.CuratedFile = defaultCuratedFile
	}
	c.Directory.HighRiskFile = strings.TrimSpace(c.Directory.HighRiskFile)
	if c.Directory.HighRiskFile == "" {
		c.Directory.HighRiskFile = defaultHighRiskFile
	}
	c.Directory.IDPrefix = strings.TrimSpace(c.Directory.IDPrefix)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
