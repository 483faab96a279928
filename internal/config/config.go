package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	RawDir       string `toml:"raw_dir"`
	DictDir      string `toml:"dict_dir"`
	ProcessedDir string `toml:"processed_dir"`
	LogDir       string `toml:"log_dir"`
	StateDir     string `toml:"state_dir"`
}

// Corpus describes the raw tabular partitions.
type Corpus struct {
	FilePattern   string `toml:"file_pattern"`
	NameField     string `toml:"name_field"`
	ListField     string `toml:"list_field"`
	ListSeparator string `toml:"list_separator"`
	Workers       int    `toml:"workers"`
}

// Names configures raw value handling shared by both phases.
type Names struct {
	Placeholders    []string `toml:"placeholders"`
	PlaceholderName string   `toml:"placeholder_name"`
	Normalization   string   `toml:"normalization"`
}

// Directory configures the persisted dictionary artifacts.
type Directory struct {
	AutoFile       string `toml:"auto_file"`
	CuratedFile    string `toml:"curated_file"`
	HighRiskFile   string `toml:"high_risk_file"`
	IDPrefix       string `toml:"id_prefix"`
	IDWidth        int    `toml:"id_width"`
	FallbackMaxLen int    `toml:"fallback_max_len"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for rollcall.
//
// Configuration sections:
//   - Paths: corpus, dictionary, output, log, and state directories
//   - Corpus: partition file pattern, personnel column, output column
//   - Names: placeholder markers and raw value normalization
//   - Directory: artifact file names and identifier format
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Corpus    Corpus    `toml:"corpus"`
	Names     Names     `toml:"names"`
	Directory Directory `toml:"directory"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/rollcall/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		info, err := os.Stat(expanded)
		if err != nil {
			if os.IsNotExist(err) {
				return "", false, fmt.Errorf("config file %s not found", expanded)
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config path %s is a directory", expanded)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("rollcall.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories rollcall writes to. The raw
// corpus directory is only read and is left alone.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DictDir, c.Paths.ProcessedDir, c.Paths.LogDir, c.Paths.StateDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// AutoDictionaryPath is where bootstrap writes the generated directory.
func (c *Config) AutoDictionaryPath() string {
	return filepath.Join(c.Paths.DictDir, c.Directory.AutoFile)
}

// CuratedDictionaryPath is the manually maintained directory read at
// normalization time.
func (c *Config) CuratedDictionaryPath() string {
	return filepath.Join(c.Paths.DictDir, c.Directory.CuratedFile)
}

// HighRiskPath is where bootstrap writes unresolved raw values.
func (c *Config) HighRiskPath() string {
	return filepath.Join(c.Paths.DictDir, c.Directory.HighRiskFile)
}

// RunLogPath is the SQLite database recording bootstrap runs.
func (c *Config) RunLogPath() string {
	return filepath.Join(c.Paths.StateDir, "runs.db")
}

// LogFilePath is the file log output is appended to.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "rollcall.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
