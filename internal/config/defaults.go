package config

const (
	defaultRawDir          = "~/.local/share/rollcall/raw"
	defaultDictDir         = "~/.local/share/rollcall/dict"
	defaultProcessedDir    = "~/.local/share/rollcall/processed"
	defaultLogDir          = "~/.local/share/rollcall/logs"
	defaultStateDir        = "~/.local/share/rollcall/state"
	defaultFilePattern     = "courses_*.csv"
	defaultNameField       = "教師姓名"
	defaultListField       = "教師列表"
	defaultListSeparator   = ", "
	defaultWorkers         = 4
	defaultPlaceholderName = "校際教"
	defaultNormalization   = "none"
	defaultAutoFile        = "teacher_dict_auto.csv"
	defaultCuratedFile     = "teacher.csv"
	defaultHighRiskFile    = "teacher_high_risk.csv"
	defaultIDPrefix        = "T"
	defaultIDWidth         = 3
	defaultFallbackMaxLen  = 4
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
)

var defaultPlaceholders = []string{"校際教師", "校外教師"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	placeholders := make([]string, len(defaultPlaceholders))
	copy(placeholders, defaultPlaceholders)
	return Config{
		Paths: Paths{
			RawDir:       defaultRawDir,
			DictDir:      defaultDictDir,
			ProcessedDir: defaultProcessedDir,
			LogDir:       defaultLogDir,
			StateDir:     defaultStateDir,
		},
		Corpus: Corpus{
			FilePattern:   defaultFilePattern,
			NameField:     defaultNameField,
			ListField:     defaultListField,
			ListSeparator: defaultListSeparator,
			Workers:       defaultWorkers,
		},
		Names: Names{
			Placeholders:    placeholders,
			PlaceholderName: defaultPlaceholderName,
			Normalization:   defaultNormalization,
		},
		Directory: Directory{
			AutoFile:       defaultAutoFile,
			CuratedFile:    defaultCuratedFile,
			HighRiskFile:   defaultHighRiskFile,
			IDPrefix:       defaultIDPrefix,
			IDWidth:        defaultIDWidth,
			FallbackMaxLen: defaultFallbackMaxLen,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
