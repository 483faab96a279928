package dictstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"rollcall/internal/config"
	"rollcall/internal/fileutil"
	"rollcall/internal/logging"
	"rollcall/internal/names"
)

const lockFileName = ".rollcall.lock"

// Store reads and writes the artifacts in one dictionary directory.
type Store struct {
	dir          string
	autoPath     string
	curatedPath  string
	highRiskPath string
	lockPath     string
}

// New returns a store for the configured dictionary directory.
func New(cfg *config.Config) *Store {
	return &Store{
		dir:          cfg.Paths.DictDir,
		autoPath:     cfg.AutoDictionaryPath(),
		curatedPath:  cfg.CuratedDictionaryPath(),
		highRiskPath: cfg.HighRiskPath(),
		lockPath:     filepath.Join(cfg.Paths.DictDir, lockFileName),
	}
}

// AutoPath is the generated directory artifact.
func (s *Store) AutoPath() string { return s.autoPath }

// CuratedPath is the manually maintained directory artifact.
func (s *Store) CuratedPath() string { return s.curatedPath }

// HighRiskPath is the high-risk artifact.
func (s *Store) HighRiskPath() string { return s.highRiskPath }

// Lock takes the single-writer lock on the dictionary directory. It fails
// with ErrLocked instead of waiting.
func (s *Store) Lock() (unlock func() error, err error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create dictionary directory: %w", err)
	}
	lock := flock.New(s.lockPath)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, s.lockPath)
	}
	return lock.Unlock, nil
}

// Published describes artifacts written by Publish.
type Published struct {
	DirectoryPath     string
	HighRiskPath      string
	Version           string
	DirectoryChecksum string
	HighRiskChecksum  string
}

// Publish replaces the generated directory and the high-risk list together.
// The lock is held for the duration of the write.
func (s *Store) Publish(ctx context.Context, dir *names.Directory, highRisk []string) (*Published, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	unlock, err := s.Lock()
	if err != nil {
		return nil, err
	}
	defer func() { _ = unlock() }()

	dirFile, err := fileutil.Stage(s.autoPath, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}
	riskFile, err := fileutil.Stage(s.highRiskPath, 0o644)
	if err != nil {
		dirFile.Abort()
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if err := EncodeDirectory(dirFile, dir); err != nil {
		fileutil.AbortAll(dirFile, riskFile)
		return nil, fmt.Errorf("%w: encode %s: %w", ErrPersist, s.autoPath, err)
	}
	if err := EncodeHighRisk(riskFile, highRisk); err != nil {
		fileutil.AbortAll(dirFile, riskFile)
		return nil, fmt.Errorf("%w: encode %s: %w", ErrPersist, s.highRiskPath, err)
	}
	if err := ctx.Err(); err != nil {
		fileutil.AbortAll(dirFile, riskFile)
		return nil, err
	}
	if err := fileutil.CommitAll(dirFile, riskFile); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return &Published{
		DirectoryPath:     s.autoPath,
		HighRiskPath:      s.highRiskPath,
		Version:           dir.Version(),
		DirectoryChecksum: dirFile.Checksum(),
		HighRiskChecksum:  riskFile.Checksum(),
	}, nil
}

// LoadDirectory reads the directory artifact at path. A missing file wraps
// fs.ErrNotExist.
func LoadDirectory(path string) (*names.Directory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open directory %s: %w", path, err)
	}
	defer f.Close()
	dir, err := DecodeDirectory(f)
	if err != nil {
		return nil, fmt.Errorf("decode directory %s: %w", path, err)
	}
	return dir, nil
}

// LoadHighRisk reads the high-risk artifact at path.
func LoadHighRisk(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open high-risk list %s: %w", path, err)
	}
	defer f.Close()
	raws, err := DecodeHighRisk(f)
	if err != nil {
		return nil, fmt.Errorf("decode high-risk list %s: %w", path, err)
	}
	return raws, nil
}

// Source names where a snapshot came from.
type Source string

const (
	SourceCurated Source = "curated"
	SourceAuto    Source = "auto"
	SourceEmpty   Source = "empty"
)

// Snapshot is the directory used for one application run.
type Snapshot struct {
	Directory *names.Directory
	Source    Source
	Path      string
}

// LoadSnapshot returns the curated directory, falling back to the generated
// one and then to an empty directory. Fallbacks are logged as warnings; a
// file that exists but cannot be decoded is an error.
func (s *Store) LoadSnapshot(logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	dir, err := LoadDirectory(s.curatedPath)
	if err == nil {
		return &Snapshot{Directory: dir, Source: SourceCurated, Path: s.curatedPath}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	logging.WarnWithContext(logger, "curated directory missing; using generated directory", "directory_fallback",
		logging.String("path", s.curatedPath),
		logging.String(logging.FieldErrorHint, "review the generated directory and save it as "+filepath.Base(s.curatedPath)),
		logging.String(logging.FieldImpact, "names resolve against uncurated entries"),
	)

	dir, err = LoadDirectory(s.autoPath)
	if err == nil {
		return &Snapshot{Directory: dir, Source: SourceAuto, Path: s.autoPath}, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	logging.WarnWithContext(logger, "no directory found; every value falls back to its raw text", "directory_empty",
		logging.String("path", s.autoPath),
		logging.String(logging.FieldErrorHint, "run rollcall bootstrap first"),
		logging.String(logging.FieldImpact, "no names are split"),
	)
	return &Snapshot{Directory: names.EmptyDirectory(), Source: SourceEmpty}, nil
}
