package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"rollcall/internal/config"
	"rollcall/internal/corpus"
	"rollcall/internal/dictstore"
	"rollcall/internal/logging"
	"rollcall/internal/names"
	"rollcall/internal/runlog"
)

// Publisher replaces the persisted artifacts.
type Publisher interface {
	Publish(ctx context.Context, dir *names.Directory, highRisk []string) (*dictstore.Published, error)
}

// Ledger records run outcomes.
type Ledger interface {
	Record(ctx context.Context, run runlog.Run) error
}

// Report summarizes a completed run.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Partitions []corpus.Partition
	Skipped    []corpus.Skip
	Stats      names.BootstrapStats
	Directory  *names.Directory
	HighRisk   []string
	Published  *dictstore.Published
}

// Runner executes bootstrap runs for one configuration.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	publisher Publisher
	ledger    Ledger
	now       func() time.Time
	newID     func() string
}

// Option customizes a Runner.
type Option func(*Runner)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) { r.now = now }
}

// WithIDGenerator overrides how run identifiers are generated.
func WithIDGenerator(fn func() string) Option {
	return func(r *Runner) { r.newID = fn }
}

// NewRunner returns a runner. ledger may be nil to skip run recording.
func NewRunner(cfg *config.Config, logger *slog.Logger, publisher Publisher, ledger Ledger, opts ...Option) *Runner {
	r := &Runner{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "bootstrap"),
		publisher: publisher,
		ledger:    ledger,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one bootstrap over the configured corpus. The artifacts are
// only replaced when every step before persistence succeeded.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	report := &Report{RunID: r.newID(), StartedAt: r.now()}
	ctx = logging.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, r.logger)
	logger.Info("bootstrap started",
		logging.String(logging.FieldEventType, "bootstrap_start"),
		logging.String("raw_dir", r.cfg.Paths.RawDir),
	)

	err := r.run(ctx, logger, report)
	report.FinishedAt = r.now()
	r.record(ctx, logger, report, err)
	if err != nil {
		logging.ErrorWithContext(logger, "bootstrap failed", "bootstrap_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, hintFor(err)),
		)
		return report, err
	}

	logger.Info("bootstrap completed",
		logging.String(logging.FieldEventType, "bootstrap_complete"),
		logging.Int("partitions", len(report.Partitions)),
		logging.Int("entries", report.Stats.Entries),
		logging.Int("high_risk", report.Stats.HighRisk),
		logging.String("directory_version", report.Directory.Version()),
		logging.Duration("duration", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report, nil
}

func (r *Runner) run(ctx context.Context, logger *slog.Logger, report *Report) error {
	paths, err := corpus.Discover(r.cfg.Paths.RawDir, r.cfg.Corpus.FilePattern)
	if err != nil {
		return err
	}

	agg := corpus.Aggregator{
		Field:   r.cfg.Corpus.NameField,
		Workers: r.cfg.Corpus.Workers,
		Logger:  logger,
	}
	merged, err := agg.Aggregate(ctx, paths)
	if err != nil {
		return err
	}
	report.Partitions = merged.Partitions
	report.Skipped = merged.Skipped
	if len(merged.Partitions) == 0 {
		return fmt.Errorf("%w: all %d partitions were skipped", corpus.ErrNoPartitions, len(paths))
	}

	result, err := names.Bootstrap(ctx, merged.Fields, r.cfg.BootstrapOptions())
	if err != nil {
		return fmt.Errorf("resolve names: %w", err)
	}
	report.Stats = result.Stats
	report.Directory = result.Directory
	report.HighRisk = result.HighRisk
	logger.Debug("names resolved",
		logging.Int("fields", result.Stats.Fields),
		logging.Int("distinct", result.Stats.Distinct),
		logging.Int("confirmed", result.Stats.Confirmed),
		logging.Int("resolved", result.Stats.Resolved),
	)
	for _, raw := range result.HighRisk {
		logger.Debug("value left unresolved", logging.String("raw", raw))
	}

	published, err := r.publisher.Publish(ctx, result.Directory, result.HighRisk)
	if err != nil {
		return err
	}
	report.Published = published
	return nil
}

// record appends the outcome to the ledger. Ledger failures are logged but
// do not fail the run; the artifacts are already in place.
func (r *Runner) record(ctx context.Context, logger *slog.Logger, report *Report, runErr error) {
	if r.ledger == nil {
		return
	}
	entry := runlog.Run{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Status:     runlog.StatusSucceeded,
		Partitions: len(report.Partitions),
		Skipped:    len(report.Skipped),
		Fields:     report.Stats.Fields,
		Confirmed:  report.Stats.Confirmed,
		Entries:    report.Stats.Entries,
		HighRisk:   report.Stats.HighRisk,
	}
	if runErr != nil {
		entry.Status = runlog.StatusFailed
		entry.Error = runErr.Error()
	} else if report.Published != nil {
		entry.DirectoryVersion = report.Published.Version
	}

	// Record even when the run was cancelled.
	recordCtx := context.WithoutCancel(ctx)
	if err := r.ledger.Record(recordCtx, entry); err != nil {
		logging.WarnWithContext(logger, "failed to record bootstrap run", "runlog_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "run is missing from rollcall runs"),
		)
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, corpus.ErrNoPartitions):
		return "check paths.raw_dir and corpus.file_pattern"
	case errors.Is(err, dictstore.ErrLocked):
		return "wait for the other bootstrap to finish"
	case errors.Is(err, dictstore.ErrPersist):
		return "check free space and permissions on paths.dict_dir"
	case errors.Is(err, context.Canceled):
		return "run was interrupted; previous artifacts are unchanged"
	default:
		return "check logs for details"
	}
}
