package normalize

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"rollcall/internal/config"
	"rollcall/internal/corpus"
	"rollcall/internal/dictstore"
	"rollcall/internal/fileutil"
	"rollcall/internal/logging"
	"rollcall/internal/names"
	"rollcall/internal/tabular"
)

// Output describes one normalized partition.
type Output struct {
	Source    string
	Path      string
	Records   int
	Fallbacks int
}

// Report summarizes a normalization run.
type Report struct {
	Snapshot *dictstore.Snapshot
	Outputs  []Output
	Skipped  []corpus.Skip
}

// Records is the total number of rows written.
func (r *Report) Records() int {
	total := 0
	for _, o := range r.Outputs {
		total += o.Records
	}
	return total
}

// Runner normalizes the configured corpus.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	store  *dictstore.Store
}

// NewRunner returns a runner reading directories from store.
func NewRunner(cfg *config.Config, logger *slog.Logger, store *dictstore.Store) *Runner {
	return &Runner{
		cfg:    cfg,
		logger: logging.NewComponentLogger(logger, "normalize"),
		store:  store,
	}
}

// Run normalizes every partition. Unreadable partitions are skipped.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	snapshot, err := r.store.LoadSnapshot(r.logger)
	if err != nil {
		return nil, err
	}
	seg := names.NewSegmenter(snapshot.Directory, r.cfg.SegmenterOptions())
	r.logger.Info("directory loaded",
		logging.String("source", string(snapshot.Source)),
		logging.String("path", snapshot.Path),
		logging.Int("entries", snapshot.Directory.Len()),
		logging.Int("max_len", seg.MaxLen()),
	)

	paths, err := corpus.Discover(r.cfg.Paths.RawDir, r.cfg.Corpus.FilePattern)
	if err != nil {
		return nil, err
	}

	outputs := make([]Output, len(paths))
	errs := make([]error, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Corpus.Workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := r.normalizePartition(path, seg)
			outputs[i] = out
			errs[i] = err
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Snapshot: snapshot}
	for i, path := range paths {
		if err := errs[i]; err != nil {
			report.Skipped = append(report.Skipped, corpus.Skip{Path: path, Err: err})
			logging.WarnWithContext(r.logger, "partition not normalized", "corpus_partition_skipped",
				logging.String(logging.FieldPartition, path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "no processed file is written for this partition"),
			)
			continue
		}
		report.Outputs = append(report.Outputs, outputs[i])
		r.logger.Debug("partition normalized",
			logging.String(logging.FieldPartition, path),
			logging.String("output", outputs[i].Path),
			logging.Int("records", outputs[i].Records),
			logging.Int("fallbacks", outputs[i].Fallbacks),
		)
	}
	if len(report.Outputs) == 0 {
		return report, fmt.Errorf("%w: all %d partitions were skipped", corpus.ErrNoPartitions, len(paths))
	}

	r.logger.Info("normalization completed",
		logging.String(logging.FieldEventType, "normalize_complete"),
		logging.Int("partitions", len(report.Outputs)),
		logging.Int("skipped", len(report.Skipped)),
		logging.Int("records", report.Records()),
	)
	return report, nil
}

func (r *Runner) normalizePartition(path string, seg *names.Segmenter) (Output, error) {
	table, err := corpus.ReadTable(path)
	if err != nil {
		return Output{}, err
	}

	fallbacks := 0
	records, err := corpus.Attach(table, r.cfg.Corpus.NameField, r.cfg.Corpus.ListField, func(raw string) string {
		if strings.TrimSpace(raw) != "" && len(seg.Split(raw)) == 0 {
			fallbacks++
		}
		return seg.Join(raw)
	})
	if err != nil {
		return Output{}, fmt.Errorf("%s: %w", path, err)
	}

	dest := filepath.Join(r.cfg.Paths.ProcessedDir, filepath.Base(path))
	err = fileutil.WriteAtomic(dest, 0o644, func(w io.Writer) error {
		return tabular.Write(w, table.Header, table.Rows)
	})
	if err != nil {
		return Output{}, fmt.Errorf("write %s: %w", dest, err)
	}
	return Output{Source: path, Path: dest, Records: records, Fallbacks: fallbacks}, nil
}
