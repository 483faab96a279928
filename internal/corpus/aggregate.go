package corpus

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"rollcall/internal/logging"
)

// Partition summarizes one partition that contributed to a corpus.
type Partition struct {
	Path   string
	Fields int
}

// Skip records a partition left out of a corpus.
type Skip struct {
	Path string
	Err  error
}

// Corpus is the merged personnel field of every readable partition, in
// partition order then row order.
type Corpus struct {
	Partitions []Partition
	Fields     []string
	Skipped    []Skip
}

// Aggregator merges one column across partitions.
type Aggregator struct {
	Field   string
	Workers int
	Logger  *slog.Logger
}

type partitionResult struct {
	fields []string
	err    error
}

// Aggregate reads Field from every path. Unreadable partitions and
// partitions without the column are logged and skipped. The only error
// returned is context cancellation.
func (a Aggregator) Aggregate(ctx context.Context, paths []string) (*Corpus, error) {
	logger := a.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	workers := a.Workers
	if workers < 1 {
		workers = 1
	}

	results := make([]partitionResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fields, err := ReadField(gctx, path, a.Field)
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			results[i] = partitionResult{fields: fields, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	corpus := &Corpus{}
	for i, res := range results {
		path := paths[i]
		if res.err != nil {
			corpus.Skipped = append(corpus.Skipped, Skip{Path: path, Err: res.err})
			hint := "check that the file is a readable CSV"
			if errors.Is(res.err, ErrMissingField) {
				hint = "add the " + a.Field + " column or fix corpus.name_field"
			}
			logging.WarnWithContext(logger, "corpus partition skipped", "corpus_partition_skipped",
				logging.String(logging.FieldPartition, path),
				logging.Error(res.err),
				logging.String(logging.FieldErrorHint, hint),
				logging.String(logging.FieldImpact, "names in this partition are not part of the run"),
			)
			continue
		}
		corpus.Partitions = append(corpus.Partitions, Partition{Path: path, Fields: len(res.fields)})
		corpus.Fields = append(corpus.Fields, res.fields...)
		logger.Debug("corpus partition read",
			logging.String(logging.FieldPartition, path),
			logging.Int("fields", len(res.fields)),
		)
	}
	return corpus, nil
}
