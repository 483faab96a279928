package names

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

// BootstrapOptions configures one bootstrap run.
type BootstrapOptions struct {
	Placeholders Placeholders
	IDs          IDFormat
	// Normalize is applied to each raw value before trimming. Nil leaves
	// values untouched.
	Normalize func(string) string
	// Workers bounds concurrent resolution. Values below 1 run serially.
	Workers int
}

// BootstrapStats summarizes a run.
type BootstrapStats struct {
	Fields       int
	Empty        int
	Placeholders int
	Distinct     int
	Confirmed    int
	Resolved     int
	HighRisk     int
	Entries      int
}

// BootstrapResult holds every artifact a bootstrap run produces.
type BootstrapResult struct {
	Confirmed ConfirmedSet
	Directory *Directory
	HighRisk  []string
	Stats     BootstrapStats
}

// Bootstrap discovers confirmed names in fields, resolves every other value
// against them and builds the directory. Identifiers are assigned only after
// every value has been resolved.
func Bootstrap(ctx context.Context, fields []string, opts BootstrapOptions) (*BootstrapResult, error) {
	stats := BootstrapStats{Fields: len(fields)}

	cleaned := make([]string, 0, len(fields))
	for _, raw := range fields {
		value := cleanValue(raw, opts.Normalize)
		if value == "" {
			stats.Empty++
			continue
		}
		cleaned = append(cleaned, value)
	}

	confirmed := ExtractConfirmed(cleaned, opts.Placeholders)
	stats.Confirmed = confirmed.Len()

	seen := make(map[string]struct{}, len(cleaned))
	pending := make([]string, 0, len(cleaned))
	for _, value := range cleaned {
		if synthetic, ok := opts.Placeholders.Substitute(value); ok {
			stats.Placeholders++
			value = synthetic
		}
		if _, dup := seen[value]; dup {
			continue
		}
		seen[value] = struct{}{}
		if confirmed.Contains(value) {
			continue
		}
		pending = append(pending, value)
	}
	stats.Distinct = len(seen)

	resolutions, err := ResolveAll(ctx, pending, confirmed, opts.Workers)
	if err != nil {
		return nil, err
	}

	tokens := confirmed.Names()
	var rejected []string
	for _, res := range resolutions {
		if res.Unresolved {
			rejected = append(rejected, res.Raw)
			continue
		}
		stats.Resolved++
		tokens = append(tokens, res.Tokens...)
	}

	ids := opts.IDs
	if ids == (IDFormat{}) {
		ids = DefaultIDFormat()
	}
	dir, err := BuildDirectory(tokens, ids)
	if err != nil {
		return nil, fmt.Errorf("build directory: %w", err)
	}
	highRisk := CollectHighRisk(rejected)
	stats.HighRisk = len(highRisk)
	stats.Entries = dir.Len()

	return &BootstrapResult{
		Confirmed: confirmed,
		Directory: dir,
		HighRisk:  highRisk,
		Stats:     stats,
	}, nil
}

// ResolveAll resolves raws concurrently. Each value is resolved on a single
// goroutine and results keep the input order.
func ResolveAll(ctx context.Context, raws []string, confirmed ConfirmedSet, workers int) ([]Resolution, error) {
	out := make([]Resolution, len(raws))
	if workers <= 1 || len(raws) < 2 {
		for i, raw := range raws {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = Resolve(raw, confirmed)
		}
		return out, nil
	}

	chunk := (len(raws) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(raws); start += chunk {
		end := min(start+chunk, len(raws))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				out[i] = Resolve(raws[i], confirmed)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func cleanValue(raw string, normalize func(string) string) string {
	if normalize != nil {
		raw = normalize(raw)
	}
	return strings.TrimSpace(raw)
}
