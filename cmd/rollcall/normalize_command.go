package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"rollcall/internal/config"
	"rollcall/internal/corpus"
	"rollcall/internal/dictstore"
	"rollcall/internal/normalize"
)

func newNormalizeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Attach the resolved teacher list to every corpus record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, logger *slog.Logger) error {
				report, err := normalize.NewRunner(cfg, logger, dictstore.New(cfg)).Run(cmd.Context())
				if errors.Is(err, corpus.ErrNoPartitions) && report != nil {
					printSkipped(cmd, report.Skipped)
				}
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Directory: %s (%d entries, %s)\n",
					snapshotLabel(report.Snapshot), report.Snapshot.Directory.Len(), shortVersion(report.Snapshot.Directory.Version()))
				rows := make([][]string, 0, len(report.Outputs))
				for _, o := range report.Outputs {
					rows = append(rows, []string{o.Path, strconv.Itoa(o.Records), strconv.Itoa(o.Fallbacks)})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Output", "Records", "Raw fallbacks"}, rows, []columnAlignment{alignLeft, alignRight, alignRight}))
				printSkipped(cmd, report.Skipped)
				return nil
			})
		},
	}
}

func snapshotLabel(s *dictstore.Snapshot) string {
	if s.Path == "" {
		return string(s.Source)
	}
	return fmt.Sprintf("%s %s", s.Source, s.Path)
}

func printSkipped(cmd *cobra.Command, skipped []corpus.Skip) {
	for _, skip := range skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: %v\n", skip.Path, skip.Err)
	}
}
