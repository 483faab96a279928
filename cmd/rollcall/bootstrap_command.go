package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rollcall/internal/bootstrap"
	"rollcall/internal/config"
	"rollcall/internal/dictstore"
	"rollcall/internal/logging"
	"rollcall/internal/runlog"
)

func newBootstrapCommand(ctx *commandContext) *cobra.Command {
	var noLedger bool

	cmd := &cobra.Command{
		Use:   "bootstrap",
		Short: "Build the teacher directory from the raw corpus",
		Long: "Reads the personnel column of every corpus partition, derives confirmed names, " +
			"resolves the remaining values, and replaces the generated directory and high-risk list.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, logger *slog.Logger) error {
				var ledger bootstrap.Ledger
				if !noLedger {
					store, err := runlog.Open(cfg)
					if err != nil {
						logging.WarnWithContext(logger, "run ledger unavailable", "runlog_open_failed",
							logging.Error(err),
							logging.String(logging.FieldImpact, "this run is not recorded"),
						)
					} else {
						defer store.Close()
						ledger = store
					}
				}

				runner := bootstrap.NewRunner(cfg, logger, dictstore.New(cfg), ledger)
				report, err := runner.Run(cmd.Context())
				if err != nil {
					return fmt.Errorf("bootstrap %s: %w", report.RunID, err)
				}
				printBootstrapReport(cmd, report)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&noLedger, "no-ledger", false, "Do not record the run in the ledger")
	return cmd
}

func printBootstrapReport(cmd *cobra.Command, report *bootstrap.Report) {
	out := cmd.OutOrStdout()
	stats := report.Stats
	rows := [][]string{
		{"Run", report.RunID},
		{"Partitions", strconv.Itoa(len(report.Partitions))},
		{"Skipped partitions", strconv.Itoa(len(report.Skipped))},
		{"Fields", strconv.Itoa(stats.Fields)},
		{"Distinct values", strconv.Itoa(stats.Distinct)},
		{"Confirmed names", strconv.Itoa(stats.Confirmed)},
		{"Resolved values", strconv.Itoa(stats.Resolved)},
		{"High-risk values", strconv.Itoa(stats.HighRisk)},
		{"Directory entries", strconv.Itoa(stats.Entries)},
		{"Directory version", shortVersion(report.Published.Version)},
		{"Duration", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond).String()},
	}
	fmt.Fprintln(out, renderTable(out, []string{"Bootstrap", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
	fmt.Fprintf(out, "Directory: %s\n", report.Published.DirectoryPath)
	fmt.Fprintf(out, "High-risk list: %s\n", report.Published.HighRiskPath)
	for _, skip := range report.Skipped {
		fmt.Fprintf(out, "Skipped %s: %v\n", skip.Path, skip.Err)
	}
}
