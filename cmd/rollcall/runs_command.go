package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"rollcall/internal/config"
	"rollcall/internal/runlog"
)

type runView struct {
	ID               string    `json:"id"`
	StartedAt        time.Time `json:"started_at"`
	DurationMillis   int64     `json:"duration_ms"`
	Status           string    `json:"status"`
	Partitions       int       `json:"partitions"`
	Skipped          int       `json:"skipped"`
	Fields           int       `json:"fields"`
	Confirmed        int       `json:"confirmed"`
	Entries          int       `json:"entries"`
	HighRisk         int       `json:"high_risk"`
	DirectoryVersion string    `json:"directory_version,omitempty"`
	Error            string    `json:"error,omitempty"`
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded bootstrap runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, _ *slog.Logger) error {
				store, err := runlog.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()

				runs, err := store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}

				views := make([]runView, 0, len(runs))
				for _, r := range runs {
					views = append(views, runView{
						ID:               r.ID,
						StartedAt:        r.StartedAt,
						DurationMillis:   r.Duration().Milliseconds(),
						Status:           string(r.Status),
						Partitions:       r.Partitions,
						Skipped:          r.Skipped,
						Fields:           r.Fields,
						Confirmed:        r.Confirmed,
						Entries:          r.Entries,
						HighRisk:         r.HighRisk,
						DirectoryVersion: r.DirectoryVersion,
						Error:            r.Error,
					})
				}
				if asJSON {
					return writeJSON(cmd, views)
				}

				out := cmd.OutOrStdout()
				if len(views) == 0 {
					fmt.Fprintln(out, "No bootstrap runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(views))
				for _, v := range views {
					rows = append(rows, []string{
						v.ID,
						v.StartedAt.Local().Format("2006-01-02 15:04:05"),
						v.Status,
						strconv.Itoa(v.Partitions),
						strconv.Itoa(v.Entries),
						strconv.Itoa(v.HighRisk),
						shortVersion(v.DirectoryVersion),
					})
				}
				headers := []string{"Run", "Started", "Status", "Partitions", "Entries", "High risk", "Version"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft}
				fmt.Fprintln(out, renderTable(out, headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to show (0 for all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output runs as JSON")
	return cmd
}
