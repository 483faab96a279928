package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rollcall/internal/config"
	"rollcall/internal/dictstore"
	"rollcall/internal/names"
)

type segmentResult struct {
	Raw    string   `json:"raw"`
	Tokens []string `json:"tokens"`
}

func newSegmentCommand(ctx *commandContext) *cobra.Command {
	var (
		asJSON   bool
		fallback bool
	)

	cmd := &cobra.Command{
		Use:   "segment <raw>...",
		Short: "Split raw personnel values with the current directory",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, logger *slog.Logger) error {
				snapshot, err := dictstore.New(cfg).LoadSnapshot(logger)
				if err != nil {
					return err
				}
				seg := names.NewSegmenter(snapshot.Directory, cfg.SegmenterOptions())

				results := make([]segmentResult, 0, len(args))
				for _, raw := range args {
					tokens := seg.Split(raw)
					if fallback {
						tokens = seg.TeacherList(raw)
					}
					if tokens == nil {
						tokens = []string{}
					}
					results = append(results, segmentResult{Raw: raw, Tokens: tokens})
				}

				if asJSON {
					return writeJSON(cmd, results)
				}
				out := cmd.OutOrStdout()
				rows := make([][]string, 0, len(results))
				for _, res := range results {
					rows = append(rows, []string{res.Raw, strings.Join(res.Tokens, cfg.Corpus.ListSeparator), strconv.Itoa(len(res.Tokens))})
				}
				fmt.Fprintln(out, renderTable(out, []string{"Raw", "Names", "Count"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&fallback, "fallback", false, "Keep the raw value when no name matches, as record normalization does")
	return cmd
}
