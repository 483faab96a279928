package main

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"rollcall/internal/config"
	"rollcall/internal/dictstore"
	"rollcall/internal/names"
)

func newDictCommand(ctx *commandContext) *cobra.Command {
	dictCmd := &cobra.Command{
		Use:   "dict",
		Short: "Inspect the teacher directory artifacts",
	}
	dictCmd.AddCommand(newDictShowCommand(ctx))
	dictCmd.AddCommand(newDictHighRiskCommand(ctx))
	return dictCmd
}

func newDictShowCommand(ctx *commandContext) *cobra.Command {
	var generated bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the directory used for normalization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, logger *slog.Logger) error {
				store := dictstore.New(cfg)
				var (
					dir   *names.Directory
					label string
				)
				if generated {
					loaded, err := dictstore.LoadDirectory(store.AutoPath())
					if err != nil {
						return err
					}
					dir, label = loaded, store.AutoPath()
				} else {
					snapshot, err := store.LoadSnapshot(logger)
					if err != nil {
						return err
					}
					dir, label = snapshot.Directory, snapshotLabel(snapshot)
				}

				out := cmd.OutOrStdout()
				entries := dir.Entries()
				if len(entries) == 0 {
					fmt.Fprintf(out, "Directory %s is empty\n", label)
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{e.ID, e.Name, e.Alias})
				}
				fmt.Fprintf(out, "Directory: %s\n", label)
				fmt.Fprintln(out, renderTable(out, []string{"ID", "Name", "Alias"}, rows, nil))
				fmt.Fprintf(out, "%d entries, longest name %d, version %s\n", dir.Len(), dir.MaxNameLen(), shortVersion(dir.Version()))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&generated, "generated", false, "Show the generated directory instead of the curated one")
	return cmd
}

func newDictHighRiskCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "high-risk",
		Short: "List values the last bootstrap could not split",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withRuntime(func(cfg *config.Config, _ *slog.Logger) error {
				path := cfg.HighRiskPath()
				raws, err := dictstore.LoadHighRisk(path)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(raws) == 0 {
					fmt.Fprintln(out, "No high-risk values")
					return nil
				}
				rows := make([][]string, 0, len(raws))
				for i, raw := range raws {
					rows = append(rows, []string{strconv.Itoa(i + 1), raw})
				}
				fmt.Fprintln(out, renderTable(out, []string{"#", "Raw value"}, rows, []columnAlignment{alignRight, alignLeft}))
				fmt.Fprintf(out, "Correct these by hand in %s or in the corpus, then rerun bootstrap\n", cfg.CuratedDictionaryPath())
				return nil
			})
		},
	}
}
