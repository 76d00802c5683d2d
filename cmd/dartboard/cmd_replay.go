package main

import (
	"fmt"
	"io"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/logging"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/replay"
	"github.com/spf13/cobra"
)

func newReplayCmd(a *app) *cobra.Command {
	var (
		parallel int
		showDiff bool
		record   bool
	)
	cmd := &cobra.Command{
		Use:   "replay FIXTURE...",
		Short: "Re-evaluate fixture files and compare with their recorded outcomes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := replay.RunFiles(cmd.Context(), args, parallel, a.logger)
			if err != nil {
				return err
			}
			if record {
				if err := a.recordReplay(files); err != nil {
					return err
				}
			}
			failed := printComparison(cmd.OutOrStdout(), files, showDiff)
			if failed > 0 {
				return fmt.Errorf("%d case(s) diverged", failed)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&parallel, "parallel", "j", 4, "fixture files replayed at once (0 = unbounded)")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print the step diff of diverging cases")
	cmd.Flags().BoolVar(&record, "record", false, "write every replayed case to the evaluation log")
	return cmd
}

// recordReplay writes one evaluation_log row per replayed case.
func (a *app) recordReplay(files []replay.FileResult) error {
	store, err := a.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	for _, fr := range files {
		for _, r := range fr.Results {
			entry, err := logging.NewEvaluationEntry(logging.TriggerReplay, "", r.Puzzle, r.Result)
			if err != nil {
				return err
			}
			if err := logging.LogEvaluation(store.DB(), entry); err != nil {
				return err
			}
		}
	}
	return nil
}

// printComparison prints one table per fixture and returns the number of
// failed cases.
func printComparison(w io.Writer, files []replay.FileResult, showDiff bool) int {
	failed := 0
	for _, fr := range files {
		fmt.Fprintf(w, "%s", fr.Path)
		if fr.Description != "" {
			fmt.Fprintf(w, " (%s)", fr.Description)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%-32s| %-14s| %s\n", "Case", "Replayed", "Match")
		fmt.Fprintf(w, "%-32s+%-15s+%s\n",
			"--------------------------------", "---------------", "------")
		for _, r := range fr.Results {
			match := "OK"
			if !r.Passed {
				match = "DIFF"
			}
			fmt.Fprintf(w, "%-32s| %-14s| %s\n", truncate(r.Name, 32), r.Result.Value.Exact(), match)
			if !r.Passed && showDiff {
				fmt.Fprintf(w, "    %s\n", r.Reason)
			}
		}
		s := fr.Summary
		fmt.Fprintf(w, "\nSummary: %d total, %d match, %d diverge, %d undefined\n\n",
			s.TotalCases, s.Passed, s.Failed, s.Undefined)
		failed += s.Failed
	}
	return failed
}
