package main

import (
	"fmt"
	"io"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/state"
	"github.com/spf13/cobra"
)

func newSavedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saved",
		Short: "Manage save slots (newest first, at most 50 kept)",
	}

	var jsonOut bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved puzzles",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, store *state.Store, _ []string) error {
			saved, err := store.ListSaved()
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(cmd.OutOrStdout(), savedRows(saved, a.cfg.Display.Precision))
			}
			printSavedTable(cmd.OutOrStdout(), saved, a.cfg.Display.Precision)
			return nil
		}),
	}
	list.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")

	load := &cobra.Command{
		Use:   "load ID",
		Short: "Make a saved puzzle the active editor board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := a.openEditor()
			if err != nil {
				return err
			}
			defer store.Close()

			s, err := store.GetSaved(args[0])
			if err != nil {
				return err
			}
			res := a.evaluator().Evaluate(s.Puzzle)
			snap, err := store.Record(s.Puzzle, res.Value, "load saved "+s.Name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] loaded %q → %s\n", shortID(snap.VersionID), s.Name, res.Display(a.cfg.Display.Precision))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one save slot",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, store *state.Store, args []string) error {
			if err := store.DeleteSaved(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		}),
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every save slot",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, store *state.Store, _ []string) error {
			n, err := store.ClearSaved()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %d saved puzzle(s)\n", n)
			return nil
		}),
	}

	cmd.AddCommand(list, load, del, clearCmd)
	return cmd
}

func (a *app) withStore(fn func(*cobra.Command, *state.Store, []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return fn(cmd, store, args)
	}
}

type savedRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Wire    string `json:"wire"`
	Result  string `json:"result"`
	SavedAt string `json:"saved_at"`
}

func savedRows(saved []state.SavedPuzzle, prec int) []savedRow {
	rows := make([]savedRow, len(saved))
	for i, s := range saved {
		rows[i] = savedRow{
			ID:      s.ID,
			Name:    s.Name,
			Wire:    s.Wire,
			Result:  s.Result.Format(prec),
			SavedAt: s.SavedAt.Format("2006-01-02T15:04:05Z"),
		}
	}
	return rows
}

func printSavedTable(w io.Writer, saved []state.SavedPuzzle, prec int) {
	if len(saved) == 0 {
		fmt.Fprintln(w, "no saved puzzles")
		return
	}
	fmt.Fprintf(w, "%-36s  %-20s  %12s  %s\n", "ID", "Name", "Result", "Saved")
	for _, r := range savedRows(saved, prec) {
		fmt.Fprintf(w, "%-36s  %-20s  %12s  %s\n", r.ID, truncate(r.Name, 20), r.Result, r.SavedAt)
	}
}
