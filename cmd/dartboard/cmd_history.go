package main

import (
	"fmt"
	"io"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/state"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var (
		last    int
		version string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List editor versions, or show one version in detail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if version != "" {
				return a.runDetailMode(cmd.OutOrStdout(), store, version, jsonOut)
			}
			return a.runListMode(cmd.OutOrStdout(), store, last, jsonOut)
		},
	}
	f := cmd.Flags()
	f.IntVar(&last, "last", 20, "show N most recent versions")
	f.StringVar(&version, "version", "", "show single version detail")
	f.BoolVar(&jsonOut, "json", false, "output as JSON instead of table")
	return cmd
}

// #region list-mode

type listRow struct {
	VersionID string `json:"version_id"`
	ParentID  string `json:"parent_id,omitempty"`
	Action    string `json:"action"`
	Result    string `json:"result"`
	Trigger   string `json:"trigger,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

func (a *app) runListMode(w io.Writer, store *state.Store, last int, jsonOut bool) error {
	versions, err := store.ListVersionsWithEvaluations(last)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Fprintln(w, "no versions found")
		return nil
	}
	var activeID string
	if cur, err := store.GetCurrent(); err == nil {
		activeID = cur.VersionID
	}

	// Store returns newest first; print chronologically.
	rows := make([]listRow, len(versions))
	for i, v := range versions {
		rows[len(versions)-1-i] = listRow{
			VersionID: v.VersionID,
			ParentID:  v.ParentID,
			Action:    v.Action,
			Result:    v.Result.Format(a.cfg.Display.Precision),
			Trigger:   v.TriggerType,
			Active:    v.VersionID == activeID,
			CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z"),
		}
	}

	if jsonOut {
		return printJSON(w, rows)
	}
	printListTable(w, rows)
	return nil
}

func printListTable(w io.Writer, rows []listRow) {
	fmt.Fprintf(w, "  %-10s  %-10s  %-28s  %12s  %s\n", "Version", "Parent", "Action", "Result", "Time")
	fmt.Fprintf(w, "  %-10s+-%-10s+-%-28s+-%12s+-%s\n",
		"----------", "----------", "----------------------------", "------------", "--------------------")
	for _, r := range rows {
		marker := " "
		if r.Active {
			marker = "*"
		}
		parent := "—"
		if r.ParentID != "" {
			parent = shortID(r.ParentID)
		}
		fmt.Fprintf(w, "%s %-10s  %-10s  %-28s  %12s  %s\n",
			marker, shortID(r.VersionID), parent, truncate(r.Action, 28), r.Result, r.CreatedAt)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// #endregion list-mode

// #region detail-mode

type detailOutput struct {
	VersionID string   `json:"version_id"`
	ParentID  string   `json:"parent_id"`
	CreatedAt string   `json:"created_at"`
	Action    string   `json:"action"`
	Result    string   `json:"result"`
	Display   string   `json:"display"`
	Wire      string   `json:"wire"`
	Steps     []string `json:"steps"`
}

func (a *app) runDetailMode(w io.Writer, store *state.Store, versionID string, jsonOut bool) error {
	snap, err := store.GetVersion(versionID)
	if err != nil {
		return err
	}

	res := a.evaluator().Evaluate(snap.Puzzle)
	out := detailOutput{
		VersionID: snap.VersionID,
		ParentID:  snap.ParentID,
		CreatedAt: snap.CreatedAt.Format("2006-01-02T15:04:05Z"),
		Action:    snap.Action,
		Result:    snap.Result.Exact(),
		Display:   snap.Result.Format(a.cfg.Display.Precision),
		Wire:      codec.Encode(snap.Puzzle),
		Steps:     res.Steps,
	}

	if jsonOut {
		return printJSON(w, out)
	}

	fmt.Fprintf(w, "Version: %s\n", out.VersionID)
	fmt.Fprintf(w, "Parent:  %s\n", out.ParentID)
	fmt.Fprintf(w, "Created: %s\n", out.CreatedAt)
	fmt.Fprintf(w, "Action:  %s\n", out.Action)
	fmt.Fprintf(w, "Board:   %s\n", out.Wire)
	fmt.Fprintf(w, "Result:  %s\n", out.Display)

	if len(out.Steps) > 0 {
		fmt.Fprintf(w, "\nSteps:\n")
		for _, s := range out.Steps {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}
	return nil
}

// #endregion detail-mode
