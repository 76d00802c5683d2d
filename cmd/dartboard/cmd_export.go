package main

import (
	"encoding/json"
	"fmt"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/replay"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/state"
	"github.com/spf13/cobra"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		last    int
		outPath string
		from    string
	)
	cmd := &cobra.Command{
		Use:   "export-fixture",
		Short: "Write recorded boards as a replay fixture",
		Long: `Export editor history (default) or save slots as a JSON replay fixture.
History cases expect the result recorded with each version and, when the
evaluation log has them, the recorded steps. Saved cases are re-evaluated
with the current settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var fx *replay.Fixture
			switch from {
			case "history":
				fx, err = a.fixtureFromHistory(store, last)
			case "saved":
				fx, err = a.fixtureFromSaved(store)
			default:
				return fmt.Errorf("--from %q: want history or saved", from)
			}
			if err != nil {
				return err
			}
			if len(fx.Cases) == 0 {
				return fmt.Errorf("no %s entries to export", from)
			}
			if err := replay.WriteFixture(outPath, fx); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote fixture to %s (%d cases)\n", outPath, len(fx.Cases))
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVar(&last, "last", 20, "number of most recent history versions to export")
	f.StringVarP(&outPath, "out", "o", "", "output fixture JSON path (required)")
	f.StringVar(&from, "from", "history", "source: history or saved")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

// #region build
func (a *app) newFixture(description string) *replay.Fixture {
	prec := a.cfg.Display.Precision
	return &replay.Fixture{
		Description: description,
		Config: replay.FixtureConfig{
			Precision: &prec,
			Reversal:  a.cfg.Eval.Reversal,
			Numbering: a.cfg.Numbering,
		},
	}
}

func (a *app) fixtureFromHistory(store *state.Store, last int) (*replay.Fixture, error) {
	versions, err := store.ListVersionsWithEvaluations(last)
	if err != nil {
		return nil, err
	}
	fx := a.newFixture(fmt.Sprintf("Editor history export: %d most recent versions", len(versions)))
	seen := map[string]bool{}
	// Oldest first, one case per distinct board.
	for i := len(versions) - 1; i >= 0; i-- {
		v := versions[i]
		wire := codec.Encode(v.Puzzle)
		if seen[wire] {
			continue
		}
		seen[wire] = true
		fx.Cases = append(fx.Cases, replay.FixtureCase{
			Name:           fmt.Sprintf("%s %s", shortID(v.VersionID), v.Action),
			Wire:           wire,
			ExpectedResult: v.Result.Exact(),
			ExpectedSteps:  decodeSteps(v.StepsJSON),
		})
	}
	return fx, nil
}

func (a *app) fixtureFromSaved(store *state.Store) (*replay.Fixture, error) {
	saved, err := store.ListSaved()
	if err != nil {
		return nil, err
	}
	fx := a.newFixture(fmt.Sprintf("Save slot export: %d puzzles", len(saved)))
	e := a.evaluator()
	for _, s := range saved {
		fx.Cases = append(fx.Cases, replay.Capture(s.Name, s.Puzzle, e))
	}
	return fx, nil
}
// #endregion build

// decodeSteps reads a steps_json column. Empty or malformed input yields nil,
// which skips the step comparison on replay.
func decodeSteps(stepsJSON string) []string {
	if stepsJSON == "" {
		return nil
	}
	var steps []string
	if err := json.Unmarshal([]byte(stepsJSON), &steps); err != nil {
		return nil
	}
	if steps == nil {
		steps = []string{}
	}
	return steps
}
