// Package replay re-evaluates recorded boards and compares the outcome with
// the recorded result and steps. It is the regression harness for the
// evaluator: any drift in arithmetic, ordering or step wording shows up as a
// failed case.
package replay

import (
	"context"
	"fmt"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// #region types
// Case is one board with its expected outcome.
type Case struct {
	Name           string
	Puzzle         board.Puzzle
	ExpectedResult rational.Rat
	ExpectedSteps  []string // nil skips the step comparison
}

// CaseResult captures the outcome of replaying one case.
type CaseResult struct {
	Name   string
	Puzzle board.Puzzle
	Result eval.Result
	Passed bool
	Reason string
}

// ReplaySummary provides aggregate stats from a replay run.
type ReplaySummary struct {
	TotalCases int
	Passed     int
	Failed     int
	Undefined  int
}

// FileResult is the replay of one fixture file.
type FileResult struct {
	Path        string
	Description string
	Results     []CaseResult
	Summary     ReplaySummary
}
// #endregion types

// #region replay
// Replay evaluates every case with cfg. Cases are independent; the
// evaluator holds no state between them.
func Replay(cases []Case, cfg eval.Config) []CaseResult {
	e := eval.NewEvaluator(cfg)
	results := make([]CaseResult, 0, len(cases))

	for _, c := range cases {
		res := e.Evaluate(c.Puzzle)
		r := CaseResult{Name: c.Name, Puzzle: c.Puzzle, Result: res, Passed: true}

		switch {
		case !res.Value.Equal(c.ExpectedResult):
			r.Passed = false
			r.Reason = fmt.Sprintf("result %s, want %s", res.Value.Exact(), c.ExpectedResult.Exact())
		case c.ExpectedSteps != nil:
			if diff := cmp.Diff(c.ExpectedSteps, res.Steps, cmpopts.EquateEmpty()); diff != "" {
				r.Passed = false
				r.Reason = "steps differ (-want +got):\n" + diff
			}
		}
		results = append(results, r)
	}
	return results
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []CaseResult) ReplaySummary {
	s := ReplaySummary{TotalCases: len(results)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		if r.Result.Value.IsUndefined() {
			s.Undefined++
		}
	}
	return s
}
// #endregion replay

// #region run-files
// RunFile loads and replays a single fixture.
func RunFile(path string) (FileResult, error) {
	f, err := LoadFixture(path)
	if err != nil {
		return FileResult{}, err
	}
	cases, err := f.ToCases()
	if err != nil {
		return FileResult{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	results := Replay(cases, f.Config.ToEvalConfig())
	return FileResult{
		Path:        path,
		Description: f.Description,
		Results:     results,
		Summary:     Summarize(results),
	}, nil
}

// RunFiles replays fixture files concurrently, at most limit at a time
// (unbounded when limit <= 0). Results keep the order of paths. The first
// load error cancels the remaining files.
func RunFiles(ctx context.Context, paths []string, limit int, logger *zap.Logger) ([]FileResult, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fr, err := RunFile(path)
			if err != nil {
				return err
			}
			logger.Debug("fixture replayed",
				zap.String("path", path),
				zap.Int("cases", fr.Summary.TotalCases),
				zap.Int("failed", fr.Summary.Failed))
			out[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
// #endregion run-files
