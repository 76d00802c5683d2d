package replay

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// helper: board with a single seed.
func seedCase(name string, number int, want rational.Rat) Case {
	p, _ := board.Blank().SetOperation(number, board.InnerSegment, board.OpAdd)
	return Case{Name: name, Puzzle: p, ExpectedResult: want}
}

func TestReplay_PassAndFail(t *testing.T) {
	cases := []Case{
		seedCase("pass", 20, rational.Int(20)),
		seedCase("wrong-result", 20, rational.Int(21)),
		{
			Name:           "wrong-steps",
			Puzzle:         seedCase("", 7, rational.Int(7)).Puzzle,
			ExpectedResult: rational.Int(7),
			ExpectedSteps:  []string{"Starting with 8"},
		},
	}
	results := Replay(cases, eval.DefaultConfig())
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Passed {
		t.Errorf("pass: unexpected failure %s", results[0].Reason)
	}
	if results[1].Passed || !strings.Contains(results[1].Reason, "want 21") {
		t.Errorf("wrong-result: expected result failure, got %q", results[1].Reason)
	}
	if results[2].Passed || !strings.Contains(results[2].Reason, "steps differ") {
		t.Errorf("wrong-steps: expected step failure, got %q", results[2].Reason)
	}

	s := Summarize(results)
	if s.TotalCases != 3 || s.Passed != 1 || s.Failed != 2 {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestReplay_Empty(t *testing.T) {
	results := Replay(nil, eval.DefaultConfig())
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
	if s := Summarize(results); s.TotalCases != 0 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestRunFiles_KeepsOrder(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "scenarios.json"),
		filepath.Join("testdata", "legacy_reversal.json"),
	}
	out, err := RunFiles(context.Background(), paths, 1, nil)
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 file results, got %d", len(out))
	}
	for i, fr := range out {
		if fr.Path != paths[i] {
			t.Errorf("result %d: expected %s, got %s", i, paths[i], fr.Path)
		}
		if fr.Summary.Failed != 0 {
			t.Errorf("%s: %d failed cases", fr.Path, fr.Summary.Failed)
		}
	}
}

func TestRunFiles_LoadError(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	paths := []string{filepath.Join("testdata", "scenarios.json"), bad}
	if _, err := RunFiles(context.Background(), paths, 0, nil); err == nil {
		t.Fatal("expected error for malformed fixture")
	}
}
