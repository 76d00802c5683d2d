package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Config      FixtureConfig `json:"config"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureConfig mirrors eval.Config with JSON tags. Zero values select the defaults.
type FixtureConfig struct {
	Precision *int   `json:"precision,omitempty"`
	Reversal  string `json:"reversal,omitempty"`
	Numbering []int  `json:"numbering,omitempty"`
}

// FixtureCase is one recorded board and its expected outcome. The board is
// given either as a share string or as a full puzzle snapshot.
type FixtureCase struct {
	Name           string        `json:"name"`
	Wire           string        `json:"wire,omitempty"`
	Puzzle         *board.Puzzle `json:"puzzle,omitempty"`
	ExpectedResult string        `json:"expected_result"`
	ExpectedSteps  []string      `json:"expected_steps"` // null skips the step comparison
}

// #endregion fixture-types

// #region fixture-loader

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f *Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// ToEvalConfig converts a FixtureConfig to evaluator settings.
func (fc *FixtureConfig) ToEvalConfig() eval.Config {
	cfg := eval.DefaultConfig()
	if fc.Precision != nil {
		cfg.Precision = *fc.Precision
	}
	if fc.Reversal != "" {
		cfg.Reversal = eval.Reversal(fc.Reversal)
	}
	return cfg
}

// BoardNumbering returns the fixture's numbering, standard when unset.
func (fc *FixtureConfig) BoardNumbering() (board.Numbering, error) {
	if len(fc.Numbering) == 0 {
		return board.StandardNumbering, nil
	}
	return board.NumberingFromSlice(fc.Numbering)
}

// ToCase converts a FixtureCase to a domain Case.
func (fc *FixtureCase) ToCase(n board.Numbering) (Case, error) {
	var p board.Puzzle
	if fc.Puzzle != nil {
		p = *fc.Puzzle
	} else {
		var err error
		if p, err = codec.Decode(fc.Wire, n); err != nil {
			return Case{}, fmt.Errorf("case %s: %w", fc.Name, err)
		}
	}
	want, err := rational.Parse(fc.ExpectedResult)
	if err != nil {
		return Case{}, fmt.Errorf("case %s: %w", fc.Name, err)
	}
	return Case{
		Name:           fc.Name,
		Puzzle:         p,
		ExpectedResult: want,
		ExpectedSteps:  fc.ExpectedSteps,
	}, nil
}

// ToCases converts every fixture case.
func (f *Fixture) ToCases() ([]Case, error) {
	n, err := f.Config.BoardNumbering()
	if err != nil {
		return nil, fmt.Errorf("fixture numbering: %w", err)
	}
	cases := make([]Case, len(f.Cases))
	for i := range f.Cases {
		if cases[i], err = f.Cases[i].ToCase(n); err != nil {
			return nil, err
		}
	}
	return cases, nil
}

// #endregion fixture-loader

// #region fixture-export

// Capture evaluates p and records it as a fixture case with its current
// outcome, for use as a regression baseline.
func Capture(name string, p board.Puzzle, e *eval.Evaluator) FixtureCase {
	res := e.Evaluate(p)
	return FixtureCase{
		Name:           name,
		Wire:           codec.Encode(p),
		ExpectedResult: res.Value.Exact(),
		ExpectedSteps:  res.Steps,
	}
}

// #endregion fixture-export
