package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/logging"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rpc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type solveFlags struct {
	file    string
	jsonOut bool
	share   string
	save    string
	record  bool
	remote  string
}

// solveOutput is the --json rendering of one evaluation.
type solveOutput struct {
	Result    string   `json:"result"`
	Display   string   `json:"display"`
	Undefined bool     `json:"undefined"`
	Steps     []string `json:"steps"`
	Wire      string   `json:"wire"`
	ShareURL  string   `json:"share_url,omitempty"`
	SavedID   string   `json:"saved_id,omitempty"`
}

func newSolveCmd(a *app) *cobra.Command {
	var f solveFlags
	cmd := &cobra.Command{
		Use:   "solve [share-string]",
		Short: "Evaluate a puzzle and print its equation steps",
		Long: `Evaluate a puzzle given as a share string (or a share URL), or as a JSON
board snapshot with --file. Prints every equation step and the result.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, args, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.file, "file", "f", "", "JSON board snapshot to evaluate")
	fl.BoolVar(&f.jsonOut, "json", false, "output as JSON")
	fl.StringVar(&f.share, "share", "", "print a share URL on this base address")
	fl.StringVar(&f.save, "save", "", "store the puzzle in a save slot with this name")
	fl.BoolVar(&f.record, "record", false, "write the evaluation to the evaluation log")
	fl.StringVar(&f.remote, "remote", "", "evaluate on a solver service at this address")
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, args []string, f solveFlags) error {
	p, err := a.readPuzzle(args, f.file)
	if err != nil {
		return err
	}
	if f.remote != "" {
		return a.solveRemote(cmd, p, f)
	}

	res := a.evaluator().Evaluate(p)
	out := solveOutput{
		Result:    res.Value.Exact(),
		Display:   res.Display(a.cfg.Display.Precision),
		Undefined: res.Value.IsUndefined(),
		Steps:     res.Steps,
		Wire:      codec.Encode(p),
	}
	if out.Steps == nil {
		out.Steps = []string{}
	}
	if f.share != "" {
		out.ShareURL = codec.ShareURL(f.share, p)
	}

	if f.record || f.save != "" {
		store, err := a.openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if f.save != "" {
			saved, err := store.SavePuzzle(p, res.Value, f.save)
			if err != nil {
				return fmt.Errorf("save puzzle: %w", err)
			}
			out.SavedID = saved.ID
		}
		if f.record {
			entry, err := logging.NewEvaluationEntry(logging.TriggerCLI, "", p, res)
			if err != nil {
				return err
			}
			if err := logging.LogEvaluation(store.DB(), entry); err != nil {
				return err
			}
		}
	}
	a.logger.Debug("solved", zap.String("wire", out.Wire), zap.String("result", out.Result))

	if f.jsonOut {
		return printJSON(cmd.OutOrStdout(), out)
	}
	printSolve(cmd.OutOrStdout(), out)
	return nil
}

func (a *app) solveRemote(cmd *cobra.Command, p board.Puzzle, f solveFlags) error {
	client, err := rpc.NewClient(f.remote)
	if err != nil {
		return fmt.Errorf("connect to solver at %s: %w", f.remote, err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()
	res, err := client.EvaluatePuzzle(ctx, p)
	if err != nil {
		return err
	}
	out := solveOutput{
		Result:    res.Result.Exact(),
		Display:   res.Display,
		Undefined: res.Result.IsUndefined(),
		Steps:     res.Steps,
		Wire:      res.Wire,
	}
	if f.share != "" {
		out.ShareURL = codec.ShareURL(f.share, p)
	}
	if f.jsonOut {
		return printJSON(cmd.OutOrStdout(), out)
	}
	printSolve(cmd.OutOrStdout(), out)
	return nil
}

// readPuzzle takes the board from --file or from the share-string argument.
// No argument at all is the blank board.
func (a *app) readPuzzle(args []string, file string) (board.Puzzle, error) {
	if file != "" {
		if len(args) > 0 {
			return board.Puzzle{}, fmt.Errorf("give either a share string or --file, not both")
		}
		data, err := os.ReadFile(file)
		if err != nil {
			return board.Puzzle{}, fmt.Errorf("read puzzle file: %w", err)
		}
		var p board.Puzzle
		if err := json.Unmarshal(data, &p); err != nil {
			return board.Puzzle{}, fmt.Errorf("parse puzzle file: %w", err)
		}
		return p, nil
	}
	wire := ""
	if len(args) > 0 {
		wire = args[0]
	}
	return codec.Decode(wire, a.numbering())
}

func printSolve(w io.Writer, out solveOutput) {
	for _, s := range out.Steps {
		fmt.Fprintln(w, s)
	}
	fmt.Fprintf(w, "Result: %s\n", out.Display)
	if out.ShareURL != "" {
		fmt.Fprintf(w, "Share:  %s\n", out.ShareURL)
	}
	if out.SavedID != "" {
		fmt.Fprintf(w, "Saved:  %s\n", shortID(out.SavedID))
	}
}
