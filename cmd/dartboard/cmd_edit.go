package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/logging"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const editUsage = `Edits:
  op NUMBER PART [OPERATION]   set or cycle a part's operation
  partial NUMBER PART          toggle one-third fill
  mod NUMBER [MODIFIER]        set or cycle the outer-ring modifier
  color [COLOR]                set or cycle the bullseye color
  action inner|outer [ACTION]  set or cycle a bullseye action
  reset                        clear the board
  load SHARE-STRING            replace the board

PART is innerSegment, tripleRing, mainSegment, doubleRing or outerRing.`

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [edit...]",
		Short: "Edit the active board, or start the interactive editor",
		Long: "Apply one edit to the active board and commit it to the history.\n" +
			"Without arguments, start an interactive editor that also accepts\n" +
			"show, undo and quit.\n\n" + editUsage,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cur, err := a.openEditor()
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 0 {
				return a.runREPL(cmd.InOrStdin(), cmd.OutOrStdout(), store)
			}
			_, err = a.commitEdit(cmd.OutOrStdout(), store, cur, args)
			return err
		},
	}
}

func newUndoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Return the active board to its previous version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := a.openEditor()
			if err != nil {
				return err
			}
			defer store.Close()
			return a.undo(cmd.OutOrStdout(), store)
		},
	}
}

// #region commit
// commitEdit applies one edit to cur, evaluates the result and records it as
// the new active version.
func (a *app) commitEdit(w io.Writer, store *state.Store, cur state.Snapshot, args []string) (state.Snapshot, error) {
	p, err := applyEdit(cur.Puzzle, args, a.numbering())
	if err != nil {
		return cur, err
	}
	res := a.evaluator().Evaluate(p)
	action := strings.Join(args, " ")
	snap, err := store.Record(p, res.Value, action)
	if err != nil {
		return cur, fmt.Errorf("record edit: %w", err)
	}

	entry, err := logging.NewEvaluationEntry(logging.TriggerEdit, snap.VersionID, p, res)
	if err == nil {
		err = logging.LogEvaluation(store.DB(), entry)
	}
	if err != nil {
		a.logger.Warn("evaluation log write failed", zap.Error(err))
	}

	a.logger.Debug("edit committed", zap.String("version", snap.VersionID), zap.String("action", action))
	fmt.Fprintf(w, "[%s] %s → %s\n", shortID(snap.VersionID), action, res.Display(a.cfg.Display.Precision))
	return snap, nil
}

func (a *app) undo(w io.Writer, store *state.Store) error {
	snap, err := store.Undo()
	if errors.Is(err, state.ErrNothingToUndo) {
		fmt.Fprintln(w, "nothing to undo")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "[%s] %s → %s\n", shortID(snap.VersionID), snap.Action, snap.Result.Format(a.cfg.Display.Precision))
	return nil
}

func (a *app) show(w io.Writer, snap state.Snapshot) {
	res := a.evaluator().Evaluate(snap.Puzzle)
	wire := codec.Encode(snap.Puzzle)
	if wire == "" {
		wire = "(blank)"
	}
	fmt.Fprintf(w, "Board: %s\n", wire)
	printSolve(w, solveOutput{Display: res.Display(a.cfg.Display.Precision), Steps: res.Steps})
}
// #endregion commit

// #region repl
func (a *app) runREPL(in io.Reader, w io.Writer, store *state.Store) error {
	fmt.Fprintln(w, "Dartboard editor ready.")
	fmt.Fprintf(w, "  DB: %s\n", a.cfg.DBPath)
	fmt.Fprintln(w, "Type an edit, show, undo or quit:")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(w, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		cur, err := store.GetCurrent()
		if err != nil {
			return err
		}
		switch line {
		case "show":
			a.show(w, cur)
			continue
		case "undo":
			if err := a.undo(w, store); err != nil {
				fmt.Fprintf(w, "error: %v\n", err)
			}
			continue
		case "help":
			fmt.Fprintln(w, editUsage)
			continue
		}
		if _, err := a.commitEdit(w, store, cur, strings.Fields(line)); err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
	fmt.Fprintln(w)
	return scanner.Err()
}
// #endregion repl

// #region parse
// applyEdit interprets one edit command against p.
func applyEdit(p board.Puzzle, args []string, n board.Numbering) (board.Puzzle, error) {
	if len(args) == 0 {
		return p, fmt.Errorf("empty edit")
	}
	verb, rest := args[0], args[1:]
	switch verb {
	case "op":
		number, kind, err := wedgePart(rest)
		if err != nil {
			return p, err
		}
		if len(rest) > 2 {
			op, err := board.ParseOperation(rest[2])
			if err != nil {
				return p, err
			}
			return p.SetOperation(number, kind, op)
		}
		return p.CycleOperation(number, kind)

	case "partial":
		number, kind, err := wedgePart(rest)
		if err != nil {
			return p, err
		}
		return p.TogglePartial(number, kind)

	case "mod":
		if len(rest) == 0 {
			return p, fmt.Errorf("mod: want NUMBER [MODIFIER]")
		}
		number, err := strconv.Atoi(rest[0])
		if err != nil {
			return p, fmt.Errorf("mod: bad number %q", rest[0])
		}
		if len(rest) > 1 {
			m, err := board.ParseModifierState(rest[1])
			if err != nil {
				return p, err
			}
			return p.SetModifier(number, m)
		}
		return p.CycleModifier(number)

	case "color":
		if len(rest) == 0 {
			return p.CycleBullseyeColor(), nil
		}
		if err := p.Bullseye.Color.UnmarshalText([]byte(rest[0])); err != nil {
			return p, err
		}
		return p, nil

	case "action":
		if len(rest) == 0 || (rest[0] != "inner" && rest[0] != "outer") {
			return p, fmt.Errorf("action: want inner|outer [ACTION]")
		}
		inner := rest[0] == "inner"
		if len(rest) == 1 {
			return p.CycleBullseyeAction(inner), nil
		}
		target := &p.Bullseye.OuterAction
		if inner {
			target = &p.Bullseye.InnerAction
		}
		if err := target.UnmarshalText([]byte(rest[1])); err != nil {
			return p, err
		}
		return p, nil

	case "reset":
		return p.Reset(), nil

	case "load":
		if len(rest) != 1 {
			return p, fmt.Errorf("load: want one share string")
		}
		return codec.Decode(rest[0], n)
	}
	return p, fmt.Errorf("unknown edit %q", verb)
}

func wedgePart(args []string) (int, board.PartKind, error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("want NUMBER PART")
	}
	number, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("bad number %q", args[0])
	}
	kind, err := board.ParsePartKind(args[1])
	if err != nil {
		return 0, 0, err
	}
	return number, kind, nil
}
// #endregion parse
