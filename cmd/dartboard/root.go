package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/config"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/logging"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once the root's
// PersistentPreRunE has run.
type app struct {
	configPath string
	dbPath     string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

// #region root
func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "dartboard",
		Short: "Dartboard ring-arithmetic puzzle solver",
		Long: `dartboard evaluates puzzles drawn on a dartboard: twenty numbered wedges
whose parts carry arithmetic operations, outer-ring modifiers that transform
the wedge number, and a colored bullseye that post-processes the total.

Puzzles are exchanged in their compact share form, e.g.
  s=20:i:a,5:i:s,5:o:n:2d&b=c:y,ia:sq`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			_ = a.logger.Sync()
		},
	}
	root.Version = version

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML config file")
	pf.StringVar(&a.dbPath, "db", "", "SQLite database path (overrides config)")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newSolveCmd(a),
		newEditCmd(a),
		newUndoCmd(a),
		newHistoryCmd(a),
		newSavedCmd(a),
		newReplayCmd(a),
		newExportCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
	)
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.verbose {
		cfg.Logging.Level = "debug"
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.cfg = cfg
	a.logger = logger
	return nil
}
// #endregion root

// #region helpers
func (a *app) evaluator() *eval.Evaluator {
	return eval.NewEvaluator(a.cfg.EvaluatorConfig())
}

func (a *app) numbering() board.Numbering {
	return a.cfg.BoardNumbering()
}

// openStore opens the configured database.
func (a *app) openStore() (*state.Store, error) {
	store, err := state.NewStore(a.cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return store, nil
}

// openEditor opens the database and makes sure an active board exists,
// creating a blank one on first use.
func (a *app) openEditor() (*state.Store, state.Snapshot, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, state.Snapshot{}, err
	}
	cur, err := store.GetCurrent()
	if errors.Is(err, state.ErrNotFound) {
		a.logger.Info("no active puzzle found, creating blank board", zap.String("db", a.cfg.DBPath))
		blank := board.NewPuzzle(a.numbering())
		cur, err = store.CreateInitial(blank, a.evaluator().Evaluate(blank).Value)
	}
	if err != nil {
		store.Close()
		return nil, state.Snapshot{}, err
	}
	return store, cur, nil
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
// #endregion helpers
