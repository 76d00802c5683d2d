package main

import (
	"database/sql"
	"fmt"
	"net"
	"os/signal"
	"syscall"

	mcpserver "github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/mcp"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rpc"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/state"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr   string
		record bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC solver service",
		Long: `Serve dartboard.v1.Solver/Evaluate on the configured address until
interrupted. Requests carry a share string; responses carry the result, its
display form, the equation steps and the canonical share string.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr == "" {
				addr = a.cfg.GRPCAddr
			}
			db, closeDB, err := a.optionalDB(record)
			if err != nil {
				return err
			}
			defer closeDB()

			lis, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("listen %s: %w", addr, err)
			}
			srv := rpc.NewServer(a.evaluator(), a.numbering(), db, a.logger)
			gs := rpc.NewGRPCServer(srv, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				a.logger.Info("solver listening", zap.String("addr", lis.Addr().String()))
				return gs.Serve(lis)
			})
			g.Go(func() error {
				<-ctx.Done()
				a.logger.Info("shutting down solver")
				gs.GracefulStop()
				return nil
			})
			return g.Wait()
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&record, "record", true, "write every evaluation to the evaluation log")
	return cmd
}

func newMCPCmd(a *app) *cobra.Command {
	var record bool
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server over stdio",
		Long: `Start a Model Context Protocol server over stdin/stdout exposing the
solve_puzzle and encode_puzzle tools.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, closeDB, err := a.optionalDB(record)
			if err != nil {
				return err
			}
			defer closeDB()

			srv := mcpserver.NewServer(a.evaluator(), a.numbering(), db, a.logger, version)
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("starting dartboard MCP server over stdio")
			return srv.Run(ctx)
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "write every evaluation to the evaluation log")
	return cmd
}

// optionalDB opens the store when record is set. The returned close func is
// always safe to call.
func (a *app) optionalDB(record bool) (*sql.DB, func(), error) {
	if !record {
		return nil, func() {}, nil
	}
	store, err := state.NewStore(a.cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	return store.DB(), func() { store.Close() }, nil
}
