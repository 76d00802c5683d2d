package rpc

import (
	"context"
	"database/sql"
	"time"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/logging"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region server
// Server implements SolverServer. It is stateless apart from the optional
// evaluation log, so one instance serves all connections.
type Server struct {
	evaluator *eval.Evaluator
	numbering board.Numbering
	db        *sql.DB
	logger    *zap.Logger
}

// NewServer creates a Server. db may be nil to skip the evaluation log.
func NewServer(e *eval.Evaluator, n board.Numbering, db *sql.DB, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{evaluator: e, numbering: n, db: db, logger: logger}
}

// Evaluate decodes a share string and returns the evaluation.
func (s *Server) Evaluate(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	p, err := codec.Decode(in.GetValue(), s.numbering)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode puzzle: %v", err)
	}
	res := s.evaluator.Evaluate(p)

	if s.db != nil {
		if entry, err := logging.NewEvaluationEntry(logging.TriggerGRPC, "", p, res); err == nil {
			if err := logging.LogEvaluation(s.db, entry); err != nil {
				s.logger.Warn("evaluation log write failed", zap.Error(err))
			}
		}
	}

	out, err := ResultToStruct(p, res, s.evaluator.Config().Precision)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode result: %v", err)
	}
	return out, nil
}

// NewGRPCServer builds a grpc.Server with request logging and registers srv.
func NewGRPCServer(srv *Server, logger *zap.Logger, opts ...grpc.ServerOption) *grpc.Server {
	opts = append([]grpc.ServerOption{grpc.UnaryInterceptor(LoggingInterceptor(logger))}, opts...)
	gs := grpc.NewServer(opts...)
	RegisterSolverServer(gs, srv)
	return gs
}
// #endregion server

// #region interceptor
// LoggingInterceptor logs each unary call with its status code and duration.
func LoggingInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		fields := []zap.Field{
			zap.String("method", info.FullMethod),
			zap.String("code", status.Code(err).String()),
			zap.Duration("elapsed", time.Since(start)),
		}
		if err != nil {
			logger.Warn("rpc failed", append(fields, zap.Error(err))...)
		} else {
			logger.Debug("rpc served", fields...)
		}
		return resp, err
	}
}
// #endregion interceptor

// #region result-struct
// ResultToStruct renders an evaluation as the Evaluate response.
func ResultToStruct(p board.Puzzle, res eval.Result, precision int) (*structpb.Struct, error) {
	steps := make([]any, len(res.Steps))
	for i, s := range res.Steps {
		steps[i] = s
	}
	return structpb.NewStruct(map[string]any{
		"result":    res.Value.Exact(),
		"display":   res.Display(precision),
		"undefined": res.Value.IsUndefined(),
		"steps":     steps,
		"wire":      codec.Encode(p),
	})
}
// #endregion result-struct
