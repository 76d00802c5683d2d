package rpc

import (
	"context"
	"fmt"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/rational"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region types
// EvaluateResult holds the response from an Evaluate RPC call.
type EvaluateResult struct {
	Result  rational.Rat
	Display string
	Steps   []string
	Wire    string
}
// #endregion types

// #region client-struct
// Client wraps the gRPC connection to a remote solver.
type Client struct {
	conn   *grpc.ClientConn
	client SolverClient
}
// #endregion client-struct

// #region constructor
// NewClient connects to a solver at addr.
func NewClient(addr string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{
		conn:   conn,
		client: NewSolverClient(conn),
	}, nil
}

// NewClientWithService creates a Client with an injected service implementation.
// Used for testing without a real gRPC connection.
func NewClientWithService(svc SolverClient) *Client {
	return &Client{client: svc}
}
// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
// #endregion close

// #region evaluate
// Evaluate sends a share string to the solver.
func (c *Client) Evaluate(ctx context.Context, wire string) (EvaluateResult, error) {
	resp, err := c.client.Evaluate(ctx, wrapperspb.String(wire))
	if err != nil {
		return EvaluateResult{}, fmt.Errorf("evaluate rpc: %w", err)
	}
	return resultFromStruct(resp)
}

// EvaluatePuzzle encodes p and sends it to the solver. The server decodes
// with its own numbering.
func (c *Client) EvaluatePuzzle(ctx context.Context, p board.Puzzle) (EvaluateResult, error) {
	return c.Evaluate(ctx, codec.Encode(p))
}

func resultFromStruct(s *structpb.Struct) (EvaluateResult, error) {
	fields := s.GetFields()
	value, err := rational.Parse(fields["result"].GetStringValue())
	if err != nil {
		return EvaluateResult{}, fmt.Errorf("evaluate response: %w", err)
	}
	out := EvaluateResult{
		Result:  value,
		Display: fields["display"].GetStringValue(),
		Wire:    fields["wire"].GetStringValue(),
		Steps:   []string{},
	}
	for _, v := range fields["steps"].GetListValue().GetValues() {
		out.Steps = append(out.Steps, v.GetStringValue())
	}
	return out, nil
}
// #endregion evaluate
