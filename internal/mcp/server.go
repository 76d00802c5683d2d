// Package mcp exposes the solver as Model Context Protocol tools.
package mcp

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/board"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/codec"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/eval"
	"github.com/danielpatrickdp/dartboard-puzzle/go-solver/internal/logging"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Server wraps the MCP SDK server with the solver tools.
type Server struct {
	MCPServer *sdkmcp.Server

	evaluator *eval.Evaluator
	numbering board.Numbering
	db        *sql.DB
	logger    *zap.Logger
}

// NewServer creates an MCP server with the solve_puzzle and encode_puzzle
// tools. db may be nil to skip the evaluation log.
func NewServer(e *eval.Evaluator, n board.Numbering, db *sql.DB, logger *zap.Logger, version string) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{evaluator: e, numbering: n, db: db, logger: logger}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "dartboard", Version: version},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "solve_puzzle",
		Description: "Evaluate a dartboard puzzle given in share form (s=...&b=...). Returns the exact result, its display form and every equation step.",
	}, s.handleSolve)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "encode_puzzle",
		Description: "Build a puzzle from part, modifier and bullseye settings and return its share form.",
	}, s.handleEncode)
}

// --- Tool input/output types ---

type solveInput struct {
	Wire string `json:"wire" jsonschema:"puzzle share string, e.g. s=20:i:a,5:i:s&b=c:y,ia:sq; a full URL is accepted"`
}

type solveOutput struct {
	Result    string   `json:"result"`
	Display   string   `json:"display"`
	Undefined bool     `json:"undefined"`
	Steps     []string `json:"steps"`
	Wire      string   `json:"wire"`
}

type partSetting struct {
	Number    int    `json:"number" jsonschema:"wedge face number"`
	Part      string `json:"part" jsonschema:"innerSegment, tripleRing, mainSegment, doubleRing or outerRing"`
	Operation string `json:"operation" jsonschema:"add, subtract, multiply, divide or none"`
	Partial   bool   `json:"partial,omitempty" jsonschema:"one-third fill: the number is divided by 3"`
}

type modifierSetting struct {
	Number   int    `json:"number" jsonschema:"wedge face number"`
	Modifier string `json:"modifier" jsonschema:"outer-ring marking, e.g. cross, twoDots, square, diamond, singleWavy, oneThirdFull"`
}

type encodeInput struct {
	Parts       []partSetting     `json:"parts,omitempty"`
	Modifiers   []modifierSetting `json:"modifiers,omitempty"`
	Color       string            `json:"color,omitempty" jsonschema:"bullseye color: blue, yellow, pink or purple"`
	InnerAction string            `json:"inner_action,omitempty" jsonschema:"inner bullseye action, e.g. square, diamond, twoDots"`
	OuterAction string            `json:"outer_action,omitempty" jsonschema:"outer bullseye action"`
}

type encodeOutput struct {
	Wire string `json:"wire"`
}

// --- Handlers ---

func (s *Server) handleSolve(_ context.Context, _ *sdkmcp.CallToolRequest, input solveInput) (*sdkmcp.CallToolResult, solveOutput, error) {
	p, err := codec.Decode(input.Wire, s.numbering)
	if err != nil {
		return nil, solveOutput{}, err
	}
	res := s.evaluator.Evaluate(p)
	s.record(p, res)
	steps := res.Steps
	if steps == nil {
		steps = []string{}
	}

	s.logger.Debug("solve_puzzle", zap.String("wire", input.Wire), zap.String("result", res.Value.Exact()))
	return nil, solveOutput{
		Result:    res.Value.Exact(),
		Display:   res.Display(s.evaluator.Config().Precision),
		Undefined: res.Value.IsUndefined(),
		Steps:     steps,
		Wire:      codec.Encode(p),
	}, nil
}

func (s *Server) handleEncode(_ context.Context, _ *sdkmcp.CallToolRequest, input encodeInput) (*sdkmcp.CallToolResult, encodeOutput, error) {
	p, err := buildPuzzle(board.NewPuzzle(s.numbering), input)
	if err != nil {
		return nil, encodeOutput{}, err
	}
	return nil, encodeOutput{Wire: codec.Encode(p)}, nil
}

func buildPuzzle(p board.Puzzle, input encodeInput) (board.Puzzle, error) {
	var err error
	for _, ps := range input.Parts {
		kind, perr := board.ParsePartKind(ps.Part)
		if perr != nil {
			return p, perr
		}
		op, perr := board.ParseOperation(ps.Operation)
		if perr != nil {
			return p, perr
		}
		if p, err = p.SetOperation(ps.Number, kind, op); err != nil {
			return p, err
		}
		if p, err = p.SetPartial(ps.Number, kind, ps.Partial); err != nil {
			return p, err
		}
	}
	for _, ms := range input.Modifiers {
		m, perr := board.ParseModifierState(ms.Modifier)
		if perr != nil {
			return p, perr
		}
		if p, err = p.SetModifier(ms.Number, m); err != nil {
			return p, err
		}
	}
	if err := p.Bullseye.Color.UnmarshalText([]byte(input.Color)); err != nil {
		return p, fmt.Errorf("bullseye: %w", err)
	}
	if err := p.Bullseye.InnerAction.UnmarshalText([]byte(input.InnerAction)); err != nil {
		return p, fmt.Errorf("bullseye inner: %w", err)
	}
	if err := p.Bullseye.OuterAction.UnmarshalText([]byte(input.OuterAction)); err != nil {
		return p, fmt.Errorf("bullseye outer: %w", err)
	}
	return p, nil
}

func (s *Server) record(p board.Puzzle, res eval.Result) {
	if s.db == nil {
		return
	}
	entry, err := logging.NewEvaluationEntry(logging.TriggerMCP, "", p, res)
	if err == nil {
		err = logging.LogEvaluation(s.db, entry)
	}
	if err != nil {
		s.logger.Warn("evaluation log write failed", zap.Error(err))
	}
}
