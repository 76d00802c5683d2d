// Package rpc exposes the evaluator as the gRPC service dartboard.v1.Solver.
//
// The service has a single unary method, Evaluate. The request is a share
// string carried in a google.protobuf.StringValue and the response is a
// google.protobuf.Struct with the fields result, display, undefined, steps
// and wire. Using well-known types keeps the service free of generated code.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// #region descriptor
const (
	// ServiceName is the fully qualified gRPC service name.
	ServiceName = "dartboard.v1.Solver"

	evaluateMethod = "/" + ServiceName + "/Evaluate"
)

// SolverServer is the server API for the Solver service.
type SolverServer interface {
	Evaluate(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// ServiceDesc describes the Solver service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SolverServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "dartboard/v1/solver.proto",
}

func evaluateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: evaluateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SolverServer).Evaluate(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterSolverServer registers srv on s.
func RegisterSolverServer(s grpc.ServiceRegistrar, srv SolverServer) {
	s.RegisterService(&ServiceDesc, srv)
}
// #endregion descriptor

// #region client-stub
// SolverClient is the client API for the Solver service.
type SolverClient interface {
	Evaluate(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type solverClient struct {
	cc grpc.ClientConnInterface
}

// NewSolverClient wraps a connection.
func NewSolverClient(cc grpc.ClientConnInterface) SolverClient {
	return &solverClient{cc: cc}
}

func (c *solverClient) Evaluate(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, evaluateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
// #endregion client-stub
