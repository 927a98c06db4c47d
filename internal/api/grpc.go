package api

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/xtding233/volcano-backend/internal/logger"
)

// PredictorServer is the volcano.v1.Predictor service. Messages are google.protobuf.Struct
// carrying the same JSON shapes as the HTTP API.
type PredictorServer interface {
	Predict(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SimulateFloor(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

const (
	predictorService    = "volcano.v1.Predictor"
	predictMethod       = "/" + predictorService + "/Predict"
	simulateFloorMethod = "/" + predictorService + "/SimulateFloor"
)

var predictorServiceDesc = grpc.ServiceDesc{
	ServiceName: predictorService,
	HandlerType: (*PredictorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Predict", Handler: predictHandler},
		{MethodName: "SimulateFloor", Handler: simulateFloorHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "volcano/v1/predictor.proto",
}

// RegisterPredictorServer attaches srv to a gRPC server.
func RegisterPredictorServer(s grpc.ServiceRegistrar, srv PredictorServer) {
	s.RegisterService(&predictorServiceDesc, srv)
}

func predictHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictorServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: predictMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PredictorServer).Predict(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func simulateFloorHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PredictorServer).SimulateFloor(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: simulateFloorMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PredictorServer).SimulateFloor(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// PredictorClient calls a remote volcano.v1.Predictor.
type PredictorClient struct {
	cc grpc.ClientConnInterface
}

func NewPredictorClient(cc grpc.ClientConnInterface) *PredictorClient {
	return &PredictorClient{cc: cc}
}

func (c *PredictorClient) Predict(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, predictMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PredictorClient) SimulateFloor(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, simulateFloorMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GRPCServer implements PredictorServer on a Service.
type GRPCServer struct {
	svc *Service
}

func NewGRPCServer(svc *Service) *GRPCServer {
	return &GRPCServer{svc: svc}
}

func (g *GRPCServer) Predict(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req settingsRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	settings, err := g.svc.Resolve(req.Profile, req.overrides())
	if err != nil {
		return nil, grpcError(err)
	}
	p, _, err := g.svc.Predict(ctx, settings)
	if err != nil {
		return nil, grpcError(err)
	}
	return toStruct(p)
}

func (g *GRPCServer) SimulateFloor(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req floorRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, err
	}
	settings, err := g.svc.Resolve(req.Profile, req.overrides())
	if err != nil {
		return nil, grpcError(err)
	}
	level, layout, err := req.target()
	if err != nil {
		return nil, grpcError(err)
	}
	luck, err := req.luckRange()
	if err != nil {
		return nil, grpcError(err)
	}
	v, err := g.svc.SimulateFloor(settings, level, layout, luck)
	if err != nil {
		return nil, grpcError(err)
	}
	return toStruct(newFloorResponse(v))
}

func grpcError(err error) error {
	if isClientError(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	logger.Error("gRPC request failed", "error", err)
	return status.Error(codes.Internal, err.Error())
}

// fromStruct decodes a Struct through its JSON form.
func fromStruct(in *structpb.Struct, dst any) error {
	raw, err := protojson.Marshal(in)
	if err != nil {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return status.Error(codes.InvalidArgument, fmt.Sprintf("decode request: %v", err))
	}
	return nil
}

// toStruct encodes v as JSON and re-reads it as a Struct.
func toStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
