package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name
const ServiceName = "rpgfitness.tools.v1alpha1.ToolService"

// Full method names
const (
	ToolServiceGetStateMethod       = "/" + ServiceName + "/GetState"
	ToolServiceExecuteToolsMethod   = "/" + ServiceName + "/ExecuteTools"
	ToolServiceGenerateQuestsMethod = "/" + ServiceName + "/GenerateQuests"
	ToolServiceCompleteQuestMethod  = "/" + ServiceName + "/CompleteQuest"
	ToolServiceLogTrainingMethod    = "/" + ServiceName + "/LogTraining"
)

// ToolServiceServer is the server API for the tool service. Requests and
// responses are google.protobuf.Struct documents with camelCase keys.
type ToolServiceServer interface {
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ExecuteTools(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GenerateQuests(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompleteQuest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	LogTraining(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterToolServiceServer registers srv on s
func RegisterToolServiceServer(s grpc.ServiceRegistrar, srv ToolServiceServer) {
	s.RegisterService(&ToolServiceDesc, srv)
}

type structMethod func(srv ToolServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ToolServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ToolServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ToolServiceDesc describes the tool service for grpc.Server registration
var ToolServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ToolServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetState",
			Handler: unaryHandler(ToolServiceGetStateMethod, func(srv ToolServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetState(ctx, in)
			}),
		},
		{
			MethodName: "ExecuteTools",
			Handler: unaryHandler(ToolServiceExecuteToolsMethod, func(srv ToolServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.ExecuteTools(ctx, in)
			}),
		},
		{
			MethodName: "GenerateQuests",
			Handler: unaryHandler(ToolServiceGenerateQuestsMethod, func(srv ToolServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.GenerateQuests(ctx, in)
			}),
		},
		{
			MethodName: "CompleteQuest",
			Handler: unaryHandler(ToolServiceCompleteQuestMethod, func(srv ToolServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.CompleteQuest(ctx, in)
			}),
		},
		{
			MethodName: "LogTraining",
			Handler: unaryHandler(ToolServiceLogTrainingMethod, func(srv ToolServiceServer, ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
				return srv.LogTraining(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "rpgfitness/tools/v1alpha1/tools.proto",
}

// ToolServiceClient calls the tool service
type ToolServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewToolServiceClient creates a client on cc
func NewToolServiceClient(cc grpc.ClientConnInterface) *ToolServiceClient {
	return &ToolServiceClient{cc: cc}
}

func (c *ToolServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetState calls ToolService.GetState
func (c *ToolServiceClient) GetState(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolServiceGetStateMethod, in, opts...)
}

// ExecuteTools calls ToolService.ExecuteTools
func (c *ToolServiceClient) ExecuteTools(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolServiceExecuteToolsMethod, in, opts...)
}

// GenerateQuests calls ToolService.GenerateQuests
func (c *ToolServiceClient) GenerateQuests(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolServiceGenerateQuestsMethod, in, opts...)
}

// CompleteQuest calls ToolService.CompleteQuest
func (c *ToolServiceClient) CompleteQuest(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolServiceCompleteQuestMethod, in, opts...)
}

// LogTraining calls ToolService.LogTraining
func (c *ToolServiceClient) LogTraining(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolServiceLogTrainingMethod, in, opts...)
}
