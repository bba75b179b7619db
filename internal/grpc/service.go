package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified name of the analytics service.
const ServiceName = "jii.analytics.v1.SurveyAnalytics"

// AnalyticsServer is the server API of the analytics service. Requests and
// responses are google.protobuf.Struct messages so any gRPC client can call
// it without generated stubs.
type AnalyticsServer interface {
	GetOverview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetBreakdown(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTimeline(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSurveyStats(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetQuestionSummaries(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetQuestionDistribution(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCategoryScores(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTextOverview(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetTextResponses(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetWordFrequencies(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetSentiment(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(AnalyticsServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(method string, call unaryCall) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(AnalyticsServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: FullMethod(method),
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(AnalyticsServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// FullMethod returns the wire name of method, e.g. "/jii.analytics.v1.SurveyAnalytics/GetOverview".
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ServiceDesc describes the analytics service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AnalyticsServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetOverview", AnalyticsServer.GetOverview),
		unary("GetBreakdown", AnalyticsServer.GetBreakdown),
		unary("GetTimeline", AnalyticsServer.GetTimeline),
		unary("GetSurveyStats", AnalyticsServer.GetSurveyStats),
		unary("GetQuestionSummaries", AnalyticsServer.GetQuestionSummaries),
		unary("GetQuestionDistribution", AnalyticsServer.GetQuestionDistribution),
		unary("GetCategoryScores", AnalyticsServer.GetCategoryScores),
		unary("GetTextOverview", AnalyticsServer.GetTextOverview),
		unary("GetTextResponses", AnalyticsServer.GetTextResponses),
		unary("GetWordFrequencies", AnalyticsServer.GetWordFrequencies),
		unary("GetSentiment", AnalyticsServer.GetSentiment),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "jii/analytics/v1/analytics.proto",
}

// RegisterAnalyticsServer registers srv on s.
func RegisterAnalyticsServer(s grpc.ServiceRegistrar, srv AnalyticsServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// AnalyticsClient calls the analytics service over conn.
type AnalyticsClient struct {
	cc grpc.ClientConnInterface
}

func NewAnalyticsClient(cc grpc.ClientConnInterface) *AnalyticsClient {
	return &AnalyticsClient{cc: cc}
}

// Call invokes method with req. A nil req sends an empty struct.
func (c *AnalyticsClient) Call(ctx context.Context, method string, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if req == nil {
		req = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, FullMethod(method), req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
