package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	DashboardServiceName = "simre.v1.Dashboard"

	Dashboard_GetSummary_FullMethodName        = "/simre.v1.Dashboard/GetSummary"
	Dashboard_GetSchoolCharts_FullMethodName   = "/simre.v1.Dashboard/GetSchoolCharts"
	Dashboard_GetRecentActivity_FullMethodName = "/simre.v1.Dashboard/GetRecentActivity"
)

// DashboardServer is the server API for the simre.v1.Dashboard service.
// Requests and responses are google.protobuf.Struct messages.
type DashboardServer interface {
	GetSummary(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetSchoolCharts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetRecentActivity(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

func RegisterDashboardServer(s grpc.ServiceRegistrar, srv DashboardServer) {
	s.RegisterService(&Dashboard_ServiceDesc, srv)
}

type dashboardCall func(srv DashboardServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call dashboardCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(DashboardServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(DashboardServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var Dashboard_ServiceDesc = grpc.ServiceDesc{
	ServiceName: DashboardServiceName,
	HandlerType: (*DashboardServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetSummary",
			Handler: unaryHandler(Dashboard_GetSummary_FullMethodName, func(srv DashboardServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetSummary(ctx, req)
			}),
		},
		{
			MethodName: "GetSchoolCharts",
			Handler: unaryHandler(Dashboard_GetSchoolCharts_FullMethodName, func(srv DashboardServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetSchoolCharts(ctx, req)
			}),
		},
		{
			MethodName: "GetRecentActivity",
			Handler: unaryHandler(Dashboard_GetRecentActivity_FullMethodName, func(srv DashboardServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
				return srv.GetRecentActivity(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "simre/v1/dashboard.proto",
}

// DashboardClient calls the simre.v1.Dashboard service.
type DashboardClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardClient(cc grpc.ClientConnInterface) *DashboardClient {
	return &DashboardClient{cc: cc}
}

func (c *DashboardClient) GetSummary(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Dashboard_GetSummary_FullMethodName, in, opts...)
}

func (c *DashboardClient) GetSchoolCharts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Dashboard_GetSchoolCharts_FullMethodName, in, opts...)
}

func (c *DashboardClient) GetRecentActivity(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, Dashboard_GetRecentActivity_FullMethodName, in, opts...)
}

func (c *DashboardClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
