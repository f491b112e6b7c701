package handlers

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Full gRPC method names of the company service.
const (
	ServiceName         = "company.v1.CompanyService"
	MethodListCompanies = "/" + ServiceName + "/ListCompanies"
	MethodCreateCompany = "/" + ServiceName + "/CreateCompany"
	MethodGetCompany    = "/" + ServiceName + "/GetCompany"
	MethodDeleteCompany = "/" + ServiceName + "/DeleteCompany"
)

// CompanyServiceServer is the gRPC surface of the company service. It is
// expressed with well-known protobuf types so no generated code is needed.
type CompanyServiceServer interface {
	ListCompanies(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	CreateCompany(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetCompany(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	DeleteCompany(context.Context, *wrapperspb.StringValue) (*emptypb.Empty, error)
}

// CompanyHandler provides gRPC methods for Company operations,
// mapping requests to a CompanyController interface.
type CompanyHandler struct {
	service CompanyController
	logger  *zap.Logger
}

// NewCompanyHandler constructs a new CompanyHandler with the given service and logger.
func NewCompanyHandler(service CompanyController, logger *zap.Logger) *CompanyHandler {
	return &CompanyHandler{
		service: service,
		logger:  logger.Named("grpc_handler"),
	}
}

// ListCompanies returns every company as a list of Structs.
func (h *CompanyHandler) ListCompanies(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	companies, err := h.service.ListCompanies(ctx)
	if err != nil {
		return nil, mapGRPCError(err, h.logger)
	}

	list := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(companies))}
	for _, company := range companies {
		s, err := modelToStruct(company)
		if err != nil {
			return nil, status.Error(codes.Internal, err.Error())
		}
		list.Values = append(list.Values, structpb.NewStructValue(s))
	}
	return list, nil
}

// CreateCompany creates a company from the name, status, application_link
// and notes keys of req.
func (h *CompanyHandler) CreateCompany(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	company, err := structToModel(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	created, err := h.service.CreateCompany(ctx, company)
	if err != nil {
		h.logger.Debug("Create company failed", zap.Error(err))
		return nil, mapGRPCError(err, h.logger)
	}
	return modelToStruct(created)
}

// GetCompany fetches a Company by name, returning an error if not found.
func (h *CompanyHandler) GetCompany(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "company name required")
	}

	company, err := h.service.GetCompany(ctx, req.GetValue())
	if err != nil {
		return nil, mapGRPCError(err, h.logger)
	}
	return modelToStruct(company)
}

// DeleteCompany removes a Company given its name.
func (h *CompanyHandler) DeleteCompany(ctx context.Context, req *wrapperspb.StringValue) (*emptypb.Empty, error) {
	if req.GetValue() == "" {
		return nil, status.Error(codes.InvalidArgument, "company name required")
	}

	if err := h.service.DeleteCompany(ctx, req.GetValue()); err != nil {
		return nil, mapGRPCError(err, h.logger)
	}
	return &emptypb.Empty{}, nil
}

// unaryHandler adapts a typed method into a grpc.MethodDesc handler.
func unaryHandler[Req any, Resp any](
	fullMethod string,
	newReq func() *Req,
	call func(CompanyServiceServer, context.Context, *Req) (*Resp, error),
) func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CompanyServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(CompanyServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// companyServiceDesc describes CompanyServiceServer to grpc.Server.
var companyServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CompanyServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListCompanies",
			Handler: unaryHandler(MethodListCompanies,
				func() *emptypb.Empty { return new(emptypb.Empty) },
				CompanyServiceServer.ListCompanies),
		},
		{
			MethodName: "CreateCompany",
			Handler: unaryHandler(MethodCreateCompany,
				func() *structpb.Struct { return new(structpb.Struct) },
				CompanyServiceServer.CreateCompany),
		},
		{
			MethodName: "GetCompany",
			Handler: unaryHandler(MethodGetCompany,
				func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
				CompanyServiceServer.GetCompany),
		},
		{
			MethodName: "DeleteCompany",
			Handler: unaryHandler(MethodDeleteCompany,
				func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) },
				CompanyServiceServer.DeleteCompany),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "company/v1/company.proto",
}

// RegisterCompanyServiceServer registers srv on s.
func RegisterCompanyServiceServer(s grpc.ServiceRegistrar, srv CompanyServiceServer) {
	s.RegisterService(&companyServiceDesc, srv)
}

// CompanyServiceClient calls the company service over conn.
type CompanyServiceClient struct {
	conn grpc.ClientConnInterface
}

// NewCompanyServiceClient returns a client bound to conn.
func NewCompanyServiceClient(conn grpc.ClientConnInterface) *CompanyServiceClient {
	return &CompanyServiceClient{conn: conn}
}

func (c *CompanyServiceClient) ListCompanies(ctx context.Context, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, MethodListCompanies, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) CreateCompany(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, MethodCreateCompany, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) GetCompany(ctx context.Context, name string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, MethodGetCompany, wrapperspb.String(name), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *CompanyServiceClient) DeleteCompany(ctx context.Context, name string, opts ...grpc.CallOption) error {
	return c.conn.Invoke(ctx, MethodDeleteCompany, wrapperspb.String(name), new(emptypb.Empty), opts...)
}
