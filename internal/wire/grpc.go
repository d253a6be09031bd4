package wire

import (
	"context"

	"google.golang.org/grpc"
)

const (
	acceptorReadMethod    = "/alphareg.Acceptor/Read"
	acceptorWriteMethod   = "/alphareg.Acceptor/Write"
	acceptorPingMethod    = "/alphareg.Acceptor/Ping"
	registerProposeMethod = "/alphareg.Register/Propose"
	registerGetMethod     = "/alphareg.Register/Get"
)

// AcceptorServer is the internal peer-facing service: the acceptor role of
// the local register plus the failure-detector probe.
type AcceptorServer interface {
	Read(ctx context.Context, req *ReadRequest) (*ReadReply, error)
	Write(ctx context.Context, req *WriteRequest) (*WriteReply, error)
	Ping(ctx context.Context, req *PingRequest) (*PingReply, error)
}

// RegisterServer is the public client-facing service.
type RegisterServer interface {
	Propose(ctx context.Context, req *ProposeRequest) (*ProposeReply, error)
	Get(ctx context.Context, req *GetRequest) (*GetReply, error)
}

// RegisterAcceptorServer registers the acceptor service on a gRPC server.
func RegisterAcceptorServer(s grpc.ServiceRegistrar, srv AcceptorServer) {
	s.RegisterService(&acceptorServiceDesc, srv)
}

// RegisterRegisterServer registers the public service on a gRPC server.
func RegisterRegisterServer(s grpc.ServiceRegistrar, srv RegisterServer) {
	s.RegisterService(&registerServiceDesc, srv)
}

var acceptorServiceDesc = grpc.ServiceDesc{
	ServiceName: "alphareg.Acceptor",
	HandlerType: (*AcceptorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Read", Handler: acceptorReadHandler},
		{MethodName: "Write", Handler: acceptorWriteHandler},
		{MethodName: "Ping", Handler: acceptorPingHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/alphareg.proto",
}

var registerServiceDesc = grpc.ServiceDesc{
	ServiceName: "alphareg.Register",
	HandlerType: (*RegisterServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Propose", Handler: registerProposeHandler},
		{MethodName: "Get", Handler: registerGetHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "api/alphareg.proto",
}

func acceptorReadHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ReadRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AcceptorServer).Read(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: acceptorReadMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AcceptorServer).Read(ctx, req.(*ReadRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func acceptorWriteHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AcceptorServer).Write(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: acceptorWriteMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AcceptorServer).Write(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func acceptorPingHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(PingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AcceptorServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: acceptorPingMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AcceptorServer).Ping(ctx, req.(*PingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func registerProposeHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ProposeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegisterServer).Propose(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: registerProposeMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegisterServer).Propose(ctx, req.(*ProposeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func registerGetHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(RegisterServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: registerGetMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(RegisterServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// AcceptorClient calls the internal peer-facing service.
type AcceptorClient interface {
	Read(ctx context.Context, req *ReadRequest, opts ...grpc.CallOption) (*ReadReply, error)
	Write(ctx context.Context, req *WriteRequest, opts ...grpc.CallOption) (*WriteReply, error)
	Ping(ctx context.Context, req *PingRequest, opts ...grpc.CallOption) (*PingReply, error)
}

type acceptorClient struct {
	cc grpc.ClientConnInterface
}

// NewAcceptorClient returns an AcceptorClient over the given connection.
func NewAcceptorClient(cc grpc.ClientConnInterface) AcceptorClient {
	return &acceptorClient{cc: cc}
}

func (c *acceptorClient) Read(ctx context.Context, req *ReadRequest, opts ...grpc.CallOption) (*ReadReply, error) {
	out := new(ReadReply)
	if err := c.cc.Invoke(ctx, acceptorReadMethod, req, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *acceptorClient) Write(ctx context.Context, req *WriteRequest, opts ...grpc.CallOption) (*WriteReply, error) {
	out := new(WriteReply)
	if err := c.cc.Invoke(ctx, acceptorWriteMethod, req, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *acceptorClient) Ping(ctx context.Context, req *PingRequest, opts ...grpc.CallOption) (*PingReply, error) {
	out := new(PingReply)
	if err := c.cc.Invoke(ctx, acceptorPingMethod, req, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterClient calls the public client-facing service.
type RegisterClient interface {
	Propose(ctx context.Context, req *ProposeRequest, opts ...grpc.CallOption) (*ProposeReply, error)
	Get(ctx context.Context, req *GetRequest, opts ...grpc.CallOption) (*GetReply, error)
}

type registerClient struct {
	cc grpc.ClientConnInterface
}

// NewRegisterClient returns a RegisterClient over the given connection.
func NewRegisterClient(cc grpc.ClientConnInterface) RegisterClient {
	return &registerClient{cc: cc}
}

func (c *registerClient) Propose(ctx context.Context, req *ProposeRequest, opts ...grpc.CallOption) (*ProposeReply, error) {
	out := new(ProposeReply)
	if err := c.cc.Invoke(ctx, registerProposeMethod, req, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *registerClient) Get(ctx context.Context, req *GetRequest, opts ...grpc.CallOption) (*GetReply, error) {
	out := new(GetReply)
	if err := c.cc.Invoke(ctx, registerGetMethod, req, out, callOpts(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// callOpts pins every call to the wire codec.
func callOpts(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(Name)}, opts...)
}
