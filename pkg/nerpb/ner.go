// Package nerpb holds the gRPC bindings for proto/named_entity_recognition_rpc.proto.
//
// InputMessage and OutputMessage carry a single string field numbered 1,
// which is exactly google.protobuf.StringValue on the wire, so the
// well-known wrapper type stands in for both.
package nerpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const protoFile = "named_entity_recognition_rpc.proto"

const (
	ShowMessage_Show_FullMethodName         = "/ShowMessage/show"
	TokenizeMessage_Tokenize_FullMethodName = "/TokenizeMessage/tokenize"
	TaggingMessage_Tag_FullMethodName       = "/TaggingMessage/tag"
	ChunkMessage_Chunk_FullMethodName       = "/ChunkMessage/chunk"
)

// ServiceNames lists every service in the proto file.
var ServiceNames = []string{"ShowMessage", "TokenizeMessage", "TaggingMessage", "ChunkMessage"}

type ShowMessageServer interface {
	Show(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

type TokenizeMessageServer interface {
	Tokenize(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

type TaggingMessageServer interface {
	Tag(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

type ChunkMessageServer interface {
	Chunk(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

type unaryFunc func(srv interface{}, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error)

// unaryHandler builds the MethodDesc.Handler for a unary method.
func unaryHandler(
	fullMethod string,
	call unaryFunc,
) func(interface{}, context.Context, func(interface{}) error, grpc.UnaryServerInterceptor) (interface{}, error) {
	return func(
		srv interface{},
		ctx context.Context,
		dec func(interface{}) error,
		interceptor grpc.UnaryServerInterceptor,
	) (interface{}, error) {
		in := new(wrapperspb.StringValue)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv, ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv, ctx, req.(*wrapperspb.StringValue))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var ShowMessage_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ShowMessage",
	HandlerType: (*ShowMessageServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "show",
			Handler: unaryHandler(ShowMessage_Show_FullMethodName,
				func(srv interface{}, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
					return srv.(ShowMessageServer).Show(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

var TokenizeMessage_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "TokenizeMessage",
	HandlerType: (*TokenizeMessageServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "tokenize",
			Handler: unaryHandler(TokenizeMessage_Tokenize_FullMethodName,
				func(srv interface{}, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
					return srv.(TokenizeMessageServer).Tokenize(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

var TaggingMessage_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "TaggingMessage",
	HandlerType: (*TaggingMessageServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "tag",
			Handler: unaryHandler(TaggingMessage_Tag_FullMethodName,
				func(srv interface{}, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
					return srv.(TaggingMessageServer).Tag(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

var ChunkMessage_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "ChunkMessage",
	HandlerType: (*ChunkMessageServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "chunk",
			Handler: unaryHandler(ChunkMessage_Chunk_FullMethodName,
				func(srv interface{}, ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
					return srv.(ChunkMessageServer).Chunk(ctx, in)
				}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: protoFile,
}

// NERServer serves all four services.
type NERServer interface {
	ShowMessageServer
	TokenizeMessageServer
	TaggingMessageServer
	ChunkMessageServer
}

// RegisterNERServer registers srv under every service in the proto file.
func RegisterNERServer(s grpc.ServiceRegistrar, srv NERServer) {
	s.RegisterService(&ShowMessage_ServiceDesc, srv)
	s.RegisterService(&TokenizeMessage_ServiceDesc, srv)
	s.RegisterService(&TaggingMessage_ServiceDesc, srv)
	s.RegisterService(&ChunkMessage_ServiceDesc, srv)
}

// NERClient calls the four services over one connection.
type NERClient struct {
	cc grpc.ClientConnInterface
}

func NewNERClient(cc grpc.ClientConnInterface) *NERClient {
	return &NERClient{cc}
}

func (c *NERClient) invoke(
	ctx context.Context,
	method string,
	in *wrapperspb.StringValue,
	opts ...grpc.CallOption,
) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *NERClient) Show(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return c.invoke(ctx, ShowMessage_Show_FullMethodName, in, opts...)
}

func (c *NERClient) Tokenize(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return c.invoke(ctx, TokenizeMessage_Tokenize_FullMethodName, in, opts...)
}

func (c *NERClient) Tag(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return c.invoke(ctx, TaggingMessage_Tag_FullMethodName, in, opts...)
}

func (c *NERClient) Chunk(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	return c.invoke(ctx, ChunkMessage_Chunk_FullMethodName, in, opts...)
}
