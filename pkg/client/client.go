// Package client calls a zep-ner server. It handles the base64 framing so
// callers deal in plain text.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/getzep/zep-ner/pkg/codec"
	"github.com/getzep/zep-ner/pkg/nerpb"
)

// Operations lists the names accepted by Call.
var Operations = []string{"show", "tokenize", "tag", "chunk"}

type Client struct {
	conn *grpc.ClientConn
	rpc  *nerpb.NERClient
}

// Dial connects to addr without transport security.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	}, opts...)
	conn, err := grpc.Dial(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", addr, err)
	}
	return &Client{conn: conn, rpc: nerpb.NewNERClient(conn)}, nil
}

// New wraps an existing connection. Close does not close cc.
func New(cc grpc.ClientConnInterface) *Client {
	return &Client{rpc: nerpb.NewNERClient(cc)}
}

func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Show sends text unencoded and returns the echoed value.
func (c *Client) Show(ctx context.Context, text string, opts ...grpc.CallOption) (string, error) {
	resp, err := c.rpc.Show(ctx, wrapperspb.String(text), opts...)
	if err != nil {
		return "", err
	}
	return resp.GetValue(), nil
}

// Tokenize returns the rendered token list for text.
func (c *Client) Tokenize(ctx context.Context, text string, opts ...grpc.CallOption) (string, error) {
	return c.encoded(ctx, c.rpc.Tokenize, text, opts...)
}

// Tag returns the rendered tagged-token list for text.
func (c *Client) Tag(ctx context.Context, text string, opts ...grpc.CallOption) (string, error) {
	return c.encoded(ctx, c.rpc.Tag, text, opts...)
}

// Chunk returns the rendered entity tree for text.
func (c *Client) Chunk(ctx context.Context, text string, opts ...grpc.CallOption) (string, error) {
	return c.encoded(ctx, c.rpc.Chunk, text, opts...)
}

// Call dispatches to the operation named op.
func (c *Client) Call(ctx context.Context, op, text string, opts ...grpc.CallOption) (string, error) {
	switch op {
	case "show":
		return c.Show(ctx, text, opts...)
	case "tokenize":
		return c.Tokenize(ctx, text, opts...)
	case "tag":
		return c.Tag(ctx, text, opts...)
	case "chunk":
		return c.Chunk(ctx, text, opts...)
	}
	return "", fmt.Errorf("unknown operation %q, want one of %v", op, Operations)
}

type rpcFunc func(context.Context, *wrapperspb.StringValue, ...grpc.CallOption) (*wrapperspb.StringValue, error)

func (c *Client) encoded(ctx context.Context, call rpcFunc, text string, opts ...grpc.CallOption) (string, error) {
	resp, err := call(ctx, wrapperspb.String(codec.Encode(text)), opts...)
	if err != nil {
		return "", err
	}
	return codec.Decode(resp.GetValue())
}
