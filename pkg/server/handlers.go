package server

import (
	"context"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/getzep/zep-ner/pkg/codec"
	"github.com/getzep/zep-ner/pkg/nerpb"
	"github.com/getzep/zep-ner/pkg/render"
	"github.com/getzep/zep-ner/pkg/toolkit"
)

// ShowPrefix is prepended to the show payload.
const ShowPrefix = "Processed => "

var _ nerpb.NERServer = &NERService{}

// NERService implements the four RPC operations. It keeps no state between
// calls.
type NERService struct {
	processor *toolkit.Processor
	log       logrus.FieldLogger
}

func NewNERService(processor *toolkit.Processor, log logrus.FieldLogger) *NERService {
	log.Debug("NERService created")
	return &NERService{processor: processor, log: log}
}

// Show echoes the raw value back with ShowPrefix. The payload is not
// base64 encoded in either direction.
func (s *NERService) Show(
	_ context.Context,
	req *wrapperspb.StringValue,
) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(ShowPrefix + req.GetValue()), nil
}

// Tokenize returns the token list of the decoded text.
func (s *NERService) Tokenize(
	_ context.Context,
	req *wrapperspb.StringValue,
) (*wrapperspb.StringValue, error) {
	text, err := codec.Decode(req.GetValue())
	if err != nil {
		return nil, err
	}

	tokens, err := s.processor.Tokenize(text)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("tokenize produced %d tokens", len(tokens))

	return wrapperspb.String(codec.Encode(render.Tokens(tokens))), nil
}

// Tag returns the (token, tag) pairs of the decoded text.
func (s *NERService) Tag(
	_ context.Context,
	req *wrapperspb.StringValue,
) (*wrapperspb.StringValue, error) {
	text, err := codec.Decode(req.GetValue())
	if err != nil {
		return nil, err
	}

	tagged, err := s.processor.Tag(text)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("tag produced %d tagged tokens", len(tagged))

	return wrapperspb.String(codec.Encode(render.Tagged(tagged))), nil
}

// Chunk returns the named-entity tree of the decoded text.
func (s *NERService) Chunk(
	_ context.Context,
	req *wrapperspb.StringValue,
) (*wrapperspb.StringValue, error) {
	text, err := codec.Decode(req.GetValue())
	if err != nil {
		return nil, err
	}

	tree, err := s.processor.Chunk(text)
	if err != nil {
		return nil, err
	}
	s.log.Debugf("chunk produced %d entities", len(tree.Subtrees()))

	return wrapperspb.String(codec.Encode(render.Tree(tree))), nil
}
