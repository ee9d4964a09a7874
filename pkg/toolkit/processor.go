// Package toolkit binds the external linguistic toolkit and composes its
// stages for each operation the service exposes.
package toolkit

import (
	"fmt"

	"github.com/getzep/zep-ner/pkg/models"
)

// Processor runs the toolkit stages in sequence. It holds no per-call
// state; concurrent use is as safe as the toolkit it wraps.
type Processor struct {
	toolkit models.Toolkit
}

func NewProcessor(toolkit models.Toolkit) *Processor {
	return &Processor{toolkit: toolkit}
}

// Tokenize segments text into tokens.
func (p *Processor) Tokenize(text string) ([]string, error) {
	tokens, err := p.toolkit.Tokenize(text)
	if err != nil {
		return nil, models.NewToolkitError("tokenize", err)
	}
	return tokens, nil
}

// Tag tokenizes text and tags the tokens.
func (p *Processor) Tag(text string) ([]models.TaggedToken, error) {
	tokens, err := p.Tokenize(text)
	if err != nil {
		return nil, err
	}
	tagged, err := p.toolkit.Tag(tokens)
	if err != nil {
		return nil, models.NewToolkitError("tag", err)
	}
	if len(tagged) != len(tokens) {
		return nil, models.NewToolkitError(
			"tag",
			fmt.Errorf("got %d tags for %d tokens", len(tagged), len(tokens)),
		)
	}
	return tagged, nil
}

// Chunk tokenizes and tags text, then groups named-entity spans.
func (p *Processor) Chunk(text string) (*models.Tree, error) {
	tagged, err := p.Tag(text)
	if err != nil {
		return nil, err
	}
	tree, err := p.toolkit.Chunk(tagged)
	if err != nil {
		return nil, models.NewToolkitError("chunk", err)
	}
	return tree, nil
}
