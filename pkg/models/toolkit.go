package models

// TaggedToken is a token paired with its part-of-speech tag. The tag set is
// whatever the toolkit produces and is treated as opaque.
type TaggedToken struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// Tokenizer segments text into tokens in order of appearance.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Tagger assigns one tag to every token. The result has the same length
// and order as the input.
type Tagger interface {
	Tag(tokens []string) ([]TaggedToken, error)
}

// Chunker groups contiguous tagged tokens into named-entity spans.
type Chunker interface {
	Chunk(tagged []TaggedToken) (*Tree, error)
}

// Toolkit is the external linguistic toolkit as seen by this service.
type Toolkit interface {
	Tokenizer
	Tagger
	Chunker
}
