package toolkit

import (
	"regexp"
	"strings"
	"sync"

	"github.com/jdkato/prose/chunk"
	prosetag "github.com/jdkato/prose/tag"
	"github.com/jdkato/prose/tokenize"
	prose "github.com/jdkato/prose/v2"

	"github.com/getzep/zep-ner/pkg/models"
)

// UntypedLabel labels a named-entity span whose type is unknown, and every
// span in binary mode.
const UntypedLabel = "NE"

var _ models.Toolkit = &Prose{}

// Prose binds the prose toolkit: Punkt + Treebank tokenization, the
// averaged perceptron tagger and regexp-based named-entity chunking. Spans
// are typed with the prose v2 entity extractor unless binary is set. A span
// takes the label of the longest part of it the extractor recognised, so a
// span covering two entities carries only one label; spans with no
// recognised part are labelled UntypedLabel.
//
// The tagger model is loaded once and only read afterwards, so a Prose is
// safe for concurrent use.
type Prose struct {
	tagger *prosetag.PerceptronTagger
	binary bool

	// chunk.Locate flips the pattern to leftmost-longest on every call.
	mu sync.Mutex
	rx *regexp.Regexp
}

// NewProse loads the tagger model. This takes a moment; do it once at
// startup.
func NewProse(binary bool) *Prose {
	return &Prose{
		tagger: prosetag.NewPerceptronTagger(),
		binary: binary,
		rx:     chunk.TreebankNamedEntities.Copy(),
	}
}

func (p *Prose) Tokenize(text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	return tokenize.TextToWords(text), nil
}

func (p *Prose) Tag(tokens []string) ([]models.TaggedToken, error) {
	tagged := make([]models.TaggedToken, 0, len(tokens))
	if len(tokens) == 0 {
		return tagged, nil
	}
	for _, t := range p.tagger.Tag(tokens) {
		tagged = append(tagged, models.TaggedToken{Text: t.Text, Tag: t.Tag})
	}
	return tagged, nil
}

func (p *Prose) Chunk(tagged []models.TaggedToken) (*models.Tree, error) {
	root := models.NewTree(models.RootLabel)
	if len(tagged) == 0 {
		return root, nil
	}

	toks := make([]prosetag.Token, len(tagged))
	for i, t := range tagged {
		toks[i] = prosetag.Token{Text: t.Text, Tag: t.Tag}
	}

	p.mu.Lock()
	spans := chunk.Locate(toks, p.rx)
	p.mu.Unlock()

	var types map[string]string
	if !p.binary && len(spans) > 0 {
		var err error
		types, err = entityTypes(tagged)
		if err != nil {
			return nil, err
		}
	}

	next := 0
	for _, span := range spans {
		start, end := span[0], span[1]
		for ; next < start; next++ {
			root.Children = append(root.Children, models.NewLeaf(tagged[next]))
		}

		entity := models.NewTree(UntypedLabel)
		words := make([]string, 0, end-start)
		for _, t := range tagged[start:end] {
			entity.Children = append(entity.Children, models.NewLeaf(t))
			words = append(words, t.Text)
		}
		entity.Label = spanLabel(words, types)
		root.Children = append(root.Children, entity)
		next = end
	}
	for ; next < len(tagged); next++ {
		root.Children = append(root.Children, models.NewLeaf(tagged[next]))
	}

	return root, nil
}

// spanLabel returns the type of the longest run of words the extractor
// recognised, preferring the leftmost among equals. The chunker's spans can
// be wider than the extractor's, e.g. "Macron in Berlin".
func spanLabel(words []string, types map[string]string) string {
	for n := len(words); n > 0; n-- {
		for i := 0; i+n <= len(words); i++ {
			if label, ok := types[strings.Join(words[i:i+n], " ")]; ok {
				return label
			}
		}
	}
	return UntypedLabel
}

// entityTypes runs the v2 extractor over the tokens and maps each entity's
// text to its label.
func entityTypes(tagged []models.TaggedToken) (map[string]string, error) {
	words := make([]string, len(tagged))
	for i, t := range tagged {
		words[i] = t.Text
	}

	doc, err := prose.NewDocument(strings.Join(words, " "), prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	types := make(map[string]string)
	for _, ent := range doc.Entities() {
		types[strings.Join(strings.Fields(ent.Text), " ")] = ent.Label
	}
	return types, nil
}
