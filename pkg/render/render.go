// Package render produces the canonical text forms returned to callers.
//
// The forms follow the conventions callers of this service already parse:
// token lists and tagged-token lists are written as Python list and tuple
// literals, and chunk trees use the bracketed notation with token/TAG
// leaves, broken over several lines once they exceed Margin columns.
package render

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/getzep/zep-ner/pkg/models"
)

// Margin is the width above which a tree is printed over several lines.
const Margin = 70

// Quote returns s as a Python string literal.
func Quote(s string) string {
	quote := '\''
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		quote = '"'
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteRune(quote)
	for _, r := range s {
		switch {
		case r == quote || r == '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r < ' ' || r == 0x7f:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r < 0x7f || unicode.IsPrint(r):
			b.WriteRune(r)
		case r <= 0xff:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	b.WriteRune(quote)
	return b.String()
}

// Tokens renders a token sequence, e.g. ['Barack', 'Obama'].
func Tokens(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = Quote(t)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tagged renders a tagged-token sequence, e.g. [('Barack', 'NNP')].
func Tagged(tagged []models.TaggedToken) string {
	parts := make([]string, len(tagged))
	for i, t := range tagged {
		parts[i] = "(" + Quote(t.Text) + ", " + Quote(t.Tag) + ")"
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Tree renders a chunk tree. A nil tree renders as an empty root.
func Tree(t *models.Tree) string {
	if t == nil {
		t = models.NewTree(models.RootLabel)
	}
	return pformat(t, 0)
}

func pformat(t *models.Tree, indent int) string {
	if t.IsLeaf() {
		return leaf(t.Leaf)
	}

	s := flat(t)
	if utf8.RuneCountInString(s)+indent < Margin {
		return s
	}

	var b strings.Builder
	b.WriteString("(" + t.Label)
	pad := strings.Repeat(" ", indent+2)
	for _, c := range t.Children {
		b.WriteString("\n" + pad)
		b.WriteString(pformat(c, indent+2))
	}
	b.WriteString(")")
	return b.String()
}

func flat(t *models.Tree) string {
	if t.IsLeaf() {
		return leaf(t.Leaf)
	}
	parts := make([]string, len(t.Children))
	for i, c := range t.Children {
		parts[i] = flat(c)
	}
	return "(" + t.Label + " " + strings.Join(parts, " ") + ")"
}

func leaf(tok *models.TaggedToken) string {
	return tok.Text + "/" + tok.Tag
}
