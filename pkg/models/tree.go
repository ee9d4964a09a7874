package models

// RootLabel labels the top of every chunk tree.
const RootLabel = "S"

// Tree is a chunk tree. A node is either a leaf holding a tagged token or
// a labelled subtree.
type Tree struct {
	Label    string
	Leaf     *TaggedToken
	Children []*Tree
}

// NewTree returns a subtree with the given label and children.
func NewTree(label string, children ...*Tree) *Tree {
	return &Tree{Label: label, Children: children}
}

// NewLeaf wraps a tagged token as a tree leaf.
func NewLeaf(tok TaggedToken) *Tree {
	return &Tree{Leaf: &tok}
}

func (t *Tree) IsLeaf() bool {
	return t.Leaf != nil
}

// Leaves returns the tagged tokens under t in order.
func (t *Tree) Leaves() []TaggedToken {
	if t.IsLeaf() {
		return []TaggedToken{*t.Leaf}
	}
	var out []TaggedToken
	for _, c := range t.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Subtrees returns the direct children of t that are not leaves.
func (t *Tree) Subtrees() []*Tree {
	var out []*Tree
	for _, c := range t.Children {
		if !c.IsLeaf() {
			out = append(out, c)
		}
	}
	return out
}
