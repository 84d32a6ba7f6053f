// Package tree defines the typed parse trees shared by the parsing pipeline
// and the working-variable elimination engine.
//
// A node is an explicit tagged variant - Internal or Leaf - so traversal
// never relies on runtime type inspection. Trees are owned exclusively by
// the statement or proof step that holds them; substitution replaces them
// wholesale, it never mutates a tree in place.
package tree

import (
	"strings"

	"github.com/verity-lang/verity/core/grammar"
)

// NodeType tags the two parse-tree variants.
type NodeType uint8

const (
	// Internal is a rule-labeled node with children.
	Internal NodeType = iota
	// Leaf carries a single formula token.
	Leaf
)

// Node is one parse-tree node. Internal nodes carry RuleLabel, Kind and
// Children; leaves carry Token. The unused fields of the other variant stay
// zero.
type Node struct {
	Type      NodeType
	RuleLabel string
	Kind      grammar.Kind
	Children  []*Node
	Token     grammar.Token
}

// NewInternal creates a rule-labeled internal node.
func NewInternal(label string, kind grammar.Kind, children []*Node) *Node {
	return &Node{Type: Internal, RuleLabel: label, Kind: kind, Children: children}
}

// NewLeaf creates a token-carrying leaf node.
func NewLeaf(tok grammar.Token) *Node {
	return &Node{Type: Leaf, Token: tok}
}

// Walk visits the tree depth-first, parents before children, children left
// to right. Returning false from visit skips the node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(visit)
	}
}

// Fold reduces a tree bottom-up: leaf computes a leaf's value, internal
// combines a node's label, kind and already-folded children.
func Fold[T any](n *Node, leaf func(grammar.Token) T, internal func(label string, kind grammar.Kind, children []T) T) T {
	if n.Type == Leaf {
		return leaf(n.Token)
	}
	kids := make([]T, len(n.Children))
	for i, c := range n.Children {
		kids[i] = Fold(c, leaf, internal)
	}
	return internal(n.RuleLabel, n.Kind, kids)
}

// Equal reports structural equality: same variant tags, rule labels, child
// structure, and leaf token text, kind, class and positions.
func (n *Node) Equal(o *Node) bool {
	if n == nil || o == nil {
		return n == o
	}
	if n.Type != o.Type {
		return false
	}
	if n.Type == Leaf {
		return n.Token == o.Token
	}
	if n.RuleLabel != o.RuleLabel || n.Kind != o.Kind || len(n.Children) != len(o.Children) {
		return false
	}
	for i := range n.Children {
		if !n.Children[i].Equal(o.Children[i]) {
			return false
		}
	}
	return true
}

// String renders the tree back to its space-joined formula text.
func (n *Node) String() string {
	return Fold(n,
		func(tok grammar.Token) string { return tok.Text },
		func(_ string, _ grammar.Kind, kids []string) string { return strings.Join(kids, " ") },
	)
}
