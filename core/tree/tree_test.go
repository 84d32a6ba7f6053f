package tree_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/tree"
)

func tok(text string, col int) grammar.Token {
	return grammar.Token{
		Text: text,
		Range: grammar.Range{
			Start: grammar.Position{Line: 1, Column: col, Offset: col - 1},
			End:   grammar.Position{Line: 1, Column: col + len(text), Offset: col - 1 + len(text)},
		},
	}
}

// implication builds the tree for "( ph -> ps )".
func implication() *tree.Node {
	return tree.NewInternal("wi", "wff", []*tree.Node{
		tree.NewLeaf(tok("(", 1)),
		tree.NewInternal("wph", "wff", []*tree.Node{tree.NewLeaf(tok("ph", 3))}),
		tree.NewLeaf(tok("->", 6)),
		tree.NewInternal("wps", "wff", []*tree.Node{tree.NewLeaf(tok("ps", 9))}),
		tree.NewLeaf(tok(")", 12)),
	})
}

func TestWalkOrder(t *testing.T) {
	var visited []string
	implication().Walk(func(n *tree.Node) bool {
		if n.Type == tree.Leaf {
			visited = append(visited, n.Token.Text)
		} else {
			visited = append(visited, n.RuleLabel)
		}
		return true
	})

	// Parents before children, children left to right.
	assert.Equal(t, []string{"wi", "(", "wph", "ph", "->", "wps", "ps", ")"}, visited)
}

func TestWalkSkipChildren(t *testing.T) {
	var visited []string
	implication().Walk(func(n *tree.Node) bool {
		if n.Type == tree.Internal {
			visited = append(visited, n.RuleLabel)
		}
		return n.RuleLabel == "wi"
	})

	assert.Equal(t, []string{"wi", "wph", "wps"}, visited)
}

func TestFoldString(t *testing.T) {
	assert.Equal(t, "( ph -> ps )", implication().String())
}

func TestFoldCountLeaves(t *testing.T) {
	n := tree.Fold(implication(),
		func(grammar.Token) int { return 1 },
		func(_ string, _ grammar.Kind, kids []int) int {
			sum := 0
			for _, k := range kids {
				sum += k
			}
			return sum
		},
	)
	assert.Equal(t, 5, n)
}

func TestEqual(t *testing.T) {
	a, b := implication(), implication()
	assert.True(t, a.Equal(b))
	assert.Empty(t, cmp.Diff(a, b))
}

func TestEqualDetectsDifferences(t *testing.T) {
	base := implication()

	relabeled := implication()
	relabeled.RuleLabel = "wb"
	assert.False(t, base.Equal(relabeled))

	moved := implication()
	moved.Children[0].Token.Range.Start.Column = 99
	assert.False(t, base.Equal(moved))

	pruned := implication()
	pruned.Children = pruned.Children[:4]
	assert.False(t, base.Equal(pruned))

	leaf := tree.NewLeaf(tok("ph", 1))
	assert.False(t, base.Equal(leaf))
}

func TestEqualNil(t *testing.T) {
	var a *tree.Node
	assert.True(t, a.Equal(nil))
	assert.False(t, implication().Equal(nil))
}
