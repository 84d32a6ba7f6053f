package elim

import (
	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
)

// Allocate scans the scope's declared variables in declaration order and
// returns the first variable of the required kind not in the used set. The
// chosen variable is added to used immediately - a reservation that keeps a
// later working variable of the same kind from claiming it within the same
// pass.
func Allocate(kind grammar.Kind, scope *theory.Scope, used map[string]bool) (theory.TheoryVariable, bool) {
	for _, v := range scope.Variables() {
		if v.Kind != kind || used[v.Token] {
			continue
		}
		used[v.Token] = true
		return v, true
	}
	return theory.TheoryVariable{}, false
}

// replacement builds the node a working variable is substituted with, from
// the chosen variable's defining hypothesis: Internal{hyp label, kind,
// [Leaf(token)]}.
func replacement(v theory.TheoryVariable) *tree.Node {
	tok := grammar.Token{
		Text:  v.Token,
		Class: grammar.Variable,
		Kind:  v.Kind,
	}
	return tree.NewInternal(v.HypLabel, v.Kind, []*tree.Node{tree.NewLeaf(tok)})
}
