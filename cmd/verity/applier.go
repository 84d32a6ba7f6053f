package main

import (
	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
	"github.com/verity-lang/verity/runtime/elim"
	"github.com/verity-lang/verity/runtime/parser"
)

// stepRewriter commits a substitution into the proof: each step's tree is
// replaced wholesale by a copy with working-variable leaves swapped for
// their replacement nodes, and the step's formula text is re-rendered from
// the new tree. When a shared formula cache is provided, the rewritten trees
// are cached under their new canonical formulas.
type stepRewriter struct{}

func (stepRewriter) Apply(p *theory.Proof, s *elim.Substitution, cache *parser.Cache) error {
	for _, st := range p.Steps {
		if st.Tree == nil {
			continue
		}
		st.Tree = substitute(st.Tree, s)
		// Keep the leading typecode token of the original formula text.
		typecode := leadingToken(st.Formula)
		if typecode != "" {
			st.Formula = typecode + " " + st.Tree.String()
		} else {
			st.Formula = st.Tree.String()
		}
		if cache != nil {
			cache.Put(st.Formula, st.Tree)
		}
	}
	return nil
}

// substitute returns a copy of the tree with every substituted
// working-variable leaf replaced by its replacement node. Unsubstituted
// leaves and all other nodes are copied structurally.
func substitute(n *tree.Node, s *elim.Substitution) *tree.Node {
	if n.Type == tree.Leaf {
		if n.Token.Class == grammar.WorkingVar {
			if repl, ok := s.Node(n.Token.Text); ok {
				return repl
			}
		}
		return tree.NewLeaf(n.Token)
	}
	children := make([]*tree.Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = substitute(c, s)
	}
	return tree.NewInternal(n.RuleLabel, n.Kind, children)
}

func leadingToken(formula string) string {
	start := 0
	for start < len(formula) && formula[start] == ' ' {
		start++
	}
	end := start
	for end < len(formula) && formula[end] != ' ' {
		end++
	}
	return formula[start:end]
}
