// Package elim implements working-variable elimination: once a proof is
// syntactically complete, every placeholder working variable is substituted
// with an unused theory variable of the same kind, and occurrences that
// cannot be substituted are reported as warning diagnostics.
//
// The engine is synchronous and single-threaded. It reads proof state it
// does not own and provides no internal locking; callers serialize access
// per proof.
package elim

import (
	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/invariant"
	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
)

// Occurrences holds every working-variable occurrence of a proof, grouped by
// identifier in first-encountered order. All occurrences are kept, not just
// the first: allocation failure is reported once per occurrence.
type Occurrences struct {
	order   []string
	byIdent map[string][]*tree.Node
}

// Collect walks every proof step's parse tree in step order, children left
// to right, and records each working-variable leaf under its identifier.
// Steps without a tree are skipped. The traversal order is deterministic and
// fixes allocation priority.
func Collect(p *theory.Proof) *Occurrences {
	invariant.NotNil(p, "proof")

	occ := &Occurrences{byIdent: make(map[string][]*tree.Node)}
	for _, st := range p.Steps {
		if st.Tree == nil {
			continue
		}
		st.Tree.Walk(func(n *tree.Node) bool {
			if n.Type == tree.Leaf && n.Token.Class == grammar.WorkingVar {
				ident := n.Token.Text
				if _, seen := occ.byIdent[ident]; !seen {
					occ.order = append(occ.order, ident)
				}
				occ.byIdent[ident] = append(occ.byIdent[ident], n)
			}
			return true
		})
	}
	return occ
}

// Idents returns the distinct identifiers in first-encountered order.
func (o *Occurrences) Idents() []string {
	return o.order
}

// Of returns every recorded occurrence of an identifier, in encounter order.
func (o *Occurrences) Of(ident string) []*tree.Node {
	return o.byIdent[ident]
}

// Empty reports whether the proof contains no working variables.
func (o *Occurrences) Empty() bool {
	return len(o.order) == 0
}

// UsedVars computes the theory variables already textually present in any
// step's parse tree, restricted to variables declared in the proof's
// outermost scope. This seeds the exclusion set so a substitute never
// collides with a variable the proof already uses.
func UsedVars(p *theory.Proof) map[string]bool {
	invariant.NotNil(p, "proof")

	used := make(map[string]bool)
	for _, st := range p.Steps {
		if st.Tree == nil {
			continue
		}
		st.Tree.Walk(func(n *tree.Node) bool {
			if n.Type == tree.Leaf {
				if _, declared := p.Outermost.KindOf(n.Token.Text); declared {
					used[n.Token.Text] = true
				}
			}
			return true
		})
	}
	return used
}
