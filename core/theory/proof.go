package theory

import (
	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/tree"
)

// Step is one proof step. Tree is nil while the step's formula has not been
// parsed (or failed to parse); steps without a tree are skipped by every
// traversal.
type Step struct {
	Ref     string
	Uses    string // label of the justifying statement, if known
	Formula string
	Line    int
	Tree    *tree.Node
}

// Proof is an ordered sequence of proof steps, the theory's outermost scope,
// and the working-variable kind registry of the proof's grammar session.
//
// A proof instance is not safe for concurrent use; callers serialize access
// per proof.
type Proof struct {
	Theorem     string
	Steps       []*Step
	Outermost   *Scope
	WorkingVars *grammar.WorkingVarContext
}
