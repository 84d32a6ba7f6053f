package elim

import (
	"fmt"

	"github.com/verity-lang/verity/core/diag"
	"github.com/verity-lang/verity/core/invariant"
	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
	"github.com/verity-lang/verity/runtime/parser"
)

// Outcome is the terminal state of one elimination pass.
type Outcome uint8

const (
	// OutcomeEmpty: the proof contains no working variables; nothing to do.
	OutcomeEmpty Outcome = iota
	// OutcomeResolved: every working variable was substituted.
	OutcomeResolved
	// OutcomePartial: some working variables were substituted, the rest are
	// flagged with diagnostics. A failed allocation is terminal for that
	// identifier within the pass; there is no retry.
	OutcomePartial
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeEmpty:
		return "empty"
	case OutcomeResolved:
		return "resolved"
	case OutcomePartial:
		return "partial"
	default:
		return "unknown"
	}
}

// Substitution maps working-variable identifiers to their replacement nodes,
// preserving allocation order. Within one pass the mapping is injective: no
// theory variable appears as the replacement of two identifiers.
type Substitution struct {
	order []string
	nodes map[string]*tree.Node
}

func newSubstitution() *Substitution {
	return &Substitution{nodes: make(map[string]*tree.Node)}
}

func (s *Substitution) put(ident string, n *tree.Node) {
	if _, dup := s.nodes[ident]; !dup {
		s.order = append(s.order, ident)
	}
	s.nodes[ident] = n
}

// Idents returns the substituted identifiers in allocation order.
func (s *Substitution) Idents() []string {
	return s.order
}

// Node returns the replacement node for an identifier.
func (s *Substitution) Node(ident string) (*tree.Node, bool) {
	n, ok := s.nodes[ident]
	return n, ok
}

// Len returns the number of substituted identifiers.
func (s *Substitution) Len() int {
	return len(s.order)
}

// Empty reports whether no identifier was substituted.
func (s *Substitution) Empty() bool {
	return len(s.order) == 0
}

// Result is the outcome of one elimination pass: the substitution, the
// diagnostics for unallocable occurrences, and the terminal state.
type Result struct {
	Substitution *Substitution
	Diagnostics  []diag.Diagnostic
	Outcome      Outcome
}

// Applier commits a substitution into a proof's steps and formulas. It is an
// external collaborator: the engine builds substitutions, the applier
// rewrites trees. The optional cache lets the applier keep canonical
// formulas consistent with the rewritten trees; the engine never touches it.
type Applier interface {
	Apply(p *theory.Proof, s *Substitution, cache *parser.Cache) error
}

// Check builds the substitution and diagnostics for a proof without applying
// anything. Upstream proof unification uses this to decide whether a proof
// is realizable.
//
// For each working variable in first-encountered order, the variable's kind
// comes from the proof's working-variable registry and the first unused
// declaration-order theory variable of that kind is reserved for it. When no
// such variable exists, one warning diagnostic is emitted per recorded
// occurrence - anchored at that occurrence's exact source range - and the
// identifier stays out of the substitution. Processing always continues with
// the remaining identifiers.
func Check(p *theory.Proof) *Result {
	invariant.NotNil(p, "proof")

	res := &Result{Substitution: newSubstitution()}
	occ := Collect(p)
	if occ.Empty() {
		return res
	}

	used := UsedVars(p)
	taken := make(map[string]bool)
	for _, ident := range occ.Idents() {
		kind, known := p.WorkingVars.KindOf(ident)
		if !known {
			// Occurrence tokens were classified by this same registry, so an
			// unknown identifier cannot appear in a parsed tree.
			continue
		}
		v, ok := Allocate(kind, p.Outermost, used)
		if !ok {
			msg := fmt.Sprintf("no unused variable of kind %s", kind)
			for _, leaf := range occ.Of(ident) {
				diag.Append(&res.Diagnostics, msg, leaf.Token.Range, diag.CodeNoUnusedVar)
			}
			continue
		}
		invariant.Invariant(!taken[v.Token], "theory variable %s allocated twice in one pass", v.Token)
		taken[v.Token] = true
		res.Substitution.put(ident, replacement(v))
	}

	if res.Substitution.Len() == len(occ.Idents()) {
		res.Outcome = OutcomeResolved
	} else {
		res.Outcome = OutcomePartial
	}
	return res
}

// Apply builds the substitution exactly as Check does and, if it is
// non-empty, hands it to the applier together with the proof and the
// optional shared formula cache.
func Apply(p *theory.Proof, a Applier, cache *parser.Cache) (*Result, error) {
	res := Check(p)
	if res.Substitution.Empty() || a == nil {
		return res, nil
	}
	if err := a.Apply(p, res.Substitution, cache); err != nil {
		return res, fmt.Errorf("applying substitution: %w", err)
	}
	return res, nil
}
