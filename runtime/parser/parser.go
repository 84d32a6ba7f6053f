// Package parser parses formulas of an axiomatic formal-proof language
// against a reconstructed grammar and runs the memoized batch parse that
// builds a parse tree for every labeled formula of a theory.
package parser

import (
	"slices"

	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/invariant"
	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
)

// Parse parses one formula - a space-joined token sequence whose leading
// token is a typecode - against a grammar session. line anchors token
// positions at the formula's source line.
//
// A syntax failure is not an error: it is reported as ok == false and the
// caller treats the formula as having no tree. Parsing the same formula
// against grammars built from the same descriptors yields structurally
// identical trees, whichever execution context built the grammar.
func Parse(formula string, line int, g *grammar.Grammar) (*tree.Node, bool) {
	invariant.NotNil(g, "grammar")

	toks := g.Lex(formula, line)
	if len(toks) == 0 {
		return nil, false
	}
	kind, ok := g.Typecode(toks[0].Text)
	if !ok {
		return nil, false
	}
	m := &matcher{g: g, toks: toks[1:], active: make(map[frame]bool)}
	var root *tree.Node
	if !m.parseKind(0, kind, func(node *tree.Node, after int) bool {
		if after != len(m.toks) {
			return false
		}
		root = node
		return true
	}) {
		return nil, false
	}
	return root, true
}

// matcher is one backtracking descent over a lexed formula.
//
// active holds the (kind, position) frames on the current descent path. A
// rule whose expansion re-enters its own kind without consuming a token would
// otherwise recurse without bound; the guard fails that branch as a plain
// non-match, so a left-recursive rule can never derive anything but also
// never crashes the parse.
type matcher struct {
	g      *grammar.Grammar
	toks   []grammar.Token
	active map[frame]bool
}

type frame struct {
	kind grammar.Kind
	pos  int
}

// parseKind offers subexpressions of the given kind starting at pos to
// accept, together with the position past them, until accept keeps one.
//
// Working-variable tokens of the right kind parse directly as leaves; they
// have no grammar rule because they are placeholders for undetermined
// subexpressions. Rules are tried in declaration order, but a match is only
// committed once the surrounding context accepts it: a rule whose expansion
// is a prefix of another's does not shadow the longer rule.
func (m *matcher) parseKind(pos int, kind grammar.Kind, accept func(*tree.Node, int) bool) bool {
	f := frame{kind: kind, pos: pos}
	if m.active[f] {
		return false
	}
	m.active[f] = true
	defer delete(m.active, f)

	if pos < len(m.toks) && m.toks[pos].Class == grammar.WorkingVar && m.toks[pos].Kind == kind {
		if accept(tree.NewLeaf(m.toks[pos]), pos+1) {
			return true
		}
	}
	for _, r := range m.g.RulesFor(kind) {
		if m.matchRule(pos, r, accept) {
			return true
		}
	}
	return false
}

// matchRule matches one rule's right-hand side symbol by symbol: literal
// symbols must equal the next token, kind slots recurse. A failure anywhere
// along the expansion, including in accept once the whole rule has matched,
// rewinds to the most recent slot with untried alternatives.
func (m *matcher) matchRule(pos int, r *grammar.Rule, accept func(*tree.Node, int) bool) bool {
	children := make([]*tree.Node, len(r.RHS))
	var step func(i, at int) bool
	step = func(i, at int) bool {
		if i == len(r.RHS) {
			return accept(tree.NewInternal(r.Label, r.Kind, slices.Clone(children)), at)
		}
		sym := r.RHS[i]
		if sym.Sub {
			return m.parseKind(at, sym.Kind, func(node *tree.Node, after int) bool {
				children[i] = node
				return step(i+1, after)
			})
		}
		if at >= len(m.toks) || m.toks[at].Text != sym.Text || m.toks[at].Class == grammar.WorkingVar {
			return false
		}
		children[i] = tree.NewLeaf(m.toks[at])
		return step(i+1, at+1)
	}
	return step(0, pos)
}

// ParseSteps attaches a parse tree to every proof step whose formula parses
// against the given grammar session. Steps whose formula does not parse keep
// a nil tree; downstream traversals skip them.
func ParseSteps(p *theory.Proof, g *grammar.Grammar) {
	invariant.NotNil(p, "proof")
	for _, st := range p.Steps {
		if node, ok := Parse(st.Formula, st.Line, g); ok {
			st.Tree = node
		}
	}
}
