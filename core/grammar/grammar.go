// Package grammar reconstructs executable grammars for an axiomatic
// formal-proof language from serializable rule descriptors.
//
// A grammar session owns a rule set and a lexer bound to a working-variable
// naming context. Sessions are never shared across execution contexts: the
// lexer's kind-assignment state mutates as formulas are scanned and must
// remain single-writer, so each side of a worker boundary rebuilds its own
// session from the same descriptors.
package grammar

import (
	"strings"

	"github.com/verity-lang/verity/core/invariant"
)

// RuleDescriptor is the serializable form of one grammar rule: a label, the
// kind the rule produces, and its right-hand-side symbol sequence. Symbols
// naming a declared theory variable become slots for subexpressions of that
// variable's kind; every other symbol is a literal constant.
type RuleDescriptor struct {
	Label  string   `yaml:"label"`
	Kind   Kind     `yaml:"kind"`
	Syntax []string `yaml:"syntax"`
}

// VarDescriptor is the serializable form of one declared theory variable:
// its token, its kind, and the label of the defining hypothesis that
// establishes the kind.
type VarDescriptor struct {
	Token    string `yaml:"token"`
	Kind     Kind   `yaml:"kind"`
	HypLabel string `yaml:"hyp"`
}

// Symbol is one compiled right-hand-side element: either a literal constant
// token or a slot for a subexpression of a kind.
type Symbol struct {
	Text string
	Kind Kind
	Sub  bool
}

// Rule is one compiled grammar rule.
type Rule struct {
	Label string
	Kind  Kind
	RHS   []Symbol
}

// Grammar is one executable grammar session: compiled rules indexed by kind
// (declaration order preserved), typecode aliases, and a lexer bound to a
// working-variable naming context.
type Grammar struct {
	byKind    map[Kind][]*Rule
	vars      map[string]VarDescriptor
	typecodes map[string]Kind
	wv        *WorkingVarContext
}

// Build reconstructs an executable grammar from serialized descriptors.
//
// For every declared variable a unit rule labeled with the variable's
// defining hypothesis is added ahead of the syntax rules of its kind, so a
// bare variable token parses as Internal{hyp, kind, [Leaf(token)]}. Rule
// order within a kind is declaration order, which makes parsing
// deterministic: two grammars built from the same descriptors yield
// structurally identical trees for the same formula.
func Build(rules []RuleDescriptor, vars []VarDescriptor, typecodes map[string]Kind, wv *WorkingVarContext) *Grammar {
	invariant.NotNil(wv, "working-variable context")

	g := &Grammar{
		byKind:    make(map[Kind][]*Rule),
		vars:      make(map[string]VarDescriptor, len(vars)),
		typecodes: make(map[string]Kind, len(typecodes)),
		wv:        wv,
	}
	for tc, k := range typecodes {
		g.typecodes[tc] = k
	}

	// Unit rules for variable hypotheses come first, in declaration order.
	for _, v := range vars {
		g.vars[v.Token] = v
		g.typecodes[string(v.Kind)] = v.Kind
		g.byKind[v.Kind] = append(g.byKind[v.Kind], &Rule{
			Label: v.HypLabel,
			Kind:  v.Kind,
			RHS:   []Symbol{{Text: v.Token}},
		})
	}

	for _, rd := range rules {
		g.typecodes[string(rd.Kind)] = rd.Kind
		rhs := make([]Symbol, 0, len(rd.Syntax))
		for _, sym := range rd.Syntax {
			if v, ok := g.vars[sym]; ok {
				rhs = append(rhs, Symbol{Text: sym, Kind: v.Kind, Sub: true})
				continue
			}
			rhs = append(rhs, Symbol{Text: sym})
		}
		g.byKind[rd.Kind] = append(g.byKind[rd.Kind], &Rule{Label: rd.Label, Kind: rd.Kind, RHS: rhs})
	}
	return g
}

// RulesFor returns the compiled rules producing the given kind, in
// declaration order.
func (g *Grammar) RulesFor(kind Kind) []*Rule {
	return g.byKind[kind]
}

// Typecode resolves a formula's leading token to the kind the rest of the
// formula must parse as. Kind names resolve to themselves; additional
// aliases (e.g. "|-" for provable wffs) come from the typecode table.
func (g *Grammar) Typecode(text string) (Kind, bool) {
	k, ok := g.typecodes[text]
	return k, ok
}

// WorkingVars returns the session's working-variable naming context.
func (g *Grammar) WorkingVars() *WorkingVarContext {
	return g.wv
}

// Lex splits a formula into classified tokens. Formulas are space-joined
// token sequences; the column of each token is its offset within the formula
// text, the line is supplied by the caller (the statement or proof step the
// formula belongs to).
//
// Working-variable tokens with no matching naming prefix lex with an empty
// kind; they never match any rule, so the formula fails to parse rather than
// the lexer failing.
func (g *Grammar) Lex(formula string, line int) []Token {
	toks := make([]Token, 0, 8)
	offset := 0
	for offset < len(formula) {
		if formula[offset] == ' ' {
			offset++
			continue
		}
		end := strings.IndexByte(formula[offset:], ' ')
		if end < 0 {
			end = len(formula)
		} else {
			end += offset
		}
		text := formula[offset:end]
		tok := Token{
			Text: text,
			Range: Range{
				Start: Position{Line: line, Column: offset + 1, Offset: offset},
				End:   Position{Line: line, Column: end + 1, Offset: end},
			},
		}
		switch {
		case IsWorkingVar(text):
			tok.Class = WorkingVar
			tok.Kind, _ = g.wv.observe(text)
		default:
			if v, ok := g.vars[text]; ok {
				tok.Class = Variable
				tok.Kind = v.Kind
			}
		}
		toks = append(toks, tok)
		offset = end
	}
	return toks
}
