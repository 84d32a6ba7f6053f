// Package theory models the loaded axiomatic theory and its proofs: an
// insertion-ordered collection of labeled statements, the outermost variable
// scope, and proof steps with optional parse trees.
//
// Iteration order of statements is insertion order. That ordering is
// semantically significant - it drives progress indices during batch parsing
// and, through the scope's declaration order, which theory variable a working
// variable is substituted with.
package theory

import (
	"fmt"

	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/tree"
)

// Statement is one labeled theory statement (axiom, theorem or hypothesis).
// Tree is nil until the batch parse assigns one.
type Statement struct {
	Label    string
	Formula  string
	Line     int
	Parsable bool
	Tree     *tree.Node
}

// LabeledFormula is one entry of the ordered batch-parse input.
type LabeledFormula struct {
	Label   string
	Formula string
	Line    int
}

// Theory is the loaded theory: statements in insertion order plus the
// serializable grammar descriptors a parsing session is rebuilt from.
type Theory struct {
	Name string

	Rules              []grammar.RuleDescriptor
	Vars               []grammar.VarDescriptor
	Typecodes          map[string]grammar.Kind
	WorkingVarPrefixes map[string]grammar.Kind

	// TreesComplete is set once a batch parse has merged its result map.
	TreesComplete bool

	order   []string
	byLabel map[string]*Statement
}

// New creates an empty theory.
func New(name string) *Theory {
	return &Theory{
		Name:               name,
		Typecodes:          make(map[string]grammar.Kind),
		WorkingVarPrefixes: make(map[string]grammar.Kind),
		byLabel:            make(map[string]*Statement),
	}
}

// Add appends a statement. Labels must be unique.
func (t *Theory) Add(st *Statement) error {
	if _, dup := t.byLabel[st.Label]; dup {
		return fmt.Errorf("duplicate statement label %q", st.Label)
	}
	t.order = append(t.order, st.Label)
	t.byLabel[st.Label] = st
	return nil
}

// Statement returns the statement with the given label.
func (t *Theory) Statement(label string) (*Statement, bool) {
	st, ok := t.byLabel[label]
	return st, ok
}

// Labels returns all statement labels in insertion order.
func (t *Theory) Labels() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// Len returns the number of statements.
func (t *Theory) Len() int {
	return len(t.order)
}

// ParsableFormulas returns the ordered label-to-formula batch input,
// restricted to statements selected as parsable.
func (t *Theory) ParsableFormulas() []LabeledFormula {
	out := make([]LabeledFormula, 0, len(t.order))
	for _, label := range t.order {
		st := t.byLabel[label]
		if !st.Parsable {
			continue
		}
		out = append(out, LabeledFormula{Label: st.Label, Formula: st.Formula, Line: st.Line})
	}
	return out
}

// Merge assigns each parsed tree to its label's statement and sets
// TreesComplete. Labels with no corresponding statement are skipped; that
// inconsistency should not occur under normal invariants and produces no
// diagnostic.
func (t *Theory) Merge(result map[string]*tree.Node) {
	for label, node := range result {
		st, ok := t.byLabel[label]
		if !ok {
			continue
		}
		st.Tree = node
	}
	t.TreesComplete = true
}

// Grammar builds a fresh grammar session for this theory, bound to the given
// working-variable context. Pass a new context per session; sessions must
// not share lexer state.
func (t *Theory) Grammar(wv *grammar.WorkingVarContext) *grammar.Grammar {
	return grammar.Build(t.Rules, t.Vars, t.Typecodes, wv)
}

// Scope returns the theory's outermost scope: every declared variable in
// declaration order.
func (t *Theory) Scope() *Scope {
	return NewScope(t.Vars)
}

// TheoryVariable is a declared variable of the formal theory together with
// its defining hypothesis.
type TheoryVariable struct {
	Token    string
	Kind     grammar.Kind
	HypLabel string
}

// Scope holds declared theory variables in declaration order.
type Scope struct {
	order []TheoryVariable
	byTok map[string]int
}

// NewScope builds a scope from variable descriptors, preserving declaration
// order.
func NewScope(vars []grammar.VarDescriptor) *Scope {
	s := &Scope{byTok: make(map[string]int, len(vars))}
	for _, v := range vars {
		if _, dup := s.byTok[v.Token]; dup {
			continue
		}
		s.byTok[v.Token] = len(s.order)
		s.order = append(s.order, TheoryVariable{Token: v.Token, Kind: v.Kind, HypLabel: v.HypLabel})
	}
	return s
}

// Variables returns the declared variables in declaration order.
func (s *Scope) Variables() []TheoryVariable {
	return s.order
}

// KindOf returns the kind of a declared variable token.
func (s *Scope) KindOf(token string) (grammar.Kind, bool) {
	i, ok := s.byTok[token]
	if !ok {
		return "", false
	}
	return s.order[i].Kind, true
}

// Hypothesis returns the variable with its defining hypothesis for a
// declared token.
func (s *Scope) Hypothesis(token string) (TheoryVariable, bool) {
	i, ok := s.byTok[token]
	if !ok {
		return TheoryVariable{}, false
	}
	return s.order[i], true
}
