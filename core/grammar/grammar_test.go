package grammar_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-lang/verity/core/grammar"
)

func testDescriptors() ([]grammar.RuleDescriptor, []grammar.VarDescriptor, map[string]grammar.Kind) {
	rules := []grammar.RuleDescriptor{
		{Label: "wn", Kind: "wff", Syntax: []string{"-.", "ph"}},
		{Label: "wi", Kind: "wff", Syntax: []string{"(", "ph", "->", "ps", ")"}},
	}
	vars := []grammar.VarDescriptor{
		{Token: "ph", Kind: "wff", HypLabel: "wph"},
		{Token: "ps", Kind: "wff", HypLabel: "wps"},
	}
	typecodes := map[string]grammar.Kind{"|-": "wff"}
	return rules, vars, typecodes
}

func TestBuildRuleOrder(t *testing.T) {
	rules, vars, typecodes := testDescriptors()
	g := grammar.Build(rules, vars, typecodes, grammar.NewWorkingVarContext(nil))

	wff := g.RulesFor("wff")
	require.Len(t, wff, 4)

	// Variable-hypothesis unit rules come first, in declaration order,
	// followed by syntax rules in declaration order.
	labels := make([]string, 0, len(wff))
	for _, r := range wff {
		labels = append(labels, r.Label)
	}
	assert.Equal(t, []string{"wph", "wps", "wn", "wi"}, labels)
}

func TestBuildSymbolSlots(t *testing.T) {
	rules, vars, typecodes := testDescriptors()
	g := grammar.Build(rules, vars, typecodes, grammar.NewWorkingVarContext(nil))

	wi := g.RulesFor("wff")[3]
	require.Equal(t, "wi", wi.Label)
	require.Len(t, wi.RHS, 5)

	// "(" and "->" and ")" are literals; "ph" and "ps" are slots of kind wff.
	assert.False(t, wi.RHS[0].Sub)
	assert.True(t, wi.RHS[1].Sub)
	assert.Equal(t, grammar.Kind("wff"), wi.RHS[1].Kind)
	assert.False(t, wi.RHS[2].Sub)
	assert.True(t, wi.RHS[3].Sub)
	assert.False(t, wi.RHS[4].Sub)
}

func TestTypecodes(t *testing.T) {
	rules, vars, typecodes := testDescriptors()
	g := grammar.Build(rules, vars, typecodes, grammar.NewWorkingVarContext(nil))

	k, ok := g.Typecode("|-")
	require.True(t, ok)
	assert.Equal(t, grammar.Kind("wff"), k)

	// Kind names resolve to themselves.
	k, ok = g.Typecode("wff")
	require.True(t, ok)
	assert.Equal(t, grammar.Kind("wff"), k)

	_, ok = g.Typecode("$e")
	assert.False(t, ok)
}

func TestLexClassification(t *testing.T) {
	rules, vars, typecodes := testDescriptors()
	wv := grammar.NewWorkingVarContext(map[string]grammar.Kind{"&W": "wff"})
	g := grammar.Build(rules, vars, typecodes, wv)

	toks := g.Lex("|- ( ph -> &W1 )", 3)
	require.Len(t, toks, 6)

	assert.Equal(t, grammar.Constant, toks[0].Class)
	assert.Equal(t, grammar.Constant, toks[1].Class)
	assert.Equal(t, grammar.Variable, toks[2].Class)
	assert.Equal(t, grammar.Kind("wff"), toks[2].Kind)
	assert.Equal(t, grammar.WorkingVar, toks[4].Class)
	assert.Equal(t, grammar.Kind("wff"), toks[4].Kind)
}

func TestLexPositions(t *testing.T) {
	rules, vars, typecodes := testDescriptors()
	g := grammar.Build(rules, vars, typecodes, grammar.NewWorkingVarContext(nil))

	toks := g.Lex("|- ph", 7)
	require.Len(t, toks, 2)

	assert.Equal(t, grammar.Position{Line: 7, Column: 1, Offset: 0}, toks[0].Range.Start)
	assert.Equal(t, grammar.Position{Line: 7, Column: 3, Offset: 2}, toks[0].Range.End)
	assert.Equal(t, grammar.Position{Line: 7, Column: 4, Offset: 3}, toks[1].Range.Start)
	assert.Equal(t, grammar.Position{Line: 7, Column: 6, Offset: 5}, toks[1].Range.End)
}

func TestLexSkipsRepeatedSpaces(t *testing.T) {
	rules, vars, typecodes := testDescriptors()
	g := grammar.Build(rules, vars, typecodes, grammar.NewWorkingVarContext(nil))

	toks := g.Lex("  |-   ph ", 1)
	require.Len(t, toks, 2)
	assert.Equal(t, "|-", toks[0].Text)
	assert.Equal(t, "ph", toks[1].Text)
	assert.Equal(t, 2, toks[0].Range.Start.Offset)
}

func TestWorkingVarContextFirstSeenOrder(t *testing.T) {
	wv := grammar.NewWorkingVarContext(map[string]grammar.Kind{"&W": "wff", "&S": "setvar"})
	rules, vars, typecodes := testDescriptors()
	g := grammar.Build(rules, vars, typecodes, wv)

	g.Lex("|- ( &W2 -> &W1 )", 1)
	g.Lex("|- ( &W1 -> &S1 )", 2)

	assert.Equal(t, []string{"&W2", "&W1", "&S1"}, wv.Seen())

	k, ok := wv.KindOf("&W2")
	require.True(t, ok)
	assert.Equal(t, grammar.Kind("wff"), k)

	k, ok = wv.KindOf("&S1")
	require.True(t, ok)
	assert.Equal(t, grammar.Kind("setvar"), k)

	// Unknown prefixes classify as working variables with no kind.
	_, ok = wv.KindOf("&X9")
	assert.False(t, ok)
}

func TestWorkingVarContextPrefixLookupWithoutRecording(t *testing.T) {
	wv := grammar.NewWorkingVarContext(map[string]grammar.Kind{"&W": "wff"})

	// KindOf on an unseen identifier answers from the prefix table but does
	// not record the identifier.
	k, ok := wv.KindOf("&W5")
	require.True(t, ok)
	assert.Equal(t, grammar.Kind("wff"), k)
	assert.Empty(t, wv.Seen())
}

func TestIsWorkingVar(t *testing.T) {
	assert.True(t, grammar.IsWorkingVar("&W1"))
	assert.False(t, grammar.IsWorkingVar("ph"))
	assert.False(t, grammar.IsWorkingVar("&"))
}
