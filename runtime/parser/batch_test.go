package parser_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
	"github.com/verity-lang/verity/runtime/parser"
)

// recordingReporter captures the callback stream for assertions.
type recordingReporter struct {
	progress [][2]int
	logs     []string
}

func (r *recordingReporter) Progress(index, count int) {
	r.progress = append(r.progress, [2]int{index, count})
}

func (r *recordingReporter) Log(text string) {
	r.logs = append(r.logs, text)
}

func TestParseAllResultAndCacheSizes(t *testing.T) {
	g := propositionalGrammar()

	// Five entries, one unparsable, and two sharing the same hypothesis
	// formula: four result entries, three distinct cached formulas.
	entries := []theory.LabeledFormula{
		{Label: "a.1", Formula: "|- ( ph -> ps )", Line: 1},
		{Label: "a.2", Formula: "|- ( ph -> ps )", Line: 2},
		{Label: "a", Formula: "|- ps", Line: 3},
		{Label: "broken", Formula: "|- ( ph", Line: 4},
		{Label: "b", Formula: "|- -. ph", Line: 5},
	}

	rep := &recordingReporter{}
	result := parser.ParseAll(entries, g, rep)

	require.Len(t, result, 4)
	assert.Contains(t, result, "a.1")
	assert.Contains(t, result, "a.2")
	assert.NotContains(t, result, "broken")

	// Shared formula text means the cached tree is reused directly.
	assert.Same(t, result["a.1"], result["a.2"])

	assert.Equal(t, [][2]int{{0, 5}, {1, 5}, {2, 5}, {3, 5}, {4, 5}}, rep.progress)
	require.Len(t, rep.logs, 2)
	assert.Equal(t, "parsed 4 of 5 formulas", rep.logs[0])
	assert.Equal(t, "3 distinct formulas cached", rep.logs[1])
}

func TestParseAllNilReporter(t *testing.T) {
	g := propositionalGrammar()
	entries := []theory.LabeledFormula{{Label: "a", Formula: "|- ph", Line: 1}}

	result := parser.ParseAll(entries, g, nil)
	require.Len(t, result, 1)
}

func TestParseAllEmptyBatch(t *testing.T) {
	rep := &recordingReporter{}
	result := parser.ParseAll(nil, propositionalGrammar(), rep)

	assert.Empty(t, result)
	assert.Empty(t, rep.progress)
	assert.Equal(t, []string{"parsed 0 of 0 formulas", "0 distinct formulas cached"}, rep.logs)
}

func TestParseAllUnparsableFormulaNotCached(t *testing.T) {
	g := propositionalGrammar()
	entries := make([]theory.LabeledFormula, 0, 4)
	for i := 0; i < 4; i++ {
		entries = append(entries, theory.LabeledFormula{
			Label:   fmt.Sprintf("bad.%d", i),
			Formula: "|- ( ph",
			Line:    i + 1,
		})
	}

	rep := &recordingReporter{}
	result := parser.ParseAll(entries, g, rep)

	assert.Empty(t, result)
	assert.Equal(t, "0 distinct formulas cached", rep.logs[1])
}

func TestCacheDistinctFormulas(t *testing.T) {
	c := parser.NewCache()
	assert.Equal(t, 0, c.Len())

	n := tree.NewInternal("wi", "wff", nil)
	c.Put("|- ( ph -> ps )", n)
	c.Put("|- ( ph -> ps )", n)
	c.Put("|- ph", tree.NewInternal("wph", "wff", nil))

	assert.Equal(t, 2, c.Len())

	got, ok := c.Get("|- ( ph -> ps )")
	require.True(t, ok)
	assert.Same(t, n, got)

	_, ok = c.Get("|- ps")
	assert.False(t, ok)
}
