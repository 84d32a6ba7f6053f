package parser

import (
	"fmt"

	"github.com/verity-lang/verity/core/grammar"
	"github.com/verity-lang/verity/core/invariant"
	"github.com/verity-lang/verity/core/theory"
	"github.com/verity-lang/verity/core/tree"
)

// Reporter receives advisory progress and log callbacks during a batch
// parse. Callbacks arrive in order; none of them affects the result.
type Reporter interface {
	Progress(index, count int)
	Log(text string)
}

// NopReporter discards all callbacks.
type NopReporter struct{}

func (NopReporter) Progress(index, count int) {}
func (NopReporter) Log(text string)           {}

// ParseAll parses every entry in order against one grammar session, with a
// session-scoped cache keyed by formula text. After each entry it reports
// progress as (index, count); after the full pass it logs the result-map
// size and the cache size.
//
// The result maps label to parse tree and contains only labels whose formula
// parsed; unparsable formulas are silently omitted and never abort the
// batch.
func ParseAll(entries []theory.LabeledFormula, g *grammar.Grammar, r Reporter) map[string]*tree.Node {
	invariant.NotNil(g, "grammar")
	if r == nil {
		r = NopReporter{}
	}

	result := make(map[string]*tree.Node, len(entries))
	cache := NewCache()
	count := len(entries)
	for i, e := range entries {
		node, hit := cache.Get(e.Formula)
		if !hit {
			if parsed, ok := Parse(e.Formula, e.Line, g); ok {
				cache.Put(e.Formula, parsed)
				node = parsed
			}
		}
		if node != nil {
			result[e.Label] = node
		}
		r.Progress(i, count)
	}
	r.Log(fmt.Sprintf("parsed %d of %d formulas", len(result), count))
	r.Log(fmt.Sprintf("%d distinct formulas cached", cache.Len()))
	return result
}
