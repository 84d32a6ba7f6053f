package parser

import (
	"golang.org/x/crypto/blake2b"

	"github.com/verity-lang/verity/core/tree"
)

// Cache memoizes formula-text to parse-tree within one batch session. Many
// statements share identical hypothesis formulas, so a hit returns the
// cached tree directly with no re-parse.
//
// Entries are keyed by a blake2b digest of the formula text, so the cache
// does not retain the formula strings themselves. Only successful parses are
// cached; the cache size is the number of distinct formulas that parsed.
//
// A cache is scoped to one grammar session. Grammar and lexer state evolve
// monotonically within a session, never retroactively, so a key resolves to
// the same tree for the whole batch.
type Cache struct {
	entries map[[32]byte]*tree.Node
}

// NewCache creates an empty session cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[[32]byte]*tree.Node)}
}

// Get returns the cached tree for a formula text.
func (c *Cache) Get(formula string) (*tree.Node, bool) {
	n, ok := c.entries[blake2b.Sum256([]byte(formula))]
	return n, ok
}

// Put caches the tree for a formula text.
func (c *Cache) Put(formula string, n *tree.Node) {
	c.entries[blake2b.Sum256([]byte(formula))] = n
}

// Len returns the number of distinct formulas cached.
func (c *Cache) Len() int {
	return len(c.entries)
}
