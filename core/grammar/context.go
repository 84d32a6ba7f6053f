package grammar

// WorkingVarContext is the working-variable naming context of one grammar
// session. It maps naming prefixes (e.g. "&W") to kinds and records the kind
// of every working-variable identifier the lexer encounters, in first-seen
// order. The recorded kind of an identifier never changes retroactively.
//
// The context is single-writer: it is bound to exactly one grammar session
// and must never be shared across execution contexts. Worker-side sessions
// reconstruct their own context from the same prefix table.
type WorkingVarContext struct {
	prefixes map[string]Kind
	seen     map[string]Kind
	order    []string
}

// NewWorkingVarContext creates a context from a prefix table. A token is
// recognized as a working variable when it starts with "&"; its kind is the
// kind of the longest matching prefix.
func NewWorkingVarContext(prefixes map[string]Kind) *WorkingVarContext {
	c := &WorkingVarContext{
		prefixes: make(map[string]Kind, len(prefixes)),
		seen:     make(map[string]Kind),
	}
	for p, k := range prefixes {
		c.prefixes[p] = k
	}
	return c
}

// Prefixes returns a copy of the prefix table, for rebuilding an equivalent
// context on the other side of a worker boundary.
func (c *WorkingVarContext) Prefixes() map[string]Kind {
	out := make(map[string]Kind, len(c.prefixes))
	for p, k := range c.prefixes {
		out[p] = k
	}
	return out
}

// IsWorkingVar reports whether text has the shape of a working variable.
func IsWorkingVar(text string) bool {
	return len(text) > 1 && text[0] == '&'
}

// observe classifies a working-variable identifier and records its kind on
// first sight. Returns the identifier's kind, or false when no prefix
// matches.
func (c *WorkingVarContext) observe(ident string) (Kind, bool) {
	if k, ok := c.seen[ident]; ok {
		return k, true
	}
	best := ""
	for p := range c.prefixes {
		if len(p) > len(best) && len(ident) >= len(p) && ident[:len(p)] == p {
			best = p
		}
	}
	if best == "" {
		return "", false
	}
	k := c.prefixes[best]
	c.seen[ident] = k
	c.order = append(c.order, ident)
	return k, true
}

// KindOf returns the kind of a working-variable identifier: the recorded
// kind if the identifier has been seen, otherwise the kind implied by its
// naming prefix.
func (c *WorkingVarContext) KindOf(ident string) (Kind, bool) {
	if k, ok := c.seen[ident]; ok {
		return k, true
	}
	best := ""
	for p := range c.prefixes {
		if len(p) > len(best) && len(ident) >= len(p) && ident[:len(p)] == p {
			best = p
		}
	}
	if best == "" {
		return "", false
	}
	return c.prefixes[best], true
}

// Seen returns the working-variable identifiers recorded so far, in
// first-seen order.
func (c *WorkingVarContext) Seen() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}
