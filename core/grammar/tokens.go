package grammar

// Kind is a grammatical category of the theory's grammar, e.g. "wff",
// "setvar" or "class". Every variable and every parsed subexpression carries
// exactly one kind.
type Kind string

// TokenClass classifies a formula token after lexing.
type TokenClass uint8

const (
	// Constant is a fixed grammar symbol such as "(" or "->".
	Constant TokenClass = iota
	// Variable is a theory variable declared in the outermost scope.
	Variable
	// WorkingVar is a placeholder variable (e.g. "&W1") introduced during
	// interactive proof-step derivation.
	WorkingVar
)

// String returns a string representation of the token class.
func (c TokenClass) String() string {
	switch c {
	case Constant:
		return "CONSTANT"
	case Variable:
		return "VARIABLE"
	case WorkingVar:
		return "WORKING_VAR"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in a source document.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset within the formula text
}

// Range covers the half-open span [Start, End) of a token or subexpression.
type Range struct {
	Start Position
	End   Position
}

// Token represents one lexed formula token.
type Token struct {
	Text  string
	Class TokenClass
	Kind  Kind // kind of Variable/WorkingVar tokens; empty for constants
	Range Range
}

// String returns the token text.
func (t Token) String() string {
	return t.Text
}
