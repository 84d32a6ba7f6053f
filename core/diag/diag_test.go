package diag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verity-lang/verity/core/diag"
	"github.com/verity-lang/verity/core/grammar"
)

func TestAppend(t *testing.T) {
	var list []diag.Diagnostic
	rng := grammar.Range{
		Start: grammar.Position{Line: 2, Column: 6, Offset: 5},
		End:   grammar.Position{Line: 2, Column: 9, Offset: 8},
	}

	diag.Append(&list, "no unused variable of kind wff", rng, diag.CodeNoUnusedVar)
	diag.Append(&list, "no unused variable of kind wff", rng, diag.CodeNoUnusedVar)

	require.Len(t, list, 2)
	d := list[0]
	assert.Equal(t, "no unused variable of kind wff", d.Message)
	assert.Equal(t, rng, d.Range)
	assert.Equal(t, diag.CodeNoUnusedVar, d.Code)
	assert.Equal(t, diag.SeverityWarning, d.Severity)
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "warning", diag.SeverityWarning.String())
	assert.Equal(t, "error", diag.SeverityError.String())
}
