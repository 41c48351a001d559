package diffcalc_test

import (
	"strings"
	"testing"

	"github.com/njchilds90/diffcalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// §9 design note: a pathological 10^4-deep chain must not overflow the
// stack or otherwise fail structurally.
func TestParse_PathologicallyDeepChain(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("x")
	const depth = 10000
	for i := 0; i < depth; i++ {
		sb.WriteString("+1")
	}
	expr, err := diffcalc.ParseExpression(sb.String(), diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	require.NoError(t, expr.Verify())

	slot, err := expr.Variable("x")
	require.NoError(t, err)
	expr.Vars.SetValue(slot, 0)
	v, err := diffcalc.Evaluate(expr)
	require.NoError(t, err)
	assert.InDelta(t, float64(depth), v, 1e-6)
}

func TestLex_TokenLimit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("x")
	for i := 0; i < diffcalc.MaxTokensAmt+10; i++ {
		sb.WriteString("+1")
	}
	_, err := diffcalc.ParseExpression(sb.String(), diffcalc.DefaultVarCapacity)
	require.Error(t, err)
}

func TestLex_CaseInsensitiveFunctionNames(t *testing.T) {
	expr, err := diffcalc.ParseExpression("SIN(x)", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	require.NoError(t, expr.Verify())
}

func TestLex_UnknownCharacter(t *testing.T) {
	_, err := diffcalc.ParseExpression("x@1", diffcalc.DefaultVarCapacity)
	require.Error(t, err)
	var diffErr *diffcalc.DiffError
	require.ErrorAs(t, err, &diffErr)
	assert.Equal(t, diffcalc.ErrInvalidSyntax, diffErr.Kind)
}
