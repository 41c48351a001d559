package diffcalc_test

import (
	"strings"
	"testing"

	"github.com/njchilds90/diffcalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarTable_CapacityExhausted(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5; i++ {
		if i > 0 {
			sb.WriteString("+")
		}
		sb.WriteString("v")
		sb.WriteString(strings.Repeat("x", i))
	}
	_, err := diffcalc.ParseExpression(sb.String(), 3)
	require.Error(t, err)
	var diffErr *diffcalc.DiffError
	require.ErrorAs(t, err, &diffErr)
	assert.Equal(t, diffcalc.ErrInvalidSyntax, diffErr.Kind)
}

func TestVarTable_NameTooLong(t *testing.T) {
	longName := strings.Repeat("a", diffcalc.MaxVariableNameLen+1)
	_, err := diffcalc.ParseExpression(longName+"+1", diffcalc.DefaultVarCapacity)
	require.Error(t, err)
}

func TestVarTable_DefaultCapacity(t *testing.T) {
	expr := diffcalc.NewExpression(0)
	assert.Equal(t, diffcalc.DefaultVarCapacity, expr.Vars.Capacity())
}

func TestVarTable_SharesSlotAcrossOccurrences(t *testing.T) {
	expr, err := diffcalc.ParseExpression("x+x*x", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	slot, err := expr.Variable("x")
	require.NoError(t, err)
	expr.Vars.SetValue(slot, 2)
	v, err := diffcalc.Evaluate(expr)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, v, 1e-12) // 2 + 2*2
}
