package diffcalc_test

import (
	"math"
	"testing"

	"github.com/njchilds90/diffcalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenarios 1-3 of §8.
func TestSimplify_Scenarios(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"x + 0", "x"},
		{"x * 1", "x"},
		{"0 * sin(x)", "0"},
	}
	for _, c := range cases {
		expr, err := diffcalc.ParseExpression(c.input, diffcalc.DefaultVarCapacity)
		require.NoError(t, err, c.input)
		_, err = diffcalc.Simplify(expr)
		require.NoError(t, err, c.input)
		require.NoError(t, expr.Verify(), c.input)
		assert.Equal(t, c.want, diffcalc.InfixString(expr), c.input)
	}
}

func TestSimplify_SubSameVariableIsZero(t *testing.T) {
	expr, err := diffcalc.ParseExpression("x-x", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	_, err = diffcalc.Simplify(expr)
	require.NoError(t, err)
	assert.Equal(t, "0", diffcalc.InfixString(expr))
}

func TestSimplify_PowerRules(t *testing.T) {
	cases := map[string]string{
		"x^0":     "1",
		"x^1":     "x",
		"1^x":     "1",
	}
	for in, want := range cases {
		expr, err := diffcalc.ParseExpression(in, diffcalc.DefaultVarCapacity)
		require.NoError(t, err, in)
		_, err = diffcalc.Simplify(expr)
		require.NoError(t, err, in)
		assert.Equal(t, want, diffcalc.InfixString(expr), in)
	}
}

// §8 property 5: the fixed-point loop terminates in bounded steps.
func TestSimplify_Termination(t *testing.T) {
	exprs := []string{
		"((x+0)*1+0)*1",
		"(x*1+0*y)*(1*y+0)",
		"x^1^1",
		"2+3*4-5/1",
	}
	for _, in := range exprs {
		expr, err := diffcalc.ParseExpression(in, diffcalc.DefaultVarCapacity)
		require.NoError(t, err, in)
		count, err := diffcalc.Simplify(expr)
		require.NoError(t, err, in)
		assert.Less(t, count, 1000, "suspiciously many rewrites for %q", in)
		require.NoError(t, expr.Verify(), in)

		// A second Simplify call on an already-simplified tree changes
		// nothing: the loop actually reached its fixed point.
		count2, err := diffcalc.Simplify(expr)
		require.NoError(t, err, in)
		assert.Equal(t, 0, count2, "not at fixed point for %q", in)
	}
}

// §8 property 6: evaluation before and after simplification agrees.
func TestSimplify_Soundness(t *testing.T) {
	inputs := []string{
		"x*1+0*y",
		"(x+0)/(y*1)",
		"x^1+y^0",
		"sin(x)*1-0",
	}
	for _, in := range inputs {
		original, err := diffcalc.ParseExpression(in, diffcalc.DefaultVarCapacity)
		require.NoError(t, err, in)
		simplified, err := diffcalc.ParseExpression(in, diffcalc.DefaultVarCapacity)
		require.NoError(t, err, in)
		_, err = diffcalc.Simplify(simplified)
		require.NoError(t, err, in)

		for _, v := range []float64{0.5, 2.0, -1.5} {
			setAllVars(original, v)
			setAllVars(simplified, v)
			v1, err1 := diffcalc.Evaluate(original)
			v2, err2 := diffcalc.Evaluate(simplified)
			require.NoError(t, err1, in)
			require.NoError(t, err2, in)
			if math.IsNaN(v1) || math.IsInf(v1, 0) {
				continue
			}
			assert.InDelta(t, v1, v2, 1e-9, "simplification changed semantics of %q", in)
		}
	}
}

// §8 property 3: copy independence.
func TestCopy_Independence(t *testing.T) {
	expr, err := diffcalc.ParseExpression("x^2+sin(x)", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	clone := expr.Copy()

	slot, err := expr.Variable("x")
	require.NoError(t, err)
	cloneSlot, err := clone.Variable("x")
	require.NoError(t, err)

	expr.Vars.SetValue(slot, 2)
	clone.Vars.SetValue(cloneSlot, 2)

	v1, err := diffcalc.Evaluate(expr)
	require.NoError(t, err)
	v2, err := diffcalc.Evaluate(clone)
	require.NoError(t, err)
	assert.InDelta(t, v1, v2, 1e-12)

	// Mutating the clone's variable table must not affect the original.
	clone.Vars.SetValue(cloneSlot, 99)
	v3, err := diffcalc.Evaluate(expr)
	require.NoError(t, err)
	assert.InDelta(t, v1, v3, 1e-12)
}
