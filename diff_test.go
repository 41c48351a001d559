package diffcalc_test

import (
	"math"
	"testing"

	"github.com/njchilds90/diffcalc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 5 of §8: d/dx(sin(x)/x) at x=1.
func TestDifferentiate_Scenario5(t *testing.T) {
	expr, err := diffcalc.ParseExpression("sin(x)/x", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	deriv, err := diffcalc.DifferentiateExpression(expr, "x")
	require.NoError(t, err)
	require.NoError(t, deriv.Verify())

	slot, err := deriv.Variable("x")
	require.NoError(t, err)
	deriv.Vars.SetValue(slot, 1)
	v, err := diffcalc.Evaluate(deriv)
	require.NoError(t, err)
	assert.InDelta(t, -0.30117, v, 1e-4)
}

func TestDifferentiate_NoSuchVariable(t *testing.T) {
	expr, err := diffcalc.ParseExpression("x+1", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	_, err = diffcalc.DifferentiateExpression(expr, "q")
	require.Error(t, err)
	var diffErr *diffcalc.DiffError
	require.ErrorAs(t, err, &diffErr)
	assert.Equal(t, diffcalc.ErrNoDiffVariable, diffErr.Kind)
}

func TestDifferentiate_DoesNotModifyInput(t *testing.T) {
	expr, err := diffcalc.ParseExpression("x^3", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	before := diffcalc.InfixString(expr)
	_, err = diffcalc.DifferentiateExpression(expr, "x")
	require.NoError(t, err)
	assert.Equal(t, before, diffcalc.InfixString(expr))
}

// §8 property 4: numerical differentiation soundness, checked for the
// expressions listed below via central differences.
func TestDifferentiate_NumericalSoundness(t *testing.T) {
	exprs := []string{
		"x^2", "x^3", "sin(x)", "cos(x)", "ln(x)", "exp(x)",
		"tg(x)", "ctg(x)", "x*sin(x)", "sin(x)/cos(x)",
		"x^x", "arcsin(x)", "arctg(x)",
	}
	points := []float64{0.3, 0.7, 1.4}
	const h = 1e-5

	for _, in := range exprs {
		expr, err := diffcalc.ParseExpression(in, diffcalc.DefaultVarCapacity)
		require.NoError(t, err, in)
		deriv, err := diffcalc.DifferentiateExpression(expr, "x")
		require.NoError(t, err, in)

		slotF, err := expr.Variable("x")
		require.NoError(t, err, in)
		slotD, err := deriv.Variable("x")
		require.NoError(t, err, in)

		for _, x0 := range points {
			expr.Vars.SetValue(slotF, x0+h)
			fPlus, err := diffcalc.Evaluate(expr)
			require.NoError(t, err, in)
			expr.Vars.SetValue(slotF, x0-h)
			fMinus, err := diffcalc.Evaluate(expr)
			require.NoError(t, err, in)
			if math.IsNaN(fPlus) || math.IsNaN(fMinus) {
				continue
			}
			numerical := (fPlus - fMinus) / (2 * h)

			deriv.Vars.SetValue(slotD, x0)
			analytic, err := diffcalc.Evaluate(deriv)
			require.NoError(t, err, in)
			if math.IsNaN(analytic) {
				continue
			}
			assert.InDelta(t, analytic, numerical, 1e-3, "operator mismatch for %q at x=%v", in, x0)
		}
	}
}

func TestDifferentiateExpressionN(t *testing.T) {
	expr, err := diffcalc.ParseExpression("x^4", diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	d4, err := diffcalc.DifferentiateExpressionN(expr, "x", 4)
	require.NoError(t, err)
	assert.Equal(t, "24", diffcalc.InfixString(d4))

	d0, err := diffcalc.DifferentiateExpressionN(expr, "x", 0)
	require.NoError(t, err)
	slot, err := d0.Variable("x")
	require.NoError(t, err)
	d0.Vars.SetValue(slot, 2)
	v, err := diffcalc.Evaluate(d0)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, v, 1e-9)
}
