package report_test

import (
	"testing"

	"github.com/njchilds90/diffcalc"
	"github.com/njchilds90/diffcalc/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *diffcalc.Expression {
	t.Helper()
	expr, err := diffcalc.ParseExpression(src, diffcalc.DefaultVarCapacity)
	require.NoError(t, err)
	return expr
}

func TestBuilder_Tangent(t *testing.T) {
	b := report.NewBuilder(report.Config{Seed: 1})
	expr := mustParse(t, "exp(x)")
	section, err := b.Tangent(expr, "x", 0)
	require.NoError(t, err)
	assert.Equal(t, report.TitleTangent, section.Title)
	assert.NotEmpty(t, section.Lines)
}

func TestBuilder_Taylor(t *testing.T) {
	b := report.NewBuilder(report.Config{Seed: 1})
	expr := mustParse(t, "sin(x)")
	section, err := b.Taylor(expr, "x", 0, 5)
	require.NoError(t, err)
	assert.Equal(t, report.TitleTaylor, section.Title)
}

func TestBuilder_Differentiate(t *testing.T) {
	b := report.NewBuilder(report.Config{Seed: 1})
	expr := mustParse(t, "x^3")
	section, err := b.Differentiate(expr, "x")
	require.NoError(t, err)
	assert.Equal(t, report.TitleDifferentiate, section.Title)
}

func TestBuilder_NoSuchVariable(t *testing.T) {
	b := report.NewBuilder(report.Config{Seed: 1})
	expr := mustParse(t, "x+1")
	_, err := b.Differentiate(expr, "q")
	require.Error(t, err)
}

func TestReport_String_ListsSectionsInOrder(t *testing.T) {
	b := report.NewBuilder(report.Config{Seed: 42})
	expr := mustParse(t, "x^2")

	tangentSection, err := b.Tangent(expr, "x", 1)
	require.NoError(t, err)
	diffSection, err := b.Differentiate(expr, "x")
	require.NoError(t, err)

	r := &report.Report{Sections: []report.Section{tangentSection, diffSection}}
	out := r.String()
	tangentIdx := indexOf(out, report.TitleTangent)
	diffIdx := indexOf(out, report.TitleDifferentiate)
	require.NotEqual(t, -1, tangentIdx)
	require.NotEqual(t, -1, diffIdx)
	assert.Less(t, tangentIdx, diffIdx)
}

func TestVerifyRoundTrip_DoesNotMutateVariableValues(t *testing.T) {
	expr := mustParse(t, "sin(x)/x+x^2")
	slot, err := expr.Variable("x")
	require.NoError(t, err)
	expr.Vars.SetValue(slot, 1.25)
	require.NoError(t, report.VerifyRoundTrip(expr))
	assert.Equal(t, 1.25, expr.Vars.Value(slot))
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
