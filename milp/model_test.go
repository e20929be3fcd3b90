package milp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewModelStartsBuilt(t *testing.T) {
	m := New()
	assert.Equal(t, StatusBuilt, m.Status())
	assert.Equal(t, 0, m.NumVars())
	assert.Equal(t, 0, m.NumConstraints())
}

func TestDeclareVariables(t *testing.T) {
	m := New()
	x := m.Binary("x")
	z := m.Continuous("z", 0, 1000)

	assert.Equal(t, 2, m.NumVars())
	assert.NotEqual(t, x, z)
}

func TestContinuousRejectsBadBounds(t *testing.T) {
	m := New()
	assert.Panics(t, func() { m.Continuous("bad", -1, 5) })
	assert.Panics(t, func() { m.Continuous("bad", 5, 1) })
}

func TestAddConstraintRejectsUnknownVar(t *testing.T) {
	m := New()
	m.Binary("x")
	assert.Panics(t, func() {
		m.AddLe("broken", []Term{{Var: Var(7), Coef: 1}}, 1)
	})
}

func TestValueBeforeSolveIsZero(t *testing.T) {
	m := New()
	x := m.Binary("x")
	assert.Equal(t, 0.0, m.Value(x))
}

func TestSolveTwiceFails(t *testing.T) {
	m := New()
	x := m.Binary("x")
	m.Maximize(Term{Var: x, Coef: 1})

	require.NoError(t, m.Solve())
	assert.Error(t, m.Solve())
}

func TestWriteLP(t *testing.T) {
	m := New()
	x := m.Binary("x_F001")
	z := m.Continuous("z_F001", 0, 1000)
	m.Maximize(Term{Var: x, Coef: 3}, Term{Var: z, Coef: -300})
	m.AddEq("outputLength", []Term{{Var: x, Coef: 1}}, 1)
	m.AddLe("budget_F001", []Term{{Var: x, Coef: 5.5}, {Var: z, Coef: -12}}, 12)

	var sb strings.Builder
	require.NoError(t, m.WriteLP(&sb))
	out := sb.String()

	assert.Contains(t, out, "Maximize")
	assert.Contains(t, out, "Subject To")
	assert.Contains(t, out, "outputLength:")
	assert.Contains(t, out, "budget_F001:")
	assert.Contains(t, out, "0 <= z_F001 <= 1000")
	assert.Contains(t, out, "Binary\n x_F001")
	assert.True(t, strings.HasSuffix(out, "End\n"))
}

func TestWriteLPSanitizesNames(t *testing.T) {
	m := New()
	x := m.Binary("x_Main Course")
	m.Maximize(Term{Var: x, Coef: 1})
	m.AddLe("category_Main Course", []Term{{Var: x, Coef: 1}}, 1)

	var sb strings.Builder
	require.NoError(t, m.WriteLP(&sb))
	out := sb.String()

	assert.Contains(t, out, "x_Main_Course")
	assert.Contains(t, out, "category_Main_Course:")
	assert.NotContains(t, out, "Main Course")
}
