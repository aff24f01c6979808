package lpsolver_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlls1989/gohbcn/lpsolver"
)

func TestSolveSimpleMinimize(t *testing.T) {
	m := lpsolver.NewModel()
	x := m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))
	y := m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))

	require.NoError(t, m.AddConstraint(lpsolver.Expr(lpsolver.Term(1, x), lpsolver.Term(1, y)), lpsolver.GreaterEqual, 4))
	require.NoError(t, m.SetObjective(lpsolver.Expr(lpsolver.Term(1, x), lpsolver.Term(2, y)), lpsolver.Minimize))

	sol, err := m.Solve()
	require.NoError(t, err)
	require.True(t, sol.Status.Succeeded())
	assert.InDelta(t, 4.0, sol.Objective, 1e-6)
	assert.InDelta(t, 4.0, sol.Value(x), 1e-6)
	assert.InDelta(t, 0.0, sol.Value(y), 1e-6)
}

func TestSolveInfeasible(t *testing.T) {
	m := lpsolver.NewModel()
	x := m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))

	require.NoError(t, m.AddConstraint(lpsolver.Expr(lpsolver.Term(1, x)), lpsolver.LessEqual, -1))
	require.NoError(t, m.SetObjective(lpsolver.Expr(lpsolver.Term(1, x)), lpsolver.Minimize))

	sol, err := m.Solve()
	require.NoError(t, err)
	assert.False(t, sol.Status.Succeeded())
}

func TestForeignVariableRejected(t *testing.T) {
	m1 := lpsolver.NewModel()
	m2 := lpsolver.NewModel()

	x := m1.AddVariable(lpsolver.Continuous, 0, math.Inf(1))

	err := m2.AddConstraint(lpsolver.Expr(lpsolver.Term(1, x)), lpsolver.LessEqual, 1)
	require.ErrorIs(t, err, lpsolver.ErrForeignVariable)
}

func TestSelectBackendRejectsUnknown(t *testing.T) {
	t.Setenv("HBCN_LP_SOLVER", "gurobi")
	_, err := lpsolver.SelectBackend()
	require.ErrorIs(t, err, lpsolver.ErrInvalidConfig)
}

func TestSelectBackendDefaultsToSimplex(t *testing.T) {
	t.Setenv("HBCN_LP_SOLVER", "")
	b, err := lpsolver.SelectBackend()
	require.NoError(t, err)
	assert.NotNil(t, b)
}
