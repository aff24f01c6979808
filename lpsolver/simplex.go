package lpsolver

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// backend is the narrow seam between Model and whatever solves it. Keeping
// the gonum call behind this single interface means a solver-signature
// change only ever touches this file.
type backend interface {
	solve(m *Model) (Solution, error)
}

// SelectBackend resolves the configured LP backend from HBCN_LP_SOLVER,
// mirroring the original tool's environment-variable backend selection.
// "simplex" (the embedded gonum solver) is the only backend linked into this
// build; any other value, including the names of the original's native
// gurobi/coin_cbc backends, is a configuration error.
func SelectBackend() (backend, error) {
	name := os.Getenv("HBCN_LP_SOLVER")
	if name == "" {
		name = "simplex"
	}
	if name != "simplex" {
		return nil, fmt.Errorf("%w: unknown LP backend %q", ErrInvalidConfig, name)
	}

	return simplexBackend{}, nil
}

// simplexBackend solves a Model by converting it to standard form
// (minimize c^T y, A y = b, y >= 0) and calling gonum's simplex solver.
type simplexBackend struct{}

func (simplexBackend) solve(m *Model) (Solution, error) {
	nVars := len(m.variables)

	var ubRows []int // variable indices that need an upper-bound row
	for i, v := range m.variables {
		if !math.IsInf(v.ub, 1) {
			ubRows = append(ubRows, i)
		}
	}

	nRows := len(m.constraints) + len(ubRows)
	nSlack := nRows // every row gets at most one slack/surplus column; equality rows leave theirs at 0 coefficient
	nCols := nVars + nSlack

	// gonum cannot be given a matrix without rows; with no rows every
	// variable sits at its lower bound unless the objective improves without
	// limit along one of them.
	if nRows == 0 {
		values := make([]float64, nVars)
		for i, v := range m.variables {
			values[i] = v.lb
		}
		var objective float64
		for _, t := range m.objective {
			if (m.objSense == Minimize && t.Coefficient < 0) || (m.objSense == Maximize && t.Coefficient > 0) {
				return Solution{Status: Unbounded}, nil
			}
			objective += t.Coefficient * values[t.Variable.index]
		}

		return Solution{Status: Optimal, Objective: objective, values: values}, nil
	}

	a := mat.NewDense(nRows, nCols, nil)
	b := make([]float64, nRows)

	row := 0
	addRow := func(coeffs map[int]float64, sense ConstraintSense, rhs float64) {
		if rhs < 0 {
			flipped := make(map[int]float64, len(coeffs))
			for k, v := range coeffs {
				flipped[k] = -v
			}
			coeffs = flipped
			rhs = -rhs
			switch sense {
			case LessEqual:
				sense = GreaterEqual
			case GreaterEqual:
				sense = LessEqual
			}
		}
		for k, v := range coeffs {
			a.Set(row, k, v)
		}
		switch sense {
		case LessEqual:
			a.Set(row, nVars+row, 1)
		case GreaterEqual:
			a.Set(row, nVars+row, -1)
		case Equal:
			// no slack column contribution
		}
		b[row] = rhs
		row++
	}

	for _, c := range m.constraints {
		coeffs := make(map[int]float64, len(c.expr))
		adjRHS := c.rhs
		for _, t := range c.expr {
			coeffs[t.Variable.index] += t.Coefficient
			adjRHS -= t.Coefficient * m.variables[t.Variable.index].lb
		}
		addRow(coeffs, c.sense, adjRHS)
	}
	for _, i := range ubRows {
		v := m.variables[i]
		addRow(map[int]float64{i: 1}, LessEqual, v.ub-v.lb)
	}

	c := make([]float64, nCols)
	var constObj float64
	sign := 1.0
	if m.objSense == Maximize {
		sign = -1.0
	}
	for _, t := range m.objective {
		c[t.Variable.index] += sign * t.Coefficient
		constObj += t.Coefficient * m.variables[t.Variable.index].lb
	}

	optF, optX, err := lp.Simplex(nil, c, a, b, 0)
	if err != nil {
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return Solution{Status: Infeasible}, nil
		case errors.Is(err, lp.ErrUnbounded):
			return Solution{Status: Unbounded}, nil
		default:
			return Solution{Status: Other}, nil
		}
	}

	values := make([]float64, nVars)
	for i := 0; i < nVars; i++ {
		values[i] = m.variables[i].lb + optX[i]
	}

	objective := constObj + sign*optF

	return Solution{Status: Optimal, Objective: objective, values: values}, nil
}
