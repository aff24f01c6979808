// Package analyse computes the worst-case virtual cycle time of an HBCN and
// extracts, from the solved result, the critical cycles that determine it.
package analyse

import (
	"math"

	"github.com/marlls1989/gohbcn/hbcn"
	"github.com/marlls1989/gohbcn/lpsolver"
)

// ComputeCycleTime solves the cycle-time LP of §4.2: minimize T such that
// every place's schedule equation is satisfied. weighted selects between
// the classical virtual cycle time (place weights) and the unweighted
// "depth" mode (every place weight fixed at 1).
//
// It returns T* and a DelayedHBCN whose transitions carry the solved
// arrival times and whose places carry {delay.max, slack}; delay.min is
// left unset, per §4.2.
func ComputeCycleTime(h *hbcn.StructuralHBCN, weighted bool) (float64, *hbcn.DelayedHBCN, error) {
	m := lpsolver.NewModel()

	cycleTime := m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))

	arrival := make(map[hbcn.Transition]lpsolver.VariableID, h.TransitionCount())
	for _, t := range h.Transitions() {
		arrival[t] = m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))
	}

	places := h.Places()
	delayVar := make([]lpsolver.VariableID, len(places))
	slackVar := make([]lpsolver.VariableID, len(places))

	for i, p := range places {
		delayVar[i] = m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))
		slackVar[i] = m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))

		w := 1.0
		if weighted {
			w = p.Place.Weight
		}
		if err := m.AddConstraint(
			lpsolver.Expr(lpsolver.Term(1, delayVar[i]), lpsolver.Term(-1, slackVar[i])),
			lpsolver.Equal, w,
		); err != nil {
			return 0, nil, err
		}

		token := 0.0
		if p.Place.Token {
			token = 1
		}
		if err := m.AddConstraint(
			lpsolver.Expr(
				lpsolver.Term(1, arrival[p.Dst]),
				lpsolver.Term(-1, arrival[p.Src]),
				lpsolver.Term(-1, delayVar[i]),
				lpsolver.Term(token, cycleTime),
			),
			lpsolver.Equal, 0,
		); err != nil {
			return 0, nil, err
		}
	}

	if err := m.SetObjective(lpsolver.Expr(lpsolver.Term(1, cycleTime)), lpsolver.Minimize); err != nil {
		return 0, nil, err
	}

	sol, err := m.Solve()
	if err != nil {
		return 0, nil, err
	}
	if !sol.Status.Succeeded() {
		return 0, nil, hbcn.ErrInfeasible
	}

	out := hbcn.NewDelayedHBCN()
	for _, t := range h.Transitions() {
		out.AddTransition(t)
		out.SetTime(t, hbcn.Round8(sol.Value(arrival[t])))
	}
	for i, p := range places {
		slack := hbcn.Round8(sol.Value(slackVar[i]))
		out.AddPlace(p.Src, p.Dst, hbcn.DelayedPlace{
			Place: p.Place,
			Delay: hbcn.DelayBounds{Max: hbcn.Some(hbcn.Round8(sol.Value(delayVar[i])))},
			Slack: hbcn.Some(slack),
		})
	}

	return hbcn.Round8(sol.Objective), out, nil
}
