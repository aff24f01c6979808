package constrain

import (
	"math"

	"github.com/marlls1989/gohbcn/hbcn"
	"github.com/marlls1989/gohbcn/lpsolver"
	"github.com/marlls1989/gohbcn/structural"
)

// relativeFloorThreshold is the shared 10^-3 relative-to-floor tolerance
// from §4.4/§4.5: a solved value is only reported as a path constraint when
// it clears its floor by more than this fraction.
const relativeFloorThreshold = 1e-3

// Pseudoclock runs the pseudoclock constraint generator of §4.4: every
// channel gets a single shared delay variable (used by all four of its
// expanded places), and the generator maximizes a pseudoclock period C that
// every non-internal channel's delay must exceed.
func Pseudoclock(h *hbcn.StructuralHBCN, cfg Config) (hbcn.ConstrainerResult, error) {
	if cfg.CycleTime <= 0 {
		panic("constrain: cycle time must be > 0")
	}

	m := lpsolver.NewModel()

	pseudoClock := m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))

	arrival := make(map[hbcn.Transition]lpsolver.VariableID, h.TransitionCount())
	for _, t := range h.Transitions() {
		arrival[t] = m.AddVariable(lpsolver.Continuous, 0, math.Inf(1))
	}

	places := h.Places()

	delayVar := make(map[structural.NodePair]lpsolver.VariableID)
	isInternal := make(map[structural.NodePair]bool)
	for _, p := range places {
		key := p.Place.Channel
		if _, ok := delayVar[key]; ok {
			continue
		}
		delayVar[key] = m.AddVariable(lpsolver.Continuous, cfg.MinimalDelay, math.Inf(1))
		isInternal[key] = p.Place.IsInternal
	}

	for key, internal := range isInternal {
		var err error
		if internal {
			err = m.AddConstraint(lpsolver.Expr(lpsolver.Term(1, delayVar[key])), lpsolver.GreaterEqual, cfg.MinimalDelay)
		} else {
			err = m.AddConstraint(
				lpsolver.Expr(lpsolver.Term(1, delayVar[key]), lpsolver.Term(-1, pseudoClock)),
				lpsolver.GreaterEqual, 0,
			)
		}
		if err != nil {
			return hbcn.ConstrainerResult{}, err
		}
	}

	for _, p := range places {
		token := 0.0
		if p.Place.Token {
			token = cfg.CycleTime
		}
		if err := m.AddConstraint(
			lpsolver.Expr(
				lpsolver.Term(1, delayVar[p.Place.Channel]),
				lpsolver.Term(1, arrival[p.Src]),
				lpsolver.Term(-1, arrival[p.Dst]),
			),
			lpsolver.Equal, token,
		); err != nil {
			return hbcn.ConstrainerResult{}, err
		}
	}

	if err := m.SetObjective(lpsolver.Expr(lpsolver.Term(1, pseudoClock)), lpsolver.Maximize); err != nil {
		return hbcn.ConstrainerResult{}, err
	}

	sol, err := m.Solve()
	if err != nil {
		return hbcn.ConstrainerResult{}, err
	}
	if !sol.Status.Succeeded() {
		return hbcn.ConstrainerResult{}, hbcn.ErrInfeasible
	}

	period := hbcn.Round8(sol.Value(pseudoClock))

	out := hbcn.NewDelayedHBCN()
	for _, t := range h.Transitions() {
		out.AddTransition(t)
		out.SetTime(t, hbcn.Round8(sol.Value(arrival[t])))
	}

	constraints := make(hbcn.PathConstraints)
	for _, p := range places {
		delay := hbcn.Round8(sol.Value(delayVar[p.Place.Channel]))
		out.AddPlace(p.Src, p.Dst, hbcn.DelayedPlace{
			Place: p.Place,
			Delay: hbcn.DelayBounds{Max: hbcn.Some(delay)},
		})

		if p.Place.IsInternal {
			continue
		}
		if _, seen := constraints[p.Place.Channel]; seen {
			continue
		}
		if hbcn.NearFloor(delay, cfg.MinimalDelay) {
			continue
		}
		constraints[p.Place.Channel] = hbcn.DelayBounds{Max: hbcn.Some(delay)}
	}

	return hbcn.ConstrainerResult{
		PseudoclockPeriod: period,
		HBCN:              out,
		PathConstraints:   constraints,
	}, nil
}
